package domain

const (
	SearchByNames    = 1
	SearchByUsername = 2
)

var SearchColumns = map[int][]string{
	SearchByNames:    {"names"},
	SearchByUsername: {"username"},
}

var SortColumns = map[string]string{
	"names":     "names",
	"username":  "username",
	"role":      "role",
	"createdAt": "created_at",
}
