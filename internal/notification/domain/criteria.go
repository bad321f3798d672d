package domain

const (
	SearchByName    = 1
	SearchBySubject = 2
)

var SearchColumns = map[int][]string{
	SearchByName:    {"name"},
	SearchBySubject: {"subject"},
}

var SortColumns = map[string]string{
	"name":      "name",
	"subject":   "subject",
	"createdAt": "created_at",
}

var NotificationSortColumns = map[string]string{
	"createdAt": "created_at",
	"status":    "status",
}
