package domain

const (
	SearchByClientNames    = 1
	SearchByClientIDNumber = 2
)

var SearchColumns = map[int][]string{
	SearchByClientNames:    {"c.names", "c.last_names"},
	SearchByClientIDNumber: {"c.id_number"},
}

var SortColumns = map[string]string{
	"date":    "m.date",
	"weight":  "m.weight",
	"bodyFat": "m.body_fat",
}
