package domain

const (
	SearchByName = 1
	SearchByCode = 2
)

var SearchColumns = map[int][]string{
	SearchByName: {"name"},
	SearchByCode: {"code"},
}

var SortColumns = map[string]string{
	"name":         "name",
	"code":         "code",
	"purchaseDate": "purchase_date",
	"value":        "value",
}
