package domain

import sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"

const (
	SearchByName      = 1
	SearchByEquipment = 2
)

var SearchColumns = map[int][]string{
	SearchByName:      {"name"},
	SearchByEquipment: {"equipment"},
}

var SortColumns = map[string]string{
	"name":        "name",
	"muscleGroup": "muscle_group",
	"difficulty":  "difficulty",
	"createdAt":   "created_at",
}

// HasVideoCriteria filtra por ejercicios con (o sin) enlace de vídeo.
type HasVideoCriteria struct {
	HasVideo bool
}

func (c HasVideoCriteria) ToConditions() []sharedDomain.Criterion {
	op := sharedDomain.OpEq
	if c.HasVideo {
		op = sharedDomain.OpNe
	}
	return []sharedDomain.Criterion{{Field: "video_url", Op: op, Value: ""}}
}
