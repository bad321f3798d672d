package domain

import (
	"strconv"
	"strings"
	"time"

	sharedBus "github.com/davicafu/gymlab/internal/shared/infra/platform/bus"
)

// Estado físico de un equipo del gimnasio.
const (
	ConditionNew         = "new"
	ConditionGood        = "good"
	ConditionMaintenance = "maintenance"
	ConditionBroken      = "broken"
)

func ValidCondition(c string) bool {
	switch c {
	case ConditionNew, ConditionGood, ConditionMaintenance, ConditionBroken:
		return true
	}
	return false
}

// Asset es un bien inventariado (máquinas, mancuernas, mobiliario...).
type Asset struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Code         string     `json:"code"`
	Location     string     `json:"location"`
	Condition    string     `json:"condition"`
	PurchaseDate time.Time  `json:"purchaseDate"`
	Value        float64    `json:"value"`
	Notes        string     `json:"notes"`
	CreatedBy    int64      `json:"createdBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"deletedAt"`
}

func (a *Asset) PartitionKey() string {
	return strconv.FormatInt(a.ID, 10)
}

func (a *Asset) Validate() error {
	a.Name = strings.TrimSpace(a.Name)
	a.Code = strings.ToUpper(strings.TrimSpace(a.Code))
	if a.Name == "" || a.Code == "" {
		return ErrInvalidAsset
	}
	if a.Condition == "" {
		a.Condition = ConditionGood
	}
	if !ValidCondition(a.Condition) || a.Value < 0 || a.PurchaseDate.IsZero() {
		return ErrInvalidAsset
	}
	return nil
}

// NeedsAttention indica si el equipo no está disponible para los socios.
func (a *Asset) NeedsAttention() bool {
	return a.Condition == ConditionMaintenance || a.Condition == ConditionBroken
}

var _ sharedBus.Keyer = (*Asset)(nil)
