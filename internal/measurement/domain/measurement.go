package domain

import (
	"math"
	"strconv"
	"time"

	sharedBus "github.com/davicafu/gymlab/internal/shared/infra/platform/bus"
)

// Measurement es una toma de medidas corporales de un socio.
type Measurement struct {
	ID             int64      `json:"id"`
	ClientID       int64      `json:"clientId"`
	ClientName     string     `json:"clientName"`     // solo lectura
	ClientIDNumber string     `json:"clientIdNumber"` // solo lectura
	Date           time.Time  `json:"date"`
	Weight         float64    `json:"weight"` // kg
	Height         float64    `json:"height"` // cm
	BodyFat        float64    `json:"bodyFat"`
	Waist          float64    `json:"waist"`
	Notes          string     `json:"notes"`
	CreatedBy      int64      `json:"createdBy"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DeletedAt      *time.Time `json:"deletedAt"`
}

func (m *Measurement) PartitionKey() string {
	return strconv.FormatInt(m.ID, 10)
}

// BMI es el índice de masa corporal redondeado a un decimal (0 si falta la altura).
func (m *Measurement) BMI() float64 {
	if m.Height <= 0 || m.Weight <= 0 {
		return 0
	}
	meters := m.Height / 100
	return math.Round(m.Weight/(meters*meters)*10) / 10
}

func (m *Measurement) Validate() error {
	if m.ClientID <= 0 || m.Date.IsZero() {
		return ErrInvalidMeasurement
	}
	if m.Weight <= 0 || m.Height < 0 || m.BodyFat < 0 || m.BodyFat > 100 || m.Waist < 0 {
		return ErrInvalidMeasurement
	}
	return nil
}

var _ sharedBus.Keyer = (*Measurement)(nil)
