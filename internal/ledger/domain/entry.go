package domain

import (
	"sort"
	"strconv"
	"strings"
	"time"

	sharedBus "github.com/davicafu/gymlab/internal/shared/infra/platform/bus"
)

// Kind distingue ingresos de egresos; cada uno tiene su tabla y su endpoint.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Table devuelve la tabla y también la clave del listado ("incomes", "expenses").
func (k Kind) Table() string {
	return string(k) + "s"
}

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Métodos de pago (filterByPaymentMethod, 0 = sin filtrar).
const (
	PaymentCash     = 1
	PaymentCard     = 2
	PaymentTransfer = 3
)

// Entry es un movimiento del libro: un ingreso o un egreso.
type Entry struct {
	ID            int64      `json:"id"`
	Kind          Kind       `json:"kind"`
	Date          time.Time  `json:"date"`
	Amount        float64    `json:"amount"`
	Description   string     `json:"description"`
	Reference     string     `json:"reference"`
	Category      string     `json:"category"`
	PaymentMethod int        `json:"paymentMethod"`
	ClientID      int64      `json:"clientId,omitempty"` // solo ingresos
	CreatedBy     int64      `json:"createdBy"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	DeletedAt     *time.Time `json:"deletedAt"`
}

func (e *Entry) PartitionKey() string {
	return string(e.Kind) + ":" + strconv.FormatInt(e.ID, 10)
}

// Validate comprueba importe, método de pago y que los egresos no lleven cliente.
func (e *Entry) Validate() error {
	if !e.Kind.Valid() {
		return ErrInvalidEntry
	}
	if e.Amount <= 0 || e.Date.IsZero() || strings.TrimSpace(e.Description) == "" {
		return ErrInvalidEntry
	}
	if e.PaymentMethod < PaymentCash || e.PaymentMethod > PaymentTransfer {
		return ErrInvalidEntry
	}
	if e.Kind == KindExpense && e.ClientID != 0 {
		return ErrInvalidEntry
	}
	return nil
}

var _ sharedBus.Keyer = (*Entry)(nil)

// MonthlyTotal es la suma de un tipo de movimiento en un mes (YYYY-MM).
type MonthlyTotal struct {
	Month string
	Total float64
}

// MonthlyBalance es el resultado del informe de balance.
type MonthlyBalance struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// MergeBalance combina totales de ingresos y egresos en un balance ordenado por mes.
func MergeBalance(incomes, expenses []MonthlyTotal) []MonthlyBalance {
	byMonth := make(map[string]*MonthlyBalance)
	var months []string
	get := func(month string) *MonthlyBalance {
		b, ok := byMonth[month]
		if !ok {
			b = &MonthlyBalance{Month: month}
			byMonth[month] = b
			months = append(months, month)
		}
		return b
	}
	for _, t := range incomes {
		get(t.Month).Income += t.Total
	}
	for _, t := range expenses {
		get(t.Month).Expense += t.Total
	}

	sort.Strings(months)
	out := make([]MonthlyBalance, 0, len(months))
	for _, m := range months {
		b := byMonth[m]
		b.Balance = b.Income - b.Expense
		out = append(out, *b)
	}
	return out
}
