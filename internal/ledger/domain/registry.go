package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/gymlab/internal/shared/domain/events"
)

const (
	IncomeCreated  = "income.created"
	IncomeUpdated  = "income.updated"
	IncomeDeleted  = "income.deleted"
	ExpenseCreated = "expense.created"
	ExpenseUpdated = "expense.updated"
	ExpenseDeleted = "expense.deleted"
)

const LedgerTopic = "gymlab.ledger"

// EventType compone el tipo de evento, ej. EventType(KindIncome, "created") = "income.created".
func EventType(kind Kind, action string) string {
	return string(kind) + "." + action
}

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	entry := reflect.TypeOf(Entry{})
	return map[string]sharedEvents.EventMetadata{
		IncomeCreated:  {Type: entry, Topic: LedgerTopic},
		IncomeUpdated:  {Type: entry, Topic: LedgerTopic},
		IncomeDeleted:  {Type: entry, Topic: LedgerTopic},
		ExpenseCreated: {Type: entry, Topic: LedgerTopic},
		ExpenseUpdated: {Type: entry, Topic: LedgerTopic},
		ExpenseDeleted: {Type: entry, Topic: LedgerTopic},
	}
}
