package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	ledgerDomain "github.com/davicafu/gymlab/internal/ledger/domain"
	lq "github.com/davicafu/gymlab/internal/listquery"
)

func encode(f lq.Filters) string {
	q := &lq.Query{}
	f.Encode(q)
	return q.Encode()
}

func TestEntryFilters_DefaultsSendNothing(t *testing.T) {
	assert.Empty(t, encode(NewEntryFilters()))

	f := NewEntryFilters()
	f.PaymentMethod = f.PaymentMethod.Set(ledgerDomain.PaymentCash)
	f.ClientID = f.ClientID.Set(7)
	f.AmountRange = lq.Amounts(10, 50)
	assert.Equal(t, "filterByPaymentMethod=1&filterByClientId=7&filterByAmountRangeMin=10&filterByAmountRangeMax=50", encode(f))
}

func TestExerciseFilters_DifficultyZeroIsAFilter(t *testing.T) {
	f := NewExerciseFilters()
	assert.Empty(t, encode(f))

	f.Difficulty = f.Difficulty.Set(0)
	f.HasVideo = lq.FlagOf(true)
	assert.Equal(t, "filterByDifficulty=0&filterByHasVideo=true", encode(f))
}

func TestClientFilters_HalfRangeIsIgnored(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := ClientFilters{
		Status:         lq.StatusAll,
		Gender:         "F",
		BirthDateRange: lq.DateRange{Min: &from},
	}
	assert.Equal(t, "filterByStatus=Todos&filterByGender=F", encode(f))

	f.RegistrationDateRange = lq.Dates(from, from.AddDate(0, 1, 0))
	assert.Contains(t, encode(f), "filterByRegistrationDateRangeMin=2024-01-01&filterByRegistrationDateRangeMax=2024-02-01")
}

func TestSchemas_EndpointsAndItemsKeys(t *testing.T) {
	assert.Equal(t, "/income", Entries(ledgerDomain.KindIncome).Endpoint)
	assert.Equal(t, "incomes", Entries(ledgerDomain.KindIncome).ItemsKey)
	assert.Equal(t, "expenses", Entries(ledgerDomain.KindExpense).ItemsKey)
	assert.Equal(t, "clients", Clients().ItemsKey)
	assert.Equal(t, "measurements", Measurements().ItemsKey)
	assert.Equal(t, "templates", Templates().ItemsKey)
}
