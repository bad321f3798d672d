package console

import (
	lq "github.com/davicafu/gymlab/internal/listquery"
)

// StatusSetter fija filterByStatus sin conocer el resto de filtros de la entidad.
type StatusSetter interface {
	SetStatus(lq.Status)
}

// ---------------- Filtros por entidad ----------------

type ClientFilters struct {
	Status                lq.Status
	Gender                lq.Text
	MembershipActive      lq.Flag
	BirthDateRange        lq.DateRange
	RegistrationDateRange lq.DateRange
}

func (f *ClientFilters) SetStatus(s lq.Status) { f.Status = s }

func (f ClientFilters) Encode(q *lq.Query) {
	f.Status.Encode(q)
	f.Gender.Encode(q, "filterByGender")
	f.MembershipActive.Encode(q, "filterByMembershipActive")
	f.BirthDateRange.Encode(q, "filterByBirthDateRange")
	f.RegistrationDateRange.Encode(q, "filterByRegistrationDateRange")
}

// EntryFilters sirve para ingresos y egresos; ClientID solo lo usa el listado de ingresos.
type EntryFilters struct {
	Status        lq.Status
	Category      lq.Text
	PaymentMethod lq.Number
	ClientID      lq.Number
	AmountRange   lq.AmountRange
	DateRange     lq.DateRange
}

func NewEntryFilters() EntryFilters {
	return EntryFilters{PaymentMethod: lq.NewNumber(0), ClientID: lq.NewNumber(0)}
}

func (f *EntryFilters) SetStatus(s lq.Status) { f.Status = s }

func (f EntryFilters) Encode(q *lq.Query) {
	f.Status.Encode(q)
	f.Category.Encode(q, "filterByCategory")
	f.PaymentMethod.Encode(q, "filterByPaymentMethod")
	f.ClientID.Encode(q, "filterByClientId")
	f.AmountRange.Encode(q, "filterByAmountRange")
	f.DateRange.Encode(q, "filterByDateRange")
}

type ExerciseFilters struct {
	Status      lq.Status
	MuscleGroup lq.Text
	Difficulty  lq.Number
	HasVideo    lq.Flag
}

func NewExerciseFilters() ExerciseFilters {
	return ExerciseFilters{Difficulty: lq.NewNumber(-1)}
}

func (f *ExerciseFilters) SetStatus(s lq.Status) { f.Status = s }

func (f ExerciseFilters) Encode(q *lq.Query) {
	f.Status.Encode(q)
	f.MuscleGroup.Encode(q, "filterByMuscleGroup")
	f.Difficulty.Encode(q, "filterByDifficulty")
	f.HasVideo.Encode(q, "filterByHasVideo")
}

type UserFilters struct {
	Status lq.Status
	Role   lq.Text
}

func (f *UserFilters) SetStatus(s lq.Status) { f.Status = s }

func (f UserFilters) Encode(q *lq.Query) {
	f.Status.Encode(q)
	f.Role.Encode(q, "filterByRole")
}

type MeasurementFilters struct {
	Status      lq.Status
	ClientID    lq.Number
	DateRange   lq.DateRange
	WeightRange lq.AmountRange
}

func NewMeasurementFilters() MeasurementFilters {
	return MeasurementFilters{ClientID: lq.NewNumber(0)}
}

func (f *MeasurementFilters) SetStatus(s lq.Status) { f.Status = s }

func (f MeasurementFilters) Encode(q *lq.Query) {
	f.Status.Encode(q)
	f.ClientID.Encode(q, "filterByClientId")
	f.DateRange.Encode(q, "filterByDateRange")
	f.WeightRange.Encode(q, "filterByWeightRange")
}

type AssetFilters struct {
	Status            lq.Status
	Condition         lq.Text
	PurchaseDateRange lq.DateRange
	ValueRange        lq.AmountRange
}

func (f *AssetFilters) SetStatus(s lq.Status) { f.Status = s }

func (f AssetFilters) Encode(q *lq.Query) {
	f.Status.Encode(q)
	f.Condition.Encode(q, "filterByCondition")
	f.PurchaseDateRange.Encode(q, "filterByPurchaseDateRange")
	f.ValueRange.Encode(q, "filterByValueRange")
}

type TemplateFilters struct {
	Status  lq.Status
	Channel lq.Text
}

func (f *TemplateFilters) SetStatus(s lq.Status) { f.Status = s }

func (f TemplateFilters) Encode(q *lq.Query) {
	f.Status.Encode(q)
	f.Channel.Encode(q, "filterByChannel")
}

// NotificationFilters no tiene borrado lógico: el historial de envíos no se elimina.
type NotificationFilters struct {
	ClientID       lq.Number
	Channel        lq.Text
	DeliveryStatus lq.Text
}

func NewNotificationFilters() NotificationFilters {
	return NotificationFilters{ClientID: lq.NewNumber(0)}
}

func (f NotificationFilters) Encode(q *lq.Query) {
	f.ClientID.Encode(q, "filterByClientId")
	f.Channel.Encode(q, "filterByChannel")
	f.DeliveryStatus.Encode(q, "filterByDeliveryStatus")
}
