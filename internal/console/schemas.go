package console

import (
	assetDomain "github.com/davicafu/gymlab/internal/asset/domain"
	clientDomain "github.com/davicafu/gymlab/internal/client/domain"
	exerciseDomain "github.com/davicafu/gymlab/internal/exercise/domain"
	ledgerDomain "github.com/davicafu/gymlab/internal/ledger/domain"
	lq "github.com/davicafu/gymlab/internal/listquery"
	measurementDomain "github.com/davicafu/gymlab/internal/measurement/domain"
	notificationDomain "github.com/davicafu/gymlab/internal/notification/domain"
	userDomain "github.com/davicafu/gymlab/internal/user/domain"
)

// Los DTO de cada listado son los mismos tipos de dominio que serializa el backend.

func Clients() lq.Schema[clientDomain.Client, ClientFilters] {
	return lq.Schema[clientDomain.Client, ClientFilters]{
		Endpoint:          "/client",
		ItemsKey:          "clients",
		NewFilters:        func() ClientFilters { return ClientFilters{} },
		IDOf:              func(c clientDomain.Client) int64 { return c.ID },
		DefaultSearchType: clientDomain.SearchByNames,
	}
}

// Entries sirve para /income y /expense.
func Entries(kind ledgerDomain.Kind) lq.Schema[ledgerDomain.Entry, EntryFilters] {
	return lq.Schema[ledgerDomain.Entry, EntryFilters]{
		Endpoint:          "/" + string(kind),
		ItemsKey:          kind.Table(),
		NewFilters:        NewEntryFilters,
		IDOf:              func(e ledgerDomain.Entry) int64 { return e.ID },
		DefaultSearchType: ledgerDomain.SearchByDescription,
	}
}

func Exercises() lq.Schema[exerciseDomain.Exercise, ExerciseFilters] {
	return lq.Schema[exerciseDomain.Exercise, ExerciseFilters]{
		Endpoint:          "/exercise",
		ItemsKey:          "exercises",
		NewFilters:        NewExerciseFilters,
		IDOf:              func(e exerciseDomain.Exercise) int64 { return e.ID },
		DefaultSearchType: exerciseDomain.SearchByName,
	}
}

func Users() lq.Schema[userDomain.User, UserFilters] {
	return lq.Schema[userDomain.User, UserFilters]{
		Endpoint:          "/user",
		ItemsKey:          "users",
		NewFilters:        func() UserFilters { return UserFilters{} },
		IDOf:              func(u userDomain.User) int64 { return u.ID },
		DefaultSearchType: userDomain.SearchByNames,
	}
}

func Measurements() lq.Schema[measurementDomain.Measurement, MeasurementFilters] {
	return lq.Schema[measurementDomain.Measurement, MeasurementFilters]{
		Endpoint:          "/measurement",
		ItemsKey:          "measurements",
		NewFilters:        NewMeasurementFilters,
		IDOf:              func(m measurementDomain.Measurement) int64 { return m.ID },
		DefaultSearchType: measurementDomain.SearchByClientNames,
	}
}

func Assets() lq.Schema[assetDomain.Asset, AssetFilters] {
	return lq.Schema[assetDomain.Asset, AssetFilters]{
		Endpoint:          "/asset",
		ItemsKey:          "assets",
		NewFilters:        func() AssetFilters { return AssetFilters{} },
		IDOf:              func(a assetDomain.Asset) int64 { return a.ID },
		DefaultSearchType: assetDomain.SearchByName,
	}
}

func Templates() lq.Schema[notificationDomain.Template, TemplateFilters] {
	return lq.Schema[notificationDomain.Template, TemplateFilters]{
		Endpoint:          "/template",
		ItemsKey:          "templates",
		NewFilters:        func() TemplateFilters { return TemplateFilters{} },
		IDOf:              func(t notificationDomain.Template) int64 { return t.ID },
		DefaultSearchType: notificationDomain.SearchByName,
	}
}

func Notifications() lq.Schema[notificationDomain.Notification, NotificationFilters] {
	return lq.Schema[notificationDomain.Notification, NotificationFilters]{
		Endpoint:   "/notification",
		ItemsKey:   "notifications",
		NewFilters: NewNotificationFilters,
		IDOf:       func(n notificationDomain.Notification) int64 { return n.ID },
	}
}
