package main

import (
	"github.com/spf13/cobra"

	assetDomain "github.com/davicafu/gymlab/internal/asset/domain"
	clientDomain "github.com/davicafu/gymlab/internal/client/domain"
	"github.com/davicafu/gymlab/internal/console"
	exerciseDomain "github.com/davicafu/gymlab/internal/exercise/domain"
	ledgerDomain "github.com/davicafu/gymlab/internal/ledger/domain"
	lq "github.com/davicafu/gymlab/internal/listquery"
	measurementDomain "github.com/davicafu/gymlab/internal/measurement/domain"
	notificationDomain "github.com/davicafu/gymlab/internal/notification/domain"
	userDomain "github.com/davicafu/gymlab/internal/user/domain"
)

func entityCommands() []*cobra.Command {
	return []*cobra.Command{
		clientEntity().command(),
		entryEntity(ledgerDomain.KindIncome, "ingresos").command(),
		entryEntity(ledgerDomain.KindExpense, "egresos").command(),
		exerciseEntity().command(),
		userEntity().command(),
		measurementEntity().command(),
		assetEntity().command(),
		templateEntity().command(),
		notificationEntity().command(),
	}
}

func clientEntity() entity[clientDomain.Client, console.ClientFilters] {
	return entity[clientDomain.Client, console.ClientFilters]{
		name:    "client",
		short:   "clientes",
		schema:  console.Clients(),
		columns: console.ClientColumns(),
		flags: func(cmd *cobra.Command) {
			cmd.Flags().String("gender", "", "filtra por género")
			cmd.Flags().String("membership-active", "", "true o false")
			cmd.Flags().String("birth", "", "rango de nacimiento FROM..TO")
			cmd.Flags().String("registered", "", "rango de alta FROM..TO")
		},
		filters: func(cmd *cobra.Command, f *console.ClientFilters) error {
			gender, _ := cmd.Flags().GetString("gender")
			active, _ := cmd.Flags().GetString("membership-active")
			birth, _ := cmd.Flags().GetString("birth")
			registered, _ := cmd.Flags().GetString("registered")

			var err error
			f.Gender = lq.Text(gender)
			if f.MembershipActive, err = parseFlag(active); err != nil {
				return err
			}
			if f.BirthDateRange, err = parseDateRange(birth); err != nil {
				return err
			}
			f.RegistrationDateRange, err = parseDateRange(registered)
			return err
		},
	}
}

func entryEntity(kind ledgerDomain.Kind, short string) entity[ledgerDomain.Entry, console.EntryFilters] {
	return entity[ledgerDomain.Entry, console.EntryFilters]{
		name:    string(kind),
		short:   short,
		schema:  console.Entries(kind),
		columns: console.EntryColumns(),
		flags: func(cmd *cobra.Command) {
			cmd.Flags().String("category", "", "filtra por categoría")
			cmd.Flags().Int64("payment-method", 0, "1 efectivo, 2 tarjeta, 3 transferencia")
			cmd.Flags().String("amount", "", "rango de monto MIN..MAX")
			cmd.Flags().String("date", "", "rango de fechas FROM..TO")
			if kind == ledgerDomain.KindIncome {
				cmd.Flags().Int64("client", 0, "id del cliente")
			}
		},
		filters: func(cmd *cobra.Command, f *console.EntryFilters) error {
			category, _ := cmd.Flags().GetString("category")
			method, _ := cmd.Flags().GetInt64("payment-method")
			amount, _ := cmd.Flags().GetString("amount")
			date, _ := cmd.Flags().GetString("date")
			if kind == ledgerDomain.KindIncome {
				client, _ := cmd.Flags().GetInt64("client")
				f.ClientID = f.ClientID.Set(client)
			}

			var err error
			f.Category = lq.Text(category)
			f.PaymentMethod = f.PaymentMethod.Set(method)
			if f.AmountRange, err = parseAmountRange(amount); err != nil {
				return err
			}
			f.DateRange, err = parseDateRange(date)
			return err
		},
	}
}

func exerciseEntity() entity[exerciseDomain.Exercise, console.ExerciseFilters] {
	return entity[exerciseDomain.Exercise, console.ExerciseFilters]{
		name:    "exercise",
		short:   "ejercicios",
		schema:  console.Exercises(),
		columns: console.ExerciseColumns(),
		flags: func(cmd *cobra.Command) {
			cmd.Flags().String("muscle-group", "", "filtra por grupo muscular")
			cmd.Flags().Int64("difficulty", -1, "nivel de dificultad (-1 = todos)")
			cmd.Flags().String("has-video", "", "true o false")
		},
		filters: func(cmd *cobra.Command, f *console.ExerciseFilters) error {
			group, _ := cmd.Flags().GetString("muscle-group")
			difficulty, _ := cmd.Flags().GetInt64("difficulty")
			video, _ := cmd.Flags().GetString("has-video")

			var err error
			f.MuscleGroup = lq.Text(group)
			f.Difficulty = f.Difficulty.Set(difficulty)
			f.HasVideo, err = parseFlag(video)
			return err
		},
	}
}

func userEntity() entity[userDomain.User, console.UserFilters] {
	return entity[userDomain.User, console.UserFilters]{
		name:    "user",
		short:   "usuarios",
		schema:  console.Users(),
		columns: console.UserColumns(),
		flags: func(cmd *cobra.Command) {
			cmd.Flags().String("role", "", "admin, receptionist o trainer")
		},
		filters: func(cmd *cobra.Command, f *console.UserFilters) error {
			role, _ := cmd.Flags().GetString("role")
			f.Role = lq.Text(role)
			return nil
		},
	}
}

func measurementEntity() entity[measurementDomain.Measurement, console.MeasurementFilters] {
	return entity[measurementDomain.Measurement, console.MeasurementFilters]{
		name:    "measurement",
		short:   "mediciones",
		schema:  console.Measurements(),
		columns: console.MeasurementColumns(),
		flags: func(cmd *cobra.Command) {
			cmd.Flags().Int64("client", 0, "id del cliente")
			cmd.Flags().String("date", "", "rango de fechas FROM..TO")
			cmd.Flags().String("weight", "", "rango de peso MIN..MAX")
		},
		filters: func(cmd *cobra.Command, f *console.MeasurementFilters) error {
			client, _ := cmd.Flags().GetInt64("client")
			date, _ := cmd.Flags().GetString("date")
			weight, _ := cmd.Flags().GetString("weight")

			var err error
			f.ClientID = f.ClientID.Set(client)
			if f.DateRange, err = parseDateRange(date); err != nil {
				return err
			}
			f.WeightRange, err = parseAmountRange(weight)
			return err
		},
	}
}

func assetEntity() entity[assetDomain.Asset, console.AssetFilters] {
	return entity[assetDomain.Asset, console.AssetFilters]{
		name:    "asset",
		short:   "equipamiento",
		schema:  console.Assets(),
		columns: console.AssetColumns(),
		flags: func(cmd *cobra.Command) {
			cmd.Flags().String("condition", "", "new, good, maintenance o broken")
			cmd.Flags().String("purchased", "", "rango de compra FROM..TO")
			cmd.Flags().String("value", "", "rango de valor MIN..MAX")
		},
		filters: func(cmd *cobra.Command, f *console.AssetFilters) error {
			condition, _ := cmd.Flags().GetString("condition")
			purchased, _ := cmd.Flags().GetString("purchased")
			value, _ := cmd.Flags().GetString("value")

			var err error
			f.Condition = lq.Text(condition)
			if f.PurchaseDateRange, err = parseDateRange(purchased); err != nil {
				return err
			}
			f.ValueRange, err = parseAmountRange(value)
			return err
		},
	}
}

func templateEntity() entity[notificationDomain.Template, console.TemplateFilters] {
	return entity[notificationDomain.Template, console.TemplateFilters]{
		name:    "template",
		short:   "plantillas",
		schema:  console.Templates(),
		columns: console.TemplateColumns(),
		flags: func(cmd *cobra.Command) {
			cmd.Flags().String("channel", "", "email o whatsapp")
		},
		filters: func(cmd *cobra.Command, f *console.TemplateFilters) error {
			channel, _ := cmd.Flags().GetString("channel")
			f.Channel = lq.Text(channel)
			return nil
		},
	}
}
