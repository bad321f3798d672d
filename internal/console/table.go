package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	assetDomain "github.com/davicafu/gymlab/internal/asset/domain"
	clientDomain "github.com/davicafu/gymlab/internal/client/domain"
	exerciseDomain "github.com/davicafu/gymlab/internal/exercise/domain"
	ledgerDomain "github.com/davicafu/gymlab/internal/ledger/domain"
	measurementDomain "github.com/davicafu/gymlab/internal/measurement/domain"
	notificationDomain "github.com/davicafu/gymlab/internal/notification/domain"
	userDomain "github.com/davicafu/gymlab/internal/user/domain"
)

const dateLayout = "2006-01-02"

// Column es una columna de tabla. Sort es el campo orderBy que acepta el backend,
// vacío si la columna no es ordenable.
type Column[T any] struct {
	Header string
	Sort   string
	Value  func(T) string
}

// Render escribe la tabla alineada. La columna ordenada se marca con ↑ o ↓.
func Render[T any](w io.Writer, cols []Column[T], items []T, orderBy, direction string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = col.Header
		if col.Sort != "" && col.Sort == orderBy {
			headers[i] += " " + arrow(direction)
		}
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, item := range items {
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = col.Value(item)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func arrow(direction string) string {
	if direction == "ASC" {
		return "↑"
	}
	return "↓"
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func ClientColumns() []Column[clientDomain.Client] {
	return []Column[clientDomain.Client]{
		{Header: "ID", Value: func(c clientDomain.Client) string { return id(c.ID) }},
		{Header: "NOMBRES", Sort: "names", Value: func(c clientDomain.Client) string { return c.FullName() }},
		{Header: "DOCUMENTO", Sort: "idNumber", Value: func(c clientDomain.Client) string { return c.IDNumber }},
		{Header: "EMAIL", Value: func(c clientDomain.Client) string { return c.Email }},
		{Header: "MEMBRESÍA", Sort: "membershipEndsAt", Value: func(c clientDomain.Client) string {
			if c.MembershipEndsAt == nil {
				return "-"
			}
			return c.MembershipEndsAt.Format(dateLayout)
		}},
	}
}

func EntryColumns() []Column[ledgerDomain.Entry] {
	return []Column[ledgerDomain.Entry]{
		{Header: "ID", Value: func(e ledgerDomain.Entry) string { return id(e.ID) }},
		{Header: "FECHA", Sort: "date", Value: func(e ledgerDomain.Entry) string { return e.Date.Format(dateLayout) }},
		{Header: "DESCRIPCIÓN", Sort: "description", Value: func(e ledgerDomain.Entry) string { return e.Description }},
		{Header: "CATEGORÍA", Sort: "category", Value: func(e ledgerDomain.Entry) string { return e.Category }},
		{Header: "MONTO", Sort: "amount", Value: func(e ledgerDomain.Entry) string { return money(e.Amount) }},
	}
}

func ExerciseColumns() []Column[exerciseDomain.Exercise] {
	return []Column[exerciseDomain.Exercise]{
		{Header: "ID", Value: func(e exerciseDomain.Exercise) string { return id(e.ID) }},
		{Header: "NOMBRE", Sort: "name", Value: func(e exerciseDomain.Exercise) string { return e.Name }},
		{Header: "GRUPO", Sort: "muscleGroup", Value: func(e exerciseDomain.Exercise) string { return e.MuscleGroup }},
		{Header: "DIFICULTAD", Sort: "difficulty", Value: func(e exerciseDomain.Exercise) string { return strconv.Itoa(e.Difficulty) }},
		{Header: "VIDEO", Value: func(e exerciseDomain.Exercise) string {
			if e.VideoURL == "" {
				return "no"
			}
			return "sí"
		}},
	}
}

func UserColumns() []Column[userDomain.User] {
	return []Column[userDomain.User]{
		{Header: "ID", Value: func(u userDomain.User) string { return id(u.ID) }},
		{Header: "NOMBRES", Sort: "names", Value: func(u userDomain.User) string { return u.Names }},
		{Header: "USUARIO", Sort: "username", Value: func(u userDomain.User) string { return u.Username }},
		{Header: "ROL", Sort: "role", Value: func(u userDomain.User) string { return u.Role }},
	}
}

func MeasurementColumns() []Column[measurementDomain.Measurement] {
	return []Column[measurementDomain.Measurement]{
		{Header: "ID", Value: func(m measurementDomain.Measurement) string { return id(m.ID) }},
		{Header: "CLIENTE", Value: func(m measurementDomain.Measurement) string { return m.ClientName }},
		{Header: "FECHA", Sort: "date", Value: func(m measurementDomain.Measurement) string { return m.Date.Format(dateLayout) }},
		{Header: "PESO", Sort: "weight", Value: func(m measurementDomain.Measurement) string { return money(m.Weight) }},
		{Header: "IMC", Value: func(m measurementDomain.Measurement) string { return strconv.FormatFloat(m.BMI(), 'f', 1, 64) }},
	}
}

func AssetColumns() []Column[assetDomain.Asset] {
	return []Column[assetDomain.Asset]{
		{Header: "ID", Value: func(a assetDomain.Asset) string { return id(a.ID) }},
		{Header: "CÓDIGO", Sort: "code", Value: func(a assetDomain.Asset) string { return a.Code }},
		{Header: "NOMBRE", Sort: "name", Value: func(a assetDomain.Asset) string { return a.Name }},
		{Header: "ESTADO", Value: func(a assetDomain.Asset) string { return a.Condition }},
		{Header: "VALOR", Sort: "value", Value: func(a assetDomain.Asset) string { return money(a.Value) }},
	}
}

func TemplateColumns() []Column[notificationDomain.Template] {
	return []Column[notificationDomain.Template]{
		{Header: "ID", Value: func(t notificationDomain.Template) string { return id(t.ID) }},
		{Header: "NOMBRE", Sort: "name", Value: func(t notificationDomain.Template) string { return t.Name }},
		{Header: "CANAL", Value: func(t notificationDomain.Template) string { return t.Channel }},
		{Header: "ASUNTO", Sort: "subject", Value: func(t notificationDomain.Template) string { return t.Subject }},
	}
}

func NotificationColumns() []Column[notificationDomain.Notification] {
	return []Column[notificationDomain.Notification]{
		{Header: "ID", Value: func(n notificationDomain.Notification) string { return id(n.ID) }},
		{Header: "FECHA", Sort: "createdAt", Value: func(n notificationDomain.Notification) string { return n.CreatedAt.Format("2006-01-02 15:04") }},
		{Header: "CLIENTE", Value: func(n notificationDomain.Notification) string { return id(n.ClientID) }},
		{Header: "CANAL", Value: func(n notificationDomain.Notification) string { return n.Channel }},
		{Header: "DESTINO", Value: func(n notificationDomain.Notification) string { return n.Recipient }},
		{Header: "ESTADO", Sort: "status", Value: func(n notificationDomain.Notification) string { return n.Status }},
	}
}
