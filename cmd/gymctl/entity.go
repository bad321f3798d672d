package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/davicafu/gymlab/internal/console"
	lq "github.com/davicafu/gymlab/internal/listquery"
)

// entity describe un listado de la consola: su esquema, sus columnas y cómo
// se traducen sus flags propios a filtros.
type entity[T any, F lq.Filters] struct {
	name    string
	short   string
	schema  lq.Schema[T, F]
	columns []console.Column[T]
	flags   func(cmd *cobra.Command)
	filters func(cmd *cobra.Command, f *F) error
	// readOnly omite el subcomando delete.
	readOnly bool
}

func (e entity[T, F]) command() *cobra.Command {
	parent := &cobra.Command{Use: e.name, Short: e.short, GroupID: "entities"}

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista " + e.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := e.controller(cmd)
			if err != nil {
				return err
			}
			res := ctl.Settle(context.Background())
			if err := result(res); err != nil {
				return err
			}
			return e.print(ctl)
		},
	}
	e.listFlags(list)
	parent.AddCommand(list)
	if e.readOnly {
		return parent
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina un registro y muestra la página resultante",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", args[0])
			}
			ctl, err := e.controller(cmd)
			if err != nil {
				return err
			}
			before := ctl.Snapshot().Page
			msg, res, err := console.Delete(context.Background(), api, ctl, id)
			if err != nil {
				return expire(err)
			}
			fmt.Println("🗑️ " + msg)
			if err := result(res); err != nil {
				return err
			}
			if page := ctl.Snapshot().Page; page != before {
				fmt.Printf("Página corregida a %d\n", page)
			}
			return e.print(ctl)
		},
	}
	e.listFlags(del)

	parent.AddCommand(del)
	return parent
}

func (e entity[T, F]) listFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 1, "página")
	cmd.Flags().Int("size", e.defaultSize(), fmt.Sprintf("registros por página %v", lq.AllowedSizes))
	cmd.Flags().String("search", "", "texto a buscar")
	cmd.Flags().Int("search-type", e.schema.DefaultSearchType, "campo de búsqueda")
	cmd.Flags().String("order-by", "", "campo de ordenación")
	cmd.Flags().String("direction", lq.DirectionAsc, "ASC o DESC")
	if e.hasStatus() {
		cmd.Flags().String("status", "", "Inactivos o Todos (por defecto solo activos)")
	}
	if e.flags != nil {
		e.flags(cmd)
	}
}

// hasStatus indica si los filtros de la entidad admiten borrado lógico.
func (e entity[T, F]) hasStatus() bool {
	_, ok := interface{}(new(F)).(console.StatusSetter)
	return ok
}

func (e entity[T, F]) defaultSize() int {
	if e.schema.DefaultSize > 0 {
		return e.schema.DefaultSize
	}
	return 10
}

// controller aplica los flags al estado como lo haría la vista: cada cambio
// es una transición del controlador.
func (e entity[T, F]) controller(cmd *cobra.Command) (*lq.Controller[T, F], error) {
	flags := cmd.Flags()
	page, _ := flags.GetInt("page")
	size, _ := flags.GetInt("size")
	search, _ := flags.GetString("search")
	searchType, _ := flags.GetInt("search-type")
	orderBy, _ := flags.GetString("order-by")
	direction, _ := flags.GetString("direction")
	status, _ := flags.GetString("status")

	direction = strings.ToUpper(direction)
	if direction != lq.DirectionAsc && direction != lq.DirectionDesc {
		return nil, fmt.Errorf("invalid direction %q", direction)
	}
	if page < 1 {
		return nil, fmt.Errorf("invalid page %d", page)
	}
	if !slices.Contains(lq.AllowedSizes, size) {
		return nil, fmt.Errorf("invalid size %d, allowed %v", size, lq.AllowedSizes)
	}

	var filters F
	if e.schema.NewFilters != nil {
		filters = e.schema.NewFilters()
	}
	if e.filters != nil {
		if err := e.filters(cmd, &filters); err != nil {
			return nil, err
		}
	}
	if err := setStatus(&filters, lq.Status(status)); err != nil {
		return nil, err
	}

	ctl := lq.New(e.schema, api)
	ctl.ChangeSize(size)
	ctl.ChangeSearchType(searchType)
	ctl.ChangeSearchTerm(search)
	ctl.ChangeFilters(func(f *F) { *f = filters })
	if orderBy != "" {
		ctl.ChangeOrderBy(orderBy)
		if ctl.Snapshot().DirectionOrderBy != direction {
			ctl.ChangeOrderBy(orderBy)
		}
	}
	ctl.ChangePage(page)
	return ctl, nil
}

func (e entity[T, F]) print(ctl *lq.Controller[T, F]) error {
	s := ctl.Snapshot()
	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"items":        ctl.Items(),
			"page":         s.Page,
			"size":         s.Size,
			"totalRecords": s.TotalRecords,
			"totalPages":   s.TotalPages(),
		})
	}
	if err := console.Render(os.Stdout, e.columns, ctl.Items(), s.OrderBy, s.DirectionOrderBy); err != nil {
		return err
	}
	fmt.Printf("\nPágina %d de %d (%d registros)\n", s.Page, s.TotalPages(), s.TotalRecords)
	return nil
}

// result convierte un FetchResult fallido en error. Un 401 borra la sesión.
func result[T any](res lq.FetchResult[T]) error {
	switch {
	case res.Logout:
		return expire(res.Err)
	case res.Err != nil:
		return res.Err
	}
	return nil
}

// ---------------- Parseo de flags de filtro ----------------

func setStatus(filters interface{}, status lq.Status) error {
	switch status {
	case lq.StatusActive, lq.StatusInactive, lq.StatusAll:
	default:
		return fmt.Errorf("invalid status %q", status)
	}
	s, ok := filters.(console.StatusSetter)
	if !ok {
		if status != lq.StatusActive {
			return fmt.Errorf("status filter not supported")
		}
		return nil
	}
	s.SetStatus(status)
	return nil
}

// parseDateRange lee "2024-01-01..2024-01-31". Vacío significa sin rango.
func parseDateRange(value string) (lq.DateRange, error) {
	if value == "" {
		return lq.DateRange{}, nil
	}
	from, to, ok := strings.Cut(value, "..")
	if !ok {
		return lq.DateRange{}, fmt.Errorf("invalid date range %q, expected FROM..TO", value)
	}
	lo, err := time.Parse(lq.DateLayout, from)
	if err != nil {
		return lq.DateRange{}, fmt.Errorf("invalid date %q", from)
	}
	hi, err := time.Parse(lq.DateLayout, to)
	if err != nil {
		return lq.DateRange{}, fmt.Errorf("invalid date %q", to)
	}
	return lq.Dates(lo, hi), nil
}

// parseAmountRange lee "10..50.5".
func parseAmountRange(value string) (lq.AmountRange, error) {
	if value == "" {
		return lq.AmountRange{}, nil
	}
	from, to, ok := strings.Cut(value, "..")
	if !ok {
		return lq.AmountRange{}, fmt.Errorf("invalid range %q, expected MIN..MAX", value)
	}
	lo, err := strconv.ParseFloat(from, 64)
	if err != nil {
		return lq.AmountRange{}, fmt.Errorf("invalid number %q", from)
	}
	hi, err := strconv.ParseFloat(to, 64)
	if err != nil {
		return lq.AmountRange{}, fmt.Errorf("invalid number %q", to)
	}
	return lq.Amounts(lo, hi), nil
}

// parseFlag lee "true", "false" o "" (sin filtrar).
func parseFlag(value string) (lq.Flag, error) {
	if value == "" {
		return lq.Flag{}, nil
	}
	v, err := strconv.ParseBool(value)
	if err != nil {
		return lq.Flag{}, fmt.Errorf("invalid boolean %q", value)
	}
	return lq.FlagOf(v), nil
}
