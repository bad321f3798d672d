package console

import (
	"context"

	"github.com/davicafu/gymlab/internal/apiclient"
	lq "github.com/davicafu/gymlab/internal/listquery"
	sharedHttp "github.com/davicafu/gymlab/internal/shared/infra/inbound/http"
)

// API es la parte del cliente HTTP que usan las acciones de la consola.
type API interface {
	lq.Getter
	Delete(ctx context.Context, path string, body interface{}) (string, error)
	LoggedUserID() int64
}

var _ API = (*apiclient.Client)(nil)

// Delete borra el registro id y vuelve a consultar el listado. Si era el último
// de la última página, la página se corrige hacia atrás hasta ser válida.
func Delete[T any, F lq.Filters](ctx context.Context, api API, ctl *lq.Controller[T, F], id int64) (string, lq.FetchResult[T], error) {
	msg, err := api.Delete(ctx, apiclient.DeletePath(ctl.Schema().Endpoint, id),
		sharedHttp.DeleteRequest{ParamLoggedIdUser: api.LoggedUserID()})
	if err != nil {
		return "", lq.FetchResult[T]{}, err
	}
	if ctl.ActiveEditingID() == id {
		ctl.ResetEditing()
	}
	return msg, ctl.Settle(ctx), nil
}
