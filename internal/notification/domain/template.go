package domain

import (
	"strconv"
	"strings"
	"time"

	sharedBus "github.com/davicafu/gymlab/internal/shared/infra/platform/bus"
)

// Canales de envío. Solo email se entrega desde el backend; el resto queda
// registrado como pendiente para envío manual.
const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
)

func ValidChannel(ch string) bool {
	return ch == ChannelEmail || ch == ChannelWhatsApp
}

// WelcomeTemplate es el nombre de la plantilla que se envía al dar de alta un socio.
const WelcomeTemplate = "welcome"

// Template es una plantilla de mensaje en markdown con variables {{clave}}.
type Template struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Channel   string     `json:"channel"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	CreatedBy int64      `json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

func (t *Template) PartitionKey() string {
	return strconv.FormatInt(t.ID, 10)
}

func (t *Template) Validate() error {
	t.Name = strings.ToLower(strings.TrimSpace(t.Name))
	if t.Channel == "" {
		t.Channel = ChannelEmail
	}
	if t.Name == "" || strings.TrimSpace(t.Body) == "" || !ValidChannel(t.Channel) {
		return ErrInvalidTemplate
	}
	if t.Channel == ChannelEmail && strings.TrimSpace(t.Subject) == "" {
		return ErrInvalidTemplate
	}
	return nil
}

// Fill sustituye las variables {{clave}} del asunto y del cuerpo.
// Las claves sin valor se dejan tal cual.
func (t *Template) Fill(vars map[string]string) (subject, body string) {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	r := strings.NewReplacer(pairs...)
	return r.Replace(t.Subject), r.Replace(t.Body)
}

var _ sharedBus.Keyer = (*Template)(nil)
