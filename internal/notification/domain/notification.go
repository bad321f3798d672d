package domain

import (
	"strconv"
	"time"

	clientDomain "github.com/davicafu/gymlab/internal/client/domain"
)

const (
	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusPending = "pending"
)

// Notification registra cada envío (o intento) de una plantilla a un socio.
type Notification struct {
	ID         int64     `json:"id"`
	TemplateID int64     `json:"templateId"`
	ClientID   int64     `json:"clientId"`
	Channel    string    `json:"channel"`
	Recipient  string    `json:"recipient"`
	Subject    string    `json:"subject"`
	Status     string    `json:"status"`
	ProviderID string    `json:"providerId"`
	Error      string    `json:"error"`
	CreatedBy  int64     `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (n *Notification) PartitionKey() string {
	return strconv.FormatInt(n.ClientID, 10)
}

// Message es lo que recibe el Sender ya renderizado.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// ClientVars son las variables disponibles en las plantillas.
func ClientVars(c *clientDomain.Client) map[string]string {
	return map[string]string{
		"names":     c.Names,
		"lastNames": c.LastNames,
		"fullName":  c.FullName(),
		"email":     c.Email,
		"phone":     c.Phone,
	}
}
