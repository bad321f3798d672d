package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	clientDomain "github.com/davicafu/gymlab/internal/client/domain"
	"github.com/davicafu/gymlab/internal/notification/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

// NotificationService rellena una plantilla con los datos de un socio,
// la entrega por su canal y deja constancia del resultado.
type NotificationService struct {
	templates     domain.TemplateRepository
	notifications domain.NotificationRepository
	clients       domain.ClientReader
	renderer      domain.Renderer
	sender        domain.Sender
	log           *zap.Logger
	now           func() time.Time
}

func NewNotificationService(
	templates domain.TemplateRepository,
	notifications domain.NotificationRepository,
	clients domain.ClientReader,
	renderer domain.Renderer,
	sender domain.Sender,
	log *zap.Logger,
) *NotificationService {
	return &NotificationService{
		templates:     templates,
		notifications: notifications,
		clients:       clients,
		renderer:      renderer,
		sender:        sender,
		log:           log,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Send envía la plantilla templateID al socio clientID. Un fallo del proveedor
// queda registrado con estado failed y también se devuelve.
func (s *NotificationService) Send(ctx context.Context, templateID, clientID, actor int64) (*domain.Notification, error) {
	tpl, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return s.deliver(ctx, tpl, client, actor)
}

// SendWelcome envía la plantilla de bienvenida a un socio recién creado.
// Si la plantilla no existe o el socio no tiene email no hace nada.
func (s *NotificationService) SendWelcome(ctx context.Context, client *clientDomain.Client) error {
	tpl, err := s.templates.GetByName(ctx, domain.WelcomeTemplate)
	if errors.Is(err, domain.ErrTemplateNotFound) {
		s.log.Debug("Welcome template not configured", zap.Int64("clientId", client.ID))
		return nil
	}
	if err != nil {
		return err
	}
	_, err = s.deliver(ctx, tpl, client, client.CreatedBy)
	if errors.Is(err, domain.ErrNoRecipient) {
		return nil
	}
	return err
}

func (s *NotificationService) deliver(ctx context.Context, tpl *domain.Template, client *clientDomain.Client, actor int64) (*domain.Notification, error) {
	recipient := client.Email
	if tpl.Channel == domain.ChannelWhatsApp {
		recipient = client.Phone
	}
	if strings.TrimSpace(recipient) == "" {
		return nil, domain.ErrNoRecipient
	}

	subject, body := tpl.Fill(domain.ClientVars(client))
	n := &domain.Notification{
		TemplateID: tpl.ID,
		ClientID:   client.ID,
		Channel:    tpl.Channel,
		Recipient:  recipient,
		Subject:    subject,
		Status:     domain.StatusPending,
		CreatedBy:  actor,
		CreatedAt:  s.now().Truncate(time.Second),
	}

	var sendErr error
	if tpl.Channel == domain.ChannelEmail {
		html, err := s.renderer.Render(body)
		if err != nil {
			return nil, err
		}
		n.ProviderID, sendErr = s.sender.Send(ctx, domain.Message{To: recipient, Subject: subject, HTML: html})
		if sendErr != nil {
			n.Status = domain.StatusFailed
			n.Error = sendErr.Error()
		} else {
			n.Status = domain.StatusSent
		}
	}

	if err := s.notifications.Record(ctx, n, sharedDomain.NewOutboxEvent(domain.NotificationAggregate, "", domain.NotificationSent, n)); err != nil {
		return nil, err
	}
	s.log.Info("Notificación registrada", zap.Int64("id", n.ID), zap.Int64("clientId", n.ClientID), zap.String("status", n.Status))
	if sendErr != nil {
		return n, sendErr
	}
	return n, nil
}

func (s *NotificationService) ListNotifications(ctx context.Context, criteria sharedDomain.Criteria, q sharedQuery.ListQuery) (sharedQuery.Page[domain.Notification], error) {
	return s.notifications.List(ctx, criteria, q.Sort, q.Pagination())
}
