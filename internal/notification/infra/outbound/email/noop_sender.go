package email

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davicafu/gymlab/internal/notification/domain"
)

// NoopSender no entrega nada: guarda los mensajes y los deja en el log.
// Se usa cuando no hay RESEND_API_KEY y en tests.
type NoopSender struct {
	mu   sync.Mutex
	sent []domain.Message
	log  *zap.Logger
}

func NewNoopSender(log *zap.Logger) *NoopSender {
	return &NoopSender{log: log}
}

func (s *NoopSender) Send(ctx context.Context, msg domain.Message) (string, error) {
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	s.log.Info("Email not delivered (noop sender)", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return "noop-" + uuid.NewString(), nil
}

// Sent devuelve una copia de los mensajes recibidos.
func (s *NoopSender) Sent() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Message(nil), s.sent...)
}

var _ domain.Sender = (*NoopSender)(nil)
