package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"github.com/davicafu/gymlab/internal/notification/domain"
)

// ResendSender entrega emails con la API de Resend.
type ResendSender struct {
	client *resend.Client
	from   string
	log    *zap.Logger
}

func NewResendSender(apiKey, from string, log *zap.Logger) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from, log: log}
}

func (s *ResendSender) Send(ctx context.Context, msg domain.Message) (string, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		s.log.Error("❌ Resend send failed", zap.String("to", msg.To), zap.Error(err))
		return "", fmt.Errorf("resend send failed: %w", err)
	}
	s.log.Info("📧 Email sent", zap.String("messageId", sent.Id), zap.String("to", msg.To))
	return sent.Id, nil
}

var _ domain.Sender = (*ResendSender)(nil)
