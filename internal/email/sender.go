package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Sender submits one rendered message to the email provider and returns the
// provider's message id.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) (string, error)
}

type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) Send(ctx context.Context, to, subject, html string) (string, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return "", fmt.Errorf("resend send: %w", err)
	}
	return sent.Id, nil
}
