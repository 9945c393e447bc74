package external_services

import (
	"context"
	"fmt"

	"github.com/mikiasgoitom/yamdb/internal/domain/contract"
	"github.com/resend/resend-go/v2"
)

// ResendEmailService delivers mail through the Resend HTTP API.
type ResendEmailService struct {
	client *resend.Client
	from   string
}

func NewResendEmailService(apiKey, from string) *ResendEmailService {
	return &ResendEmailService{client: resend.NewClient(apiKey), from: from}
}

var _ contract.IEmailService = (*ResendEmailService)(nil)

func (rs *ResendEmailService) SendEmail(ctx context.Context, to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    rs.from,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}
	if _, err := rs.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send email to %s via resend: %w", to, err)
	}
	return nil
}
