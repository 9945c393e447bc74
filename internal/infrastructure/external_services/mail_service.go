package external_services

import (
	"context"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/mikiasgoitom/yamdb/internal/domain/contract"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

// EmailService delivers mail through an authenticated SMTP relay.
type EmailService struct {
	Host        string
	Port        int
	Username    string
	AppPassword string
	From        string
}

// EmailService factory
func NewEmailService(host string, port int, username, appPassword, from string) *EmailService {
	return &EmailService{
		Host:        host,
		Port:        port,
		Username:    username,
		AppPassword: appPassword,
		From:        from,
	}
}

// make sure EmailService implements contract.IEmailService
var _ contract.IEmailService = (*EmailService)(nil)

func (es *EmailService) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	msg := buildMessage(es.From, to, subject, body)
	var auth smtp.Auth
	if es.Username != "" {
		auth = smtp.PlainAuth("", es.Username, es.AppPassword, es.Host)
	}
	addr := es.Host + ":" + strconv.Itoa(es.Port)
	if err := smtp.SendMail(addr, auth, es.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send email via %s: %w", addr, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	return []byte(
		"To: " + to + "\r\n" +
			"From: " + from + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body + "\r\n",
	)
}

// LogEmailService writes outgoing mail to the application log. It stands in
// for SMTP in development, when EMAIL_HOST is unset.
type LogEmailService struct {
	from   string
	logger usecasecontract.IAppLogger
}

func NewLogEmailService(from string, logger usecasecontract.IAppLogger) *LogEmailService {
	return &LogEmailService{from: from, logger: logger}
}

var _ contract.IEmailService = (*LogEmailService)(nil)

func (ls *LogEmailService) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ls.logger.Infof("email from=%s to=%s subject=%q body=%q", ls.from, to, subject, body)
	return nil
}
