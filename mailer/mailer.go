// Package mailer delivers transactional email.
package mailer

//go:generate mockgen -source=mailer.go -destination=../mocks/mock_mailer.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends a single HTML message.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// SendGrid delivers through the SendGrid v3 API.
type SendGrid struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewSendGrid(apiKey, fromName, fromAddr string) *SendGrid {
	return &SendGrid{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromAddr),
	}
}

func (s *SendGrid) Send(ctx context.Context, to, subject, html string) error {
	msg := mail.NewSingleEmail(s.from, subject, mail.NewEmail("", to), "", html)
	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: unexpected status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// Log writes messages to the structured log instead of sending them. Used
// when no provider key is configured.
type Log struct{}

func (Log) Send(_ context.Context, to, subject, html string) error {
	slog.Info("mail not sent, no provider configured", "to", to, "subject", subject, "bytes", len(html))
	return nil
}

var resetTmpl = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
  <head><meta charset="utf-8"><title>Password reset</title></head>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h2 style="color: #2c3e50;">{{.Restaurant}}</h2>
      <h3 style="color: #34495e;">Password reset</h3>
      <p>You asked to reset your password. Use the button below to choose a new one:</p>
      <div style="text-align: center; margin: 30px 0;">
        <a href="{{.Link}}" style="background-color: #3498db; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Reset password</a>
      </div>
      <p>Or paste this link into your browser:</p>
      <p style="background-color: #f4f4f4; padding: 10px; border-radius: 4px; word-break: break-all;">{{.Link}}</p>
      <p style="color: #7f8c8d; font-size: 14px; margin-top: 30px;">This link expires in {{.Validity}}.</p>
      <p style="color: #7f8c8d; font-size: 14px;">If you did not request this, ignore this email.</p>
    </div>
  </body>
</html>`))

// PasswordResetEmail renders the body of the reset message.
func PasswordResetEmail(restaurant, frontendURL, token, validity string) (string, error) {
	link := frontendURL + "/reset-password?token=" + url.QueryEscape(token)
	var buf bytes.Buffer
	err := resetTmpl.Execute(&buf, map[string]string{
		"Restaurant": restaurant,
		"Link":       link,
		"Validity":   validity,
	})
	if err != nil {
		return "", fmt.Errorf("render reset email: %w", err)
	}
	return buf.String(), nil
}
