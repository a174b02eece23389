package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"blood-connect/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, name, role string) error
	SendNotificationEmail(ctx context.Context, toEmail, name, title, message string) error
}

// Sender is the part of the Resend client the service uses.
type Sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type service struct {
	sender    Sender
	fromEmail string
}

// NewService returns nil when no API key is configured. Callers treat a nil
// Service as "email disabled".
func NewService(cfg *config.Config) Service {
	if cfg.ResendAPIKey == "" {
		return nil
	}
	client := resend.NewClient(cfg.ResendAPIKey)
	return NewServiceWithSender(client.Emails, cfg.FromEmail)
}

func NewServiceWithSender(sender Sender, fromEmail string) Service {
	return &service{sender: sender, fromEmail: fromEmail}
}

func render(templateName string, data any) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout.html", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(ctx context.Context, toEmail, subject, templateName string, data any) error {
	html, err := render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("BloodConnect <%s>", s.fromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	_, err = s.sender.Send(params)
	return err
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, name, role string) error {
	data := struct {
		Title string
		Name  string
		Role  string
	}{
		Title: "Welcome to BloodConnect",
		Name:  name,
		Role:  role,
	}
	return s.sendEmail(ctx, toEmail, "Welcome to BloodConnect!", "welcome.html", data)
}

func (s *service) SendNotificationEmail(ctx context.Context, toEmail, name, title, message string) error {
	data := struct {
		Title   string
		Name    string
		Message string
	}{
		Title:   title,
		Name:    name,
		Message: message,
	}
	return s.sendEmail(ctx, toEmail, title+" - BloodConnect", "notification.html", data)
}
