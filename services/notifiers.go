package services

import (
	"context"
	"fmt"
	"html"

	"github.com/rpupo63/artist-portfolio-backend/config"
	"github.com/rpupo63/artist-portfolio-backend/models"
)

// Notifier delivers one kind of notification about a contact request.
type Notifier interface {
	Channel() string
	Notify(ctx context.Context, request models.ContactRequest) error
}

// NewContactNotifiers builds the notifiers enabled by cfg. With no mail or SMS
// credentials the list is empty and contact requests stay pending.
func NewContactNotifiers(cfg config.Config) []Notifier {
	var notifiers []Notifier

	if cfg.Mail.Enabled() {
		mailer := NewBreakerMailer(NewResendMailer(cfg.Mail))
		if cfg.Mail.AdminEmail != "" {
			notifiers = append(notifiers, AdminEmailNotifier{Mailer: mailer, AdminEmail: cfg.Mail.AdminEmail})
		}
		notifiers = append(notifiers, ConfirmationNotifier{Mailer: mailer})
	}

	if cfg.SMS.Enabled() {
		notifiers = append(notifiers, AdminSMSNotifier{Sender: NewTwilioSender(cfg.SMS), AdminPhone: cfg.SMS.AdminPhone})
	}

	return notifiers
}

// AdminEmailNotifier forwards the submission to the admin inbox with the
// submitter as reply-to.
type AdminEmailNotifier struct {
	Mailer     Mailer
	AdminEmail string
}

func (n AdminEmailNotifier) Channel() string { return "admin_email" }

func (n AdminEmailNotifier) Notify(ctx context.Context, request models.ContactRequest) error {
	name := html.EscapeString(request.Name)
	return n.Mailer.Send(ctx, Email{
		To:      []string{n.AdminEmail},
		Subject: fmt.Sprintf("New Contact Form Submission from %s", request.Name),
		ReplyTo: request.Email,
		Text:    fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", request.Name, request.Email, request.Description),
		HTML: fmt.Sprintf(`<h3>New Contact Form Submission</h3>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>`, name, html.EscapeString(request.Email), html.EscapeString(request.Description)),
	})
}

// ConfirmationNotifier thanks the submitter.
type ConfirmationNotifier struct {
	Mailer Mailer
}

func (n ConfirmationNotifier) Channel() string { return "confirmation_email" }

func (n ConfirmationNotifier) Notify(ctx context.Context, request models.ContactRequest) error {
	return n.Mailer.Send(ctx, Email{
		To:      []string{request.Email},
		Subject: "Thank you for your request",
		Text:    fmt.Sprintf("Dear %s, thank you for your request! We will contact you soon.", request.Name),
		HTML: fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #28a745;">Thank you for your request!</h2>
  <p>Dear <strong>%s</strong>,</p>
  <p>Your request has been successfully received and will be reviewed shortly.</p>
  <p>We will contact you soon.</p>
</div>`, html.EscapeString(request.Name)),
	})
}

// AdminSMSNotifier texts the admin a one-line summary.
type AdminSMSNotifier struct {
	Sender     SMSSender
	AdminPhone string
}

func (n AdminSMSNotifier) Channel() string { return "admin_sms" }

func (n AdminSMSNotifier) Notify(ctx context.Context, request models.ContactRequest) error {
	body := fmt.Sprintf("New contact request from %s <%s>", request.Name, request.Email)
	return n.Sender.SendSMS(ctx, n.AdminPhone, body)
}
