package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/rpupo63/artist-portfolio-backend/config"
	"github.com/rpupo63/artist-portfolio-backend/database"
	"github.com/rpupo63/artist-portfolio-backend/models"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []Email
	err  error
}

func (m *fakeMailer) Send(_ context.Context, email Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

type fakeSMS struct {
	to, body string
}

func (s *fakeSMS) SendSMS(_ context.Context, to, body string) error {
	s.to, s.body = to, body
	return nil
}

func submission() ContactInput {
	in := ContactInput{Name: " Jane ", Email: "Jane.Doe@Example.com", Description: " Booking for a wedding "}
	in.Normalize()
	return in
}

func storedStatus(t *testing.T, db database.Database, id string) models.ContactStatus {
	t.Helper()
	requests, _, err := db.ContactRequestRepo().List(context.Background(), models.NewPage(1, 100))
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range requests {
		if r.ID == id {
			return r.Status
		}
	}
	t.Fatalf("contact request %s not stored", id)
	return ""
}

func TestContactSubmitNotifiesAndMarksSent(t *testing.T) {
	db := database.NewMemory()
	mailer := &fakeMailer{}
	sms := &fakeSMS{}
	svc := NewContactService(db.ContactRequestRepo(), []Notifier{
		AdminEmailNotifier{Mailer: mailer, AdminEmail: "owner@example.com"},
		ConfirmationNotifier{Mailer: mailer},
		AdminSMSNotifier{Sender: sms, AdminPhone: "+15550100"},
	}, time.Second)

	receipt, err := svc.Submit(context.Background(), submission())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.Status != models.ContactStatusPending || receipt.ID == "" {
		t.Errorf("unexpected receipt: %+v", receipt)
	}

	svc.Wait()

	if got := storedStatus(t, db, receipt.ID); got != models.ContactStatusSent {
		t.Errorf("expected sent, got %q", got)
	}
	if len(mailer.sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(mailer.sent))
	}

	var admin, confirmation *Email
	for i := range mailer.sent {
		switch mailer.sent[i].To[0] {
		case "owner@example.com":
			admin = &mailer.sent[i]
		case "jane.doe@example.com":
			confirmation = &mailer.sent[i]
		}
	}
	if admin == nil || admin.ReplyTo != "jane.doe@example.com" {
		t.Errorf("admin email missing or without reply-to: %+v", admin)
	}
	if confirmation == nil || confirmation.Subject != "Thank you for your request" {
		t.Errorf("confirmation email missing: %+v", confirmation)
	}
	if sms.to != "+15550100" || !strings.Contains(sms.body, "Jane") {
		t.Errorf("unexpected sms: %+v", sms)
	}
}

func TestContactNotificationFailureDoesNotFailSubmit(t *testing.T) {
	db := database.NewMemory()
	mailer := &fakeMailer{err: errors.New("provider down")}
	svc := NewContactService(db.ContactRequestRepo(), []Notifier{ConfirmationNotifier{Mailer: mailer}}, time.Second)

	receipt, err := svc.Submit(context.Background(), submission())
	if err != nil {
		t.Fatalf("submit should succeed when mail fails: %v", err)
	}
	svc.Wait()

	if got := storedStatus(t, db, receipt.ID); got != models.ContactStatusFailed {
		t.Errorf("expected failed, got %q", got)
	}
}

func TestContactWithoutNotifiersStaysPending(t *testing.T) {
	db := database.NewMemory()
	svc := NewContactService(db.ContactRequestRepo(), nil, time.Second)

	receipt, err := svc.Submit(context.Background(), submission())
	if err != nil {
		t.Fatal(err)
	}
	svc.Wait()
	if got := storedStatus(t, db, receipt.ID); got != models.ContactStatusPending {
		t.Errorf("expected pending, got %q", got)
	}

	requests, pagination, err := svc.List(context.Background(), models.NewPage(1, 10))
	if err != nil || len(requests) != 1 || pagination.Total != 1 {
		t.Errorf("list: len=%d pagination=%+v err=%v", len(requests), pagination, err)
	}
}

func TestContactDispatchOutlivesRequestContext(t *testing.T) {
	db := database.NewMemory()
	mailer := &fakeMailer{}
	svc := NewContactService(db.ContactRequestRepo(), []Notifier{ConfirmationNotifier{Mailer: mailer}}, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	receipt, err := svc.Submit(ctx, submission())
	cancel()
	if err != nil {
		t.Fatal(err)
	}

	drainCtx, stop := context.WithTimeout(context.Background(), 2*time.Second)
	defer stop()
	if err := svc.Drain(drainCtx); err != nil {
		t.Fatalf("drain: %v", err)
	}
	if got := storedStatus(t, db, receipt.ID); got != models.ContactStatusSent {
		t.Errorf("expected sent after request context cancelled, got %q", got)
	}
}

func TestResendMailer(t *testing.T) {
	var received ResendEmailRequest
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &received)
		if received.Subject == "fail" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"message":"invalid from address"}`))
			return
		}
		w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer server.Close()

	mailer := NewResendMailer(config.MailConfig{
		ResendAPIKey: "re_test",
		ResendURL:    server.URL,
		From:         "Portfolio <noreply@example.com>",
		Timeout:      time.Second,
	})

	err := mailer.Send(context.Background(), Email{To: []string{"a@example.com"}, Subject: "hello", HTML: "<p>hi</p>", ReplyTo: "b@example.com"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if authHeader != "Bearer re_test" {
		t.Errorf("unexpected auth header %q", authHeader)
	}
	if received.From != "Portfolio <noreply@example.com>" || received.ReplyTo != "b@example.com" || received.Html != "<p>hi</p>" {
		t.Errorf("unexpected payload: %+v", received)
	}

	err = mailer.Send(context.Background(), Email{To: []string{"a@example.com"}, Subject: "fail"})
	if err == nil || !strings.Contains(err.Error(), "invalid from address") {
		t.Errorf("expected provider error, got %v", err)
	}

	if err := mailer.Send(context.Background(), Email{Subject: "nobody"}); err == nil {
		t.Errorf("expected error without recipients")
	}
}

func TestBreakerMailerOpensAfterRepeatedFailures(t *testing.T) {
	next := &fakeMailer{err: errors.New("provider down")}
	mailer := NewBreakerMailer(next)

	for i := 0; i < 5; i++ {
		mailer.Send(context.Background(), Email{To: []string{"a@example.com"}})
	}
	if mailer.State().String() != "open" {
		t.Fatalf("expected open breaker, got %s", mailer.State())
	}

	next.err = nil
	if err := mailer.Send(context.Background(), Email{To: []string{"a@example.com"}}); err == nil {
		t.Errorf("open breaker should fail fast")
	}
	if len(next.sent) != 0 {
		t.Errorf("open breaker should not call the provider")
	}
}

func TestNewContactNotifiers(t *testing.T) {
	cfg := config.Default()
	if got := NewContactNotifiers(cfg); len(got) != 0 {
		t.Errorf("expected no notifiers without credentials, got %d", len(got))
	}

	cfg.Mail.ResendAPIKey = "re_test"
	cfg.Mail.From = "noreply@example.com"
	cfg.Mail.AdminEmail = "owner@example.com"
	channels := map[string]bool{}
	for _, n := range NewContactNotifiers(cfg) {
		channels[n.Channel()] = true
	}
	if !channels["admin_email"] || !channels["confirmation_email"] || channels["admin_sms"] {
		t.Errorf("unexpected channels: %v", channels)
	}
}
