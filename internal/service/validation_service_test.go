package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"account-api/internal/domain"
)

type mockSender struct {
	toEmail string
	link    string
	err     error
	calls   int
}

func (m *mockSender) SendValidationLink(_ context.Context, toEmail, link string) error {
	m.calls++
	m.toEmail = toEmail
	m.link = link
	return m.err
}

func TestValidationService_SendReusesCreationToken(t *testing.T) {
	repo := newMockUserRepo()
	seeded := seedUser(t, repo, "u1", "a@b.com", "nick", "pw")
	sender := &mockSender{}
	svc := NewValidationService(nil, repo, sender, "http://localhost:8080/")

	if err := svc.Send(context.Background(), "u1"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if sender.toEmail != "a@b.com" {
		t.Fatalf("unexpected recipient: %q", sender.toEmail)
	}
	wantLink := "http://localhost:8080/user/verify/email/receive?id=u1&token=" + seeded.Validation.Email.Sent
	if sender.link != wantLink {
		t.Fatalf("unexpected link:\n got %q\nwant %q", sender.link, wantLink)
	}

	stored := repo.usersByID["u1"]
	if stored.Validation.Email.Sent != seeded.Validation.Email.Sent {
		t.Fatalf("expected creation token reused, got %q", stored.Validation.Email.Sent)
	}
}

func TestValidationService_SendGeneratesTokenWhenMissing(t *testing.T) {
	repo := newMockUserRepo()
	user := seedUser(t, repo, "u1", "a@b.com", "nick", "pw")
	user.Validation.Email.Sent = ""
	repo.usersByID["u1"] = user
	sender := &mockSender{}
	svc := NewValidationService(nil, repo, sender, "http://localhost:8080")

	if err := svc.Send(context.Background(), "u1"); err != nil {
		t.Fatalf("send: %v", err)
	}

	stored := repo.usersByID["u1"]
	if stored.Validation.Email.Sent == "" {
		t.Fatalf("expected fresh token persisted")
	}
	if !strings.Contains(sender.link, "token="+stored.Validation.Email.Sent) {
		t.Fatalf("expected link to carry persisted token, got %q", sender.link)
	}
}

func TestValidationService_SendFailure(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "u1", "a@b.com", "nick", "pw")
	svc := NewValidationService(nil, repo, &mockSender{err: errors.New("smtp down")}, "http://localhost:8080")

	if err := svc.Send(context.Background(), "u1"); !errors.Is(err, ErrEmailSendFailure) {
		t.Fatalf("expected ErrEmailSendFailure, got %v", err)
	}
}

func TestValidationService_ReceiveMatch(t *testing.T) {
	repo := newMockUserRepo()
	seeded := seedUser(t, repo, "u1", "a@b.com", "nick", "pw")
	svc := NewValidationService(nil, repo, &mockSender{}, "http://localhost:8080")

	user, err := svc.Receive(context.Background(), "u1", domain.MediumEmail, seeded.Validation.Email.Sent)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if user.Validation.Email.Received != seeded.Validation.Email.Sent {
		t.Fatalf("expected received == sent, got %+v", user.Validation.Email)
	}
	if !user.IsValidated() {
		t.Fatalf("expected user validated after match")
	}

	stored := repo.usersByID["u1"]
	if !stored.IsValidated() {
		t.Fatalf("expected validation persisted")
	}
}

func TestValidationService_ReceiveMismatch(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "u1", "a@b.com", "nick", "pw")
	svc := NewValidationService(nil, repo, &mockSender{}, "http://localhost:8080")

	if _, err := svc.Receive(context.Background(), "u1", domain.MediumEmail, "wrong-token"); !errors.Is(err, ErrValidationToken) {
		t.Fatalf("expected ErrValidationToken, got %v", err)
	}
	if repo.usersByID["u1"].IsValidated() {
		t.Fatalf("expected user to stay unvalidated after mismatch")
	}
}

func TestValidationService_ReceiveWithoutSentToken(t *testing.T) {
	repo := newMockUserRepo()
	user := seedUser(t, repo, "u1", "a@b.com", "nick", "pw")
	user.Validation.Email.Sent = ""
	repo.usersByID["u1"] = user
	svc := NewValidationService(nil, repo, &mockSender{}, "http://localhost:8080")

	if _, err := svc.Receive(context.Background(), "u1", domain.MediumEmail, "anything"); !errors.Is(err, ErrValidationNotSent) {
		t.Fatalf("expected ErrValidationNotSent, got %v", err)
	}
}

func TestValidationService_ReceiveUnknownMedium(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "u1", "a@b.com", "nick", "pw")
	svc := NewValidationService(nil, repo, &mockSender{}, "http://localhost:8080")

	if _, err := svc.Receive(context.Background(), "u1", "sms", "anything"); !errors.Is(err, ErrUnknownMedium) {
		t.Fatalf("expected ErrUnknownMedium, got %v", err)
	}
}

func TestValidationService_ReceiveMissingUser(t *testing.T) {
	svc := NewValidationService(nil, newMockUserRepo(), &mockSender{}, "http://localhost:8080")

	if _, err := svc.Receive(context.Background(), "ghost", domain.MediumEmail, "tok"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
