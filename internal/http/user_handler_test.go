package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)

	body := env.register(t, "a@b.com", "A", "nick", "pw")
	payload, ok := body["payload"].(map[string]any)
	if !ok {
		t.Fatalf("expected payload object, got %v", body)
	}
	if payload["email"] != "a@b.com" || payload["nickname"] != "nick" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if _, present := payload["password"]; present {
		t.Fatalf("password must never be serialized")
	}

	stored := env.repo.usersByID[payload["id"].(string)]
	if stored.PasswordHash == "" || stored.PasswordHash == "pw" {
		t.Fatalf("expected hashed password in store, got %q", stored.PasswordHash)
	}
	if stored.Validation.Email.Sent == "" {
		t.Fatalf("expected validation.email.sent set at creation")
	}
	if stored.Validation.Email.Received != "" {
		t.Fatalf("expected validation.email.received empty at creation")
	}
}

func TestCreateUser_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/user", "", gin.H{"email": "a@b.com", "name": "A"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["name"] != "UnprocessableEntityError" {
		t.Fatalf("unexpected error name: %v", body)
	}
}

func TestCreateUser_InvalidEmail(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/user", "", gin.H{
		"email":    "not-an-email",
		"name":     "A",
		"nickname": "nick",
		"password": "pw",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@b.com", "A", "nick", "pw")

	rec := env.do(t, http.MethodPost, "/user", "", gin.H{
		"email":    "a@b.com",
		"name":     "B",
		"nickname": "nick2",
		"password": "pw",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if len(env.repo.usersByID) != 1 {
		t.Fatalf("expected store to keep a single user, got %d", len(env.repo.usersByID))
	}
}

func TestUpdateUser_PartialLeavesOmittedFields(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@b.com", "A", "nick", "pw")
	token, _ := env.login(t, gin.H{"nickname": "nick", "password": "pw"})

	rec := env.do(t, http.MethodPatch, "/user", token, gin.H{"name": "Renamed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)["payload"].(map[string]any)
	if payload["name"] != "Renamed" {
		t.Fatalf("expected name updated, got %v", payload["name"])
	}
	if payload["email"] != "a@b.com" || payload["nickname"] != "nick" {
		t.Fatalf("expected omitted fields untouched: %v", payload)
	}
}

func TestUpdateUser_InvalidEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@b.com", "A", "nick", "pw")
	token, _ := env.login(t, gin.H{"nickname": "nick", "password": "pw"})

	rec := env.do(t, http.MethodPatch, "/user", token, gin.H{"email": "broken"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@b.com", "A", "nick", "pw")
	token, _ := env.login(t, gin.H{"nickname": "nick", "password": "pw"})

	rec := env.do(t, http.MethodDelete, "/user", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(env.repo.usersByID) != 0 {
		t.Fatalf("expected user removed from store")
	}

	// El login posterior falla con el error uniforme de credenciales.
	_, loginRec := env.login(t, gin.H{"nickname": "nick", "password": "pw"})
	if loginRec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after delete, got %d", loginRec.Code)
	}
}

func TestSendValidation(t *testing.T) {
	env := newTestEnv(t)
	body := env.register(t, "a@b.com", "A", "nick", "pw")
	payload := body["payload"].(map[string]any)
	userID := payload["id"].(string)
	token, _ := env.login(t, gin.H{"nickname": "nick", "password": "pw"})

	rec := env.do(t, http.MethodPost, "/user/verify/email/send", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if env.sender.calls != 1 || env.sender.toEmail != "a@b.com" {
		t.Fatalf("expected one mail to the user, got %+v", env.sender)
	}

	sent := env.repo.usersByID[userID].Validation.Email.Sent
	if !strings.Contains(env.sender.link, "id="+userID) || !strings.Contains(env.sender.link, "token="+sent) {
		t.Fatalf("expected link with id and token, got %q", env.sender.link)
	}
}

func TestReceiveValidation(t *testing.T) {
	env := newTestEnv(t)
	body := env.register(t, "a@b.com", "A", "nick", "pw")
	payload := body["payload"].(map[string]any)
	userID := payload["id"].(string)
	sent := env.repo.usersByID[userID].Validation.Email.Sent
	token, _ := env.login(t, gin.H{"nickname": "nick", "password": "pw"})

	rec := env.do(t, http.MethodGet, "/user/verify/email/receive?id="+userID+"&token="+sent, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	stored := env.repo.usersByID[userID]
	if stored.Validation.Email.Received != sent {
		t.Fatalf("expected received == sent, got %+v", stored.Validation.Email)
	}
	if !stored.IsValidated() {
		t.Fatalf("expected user validated")
	}
}

func TestReceiveValidation_WrongToken(t *testing.T) {
	env := newTestEnv(t)
	body := env.register(t, "a@b.com", "A", "nick", "pw")
	payload := body["payload"].(map[string]any)
	userID := payload["id"].(string)
	token, _ := env.login(t, gin.H{"nickname": "nick", "password": "pw"})

	rec := env.do(t, http.MethodGet, "/user/verify/email/receive?id="+userID+"&token=wrong", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	respBody := decodeBody(t, rec)
	if respBody["message"] != "Invalid token" {
		t.Fatalf("unexpected message: %v", respBody)
	}
	if env.repo.usersByID[userID].IsValidated() {
		t.Fatalf("expected user to stay unvalidated")
	}
}

func TestReceiveValidation_UnknownMedium(t *testing.T) {
	env := newTestEnv(t)
	body := env.register(t, "a@b.com", "A", "nick", "pw")
	payload := body["payload"].(map[string]any)
	userID := payload["id"].(string)
	token, _ := env.login(t, gin.H{"nickname": "nick", "password": "pw"})

	rec := env.do(t, http.MethodGet, "/user/verify/sms/receive?id="+userID+"&token=x", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown medium, got %d", rec.Code)
	}
}

func TestReceiveValidation_MissingParams(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@b.com", "A", "nick", "pw")
	token, _ := env.login(t, gin.H{"nickname": "nick", "password": "pw"})

	rec := env.do(t, http.MethodGet, "/user/verify/email/receive", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
