package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/ride-client/internal/fetch"
)

type fakeProvider struct {
	beginErr    error
	result      VerificationResult
	verifyErr   error
	activateErr error

	activated []string
}

func (p *fakeProvider) BeginSignUp(_ context.Context, email, password string) error {
	return p.beginErr
}

func (p *fakeProvider) AttemptVerification(_ context.Context, code string) (VerificationResult, error) {
	return p.result, p.verifyErr
}

func (p *fakeProvider) ActivateSession(_ context.Context, sessionID string) error {
	if p.activateErr != nil {
		return p.activateErr
	}
	p.activated = append(p.activated, sessionID)
	return nil
}

func newBackend(t *testing.T, handler http.HandlerFunc) *fetch.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return fetch.NewClient(srv.URL, nil)
}

func TestFlowStartMovesToPending(t *testing.T) {
	f := NewFlow(&fakeProvider{}, nil, nil)

	if err := f.Start(context.Background(), "Taro", "taro@example.com", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state, _ := f.State(); state != StatePending {
		t.Fatalf("expected pending, got %s", state)
	}
}

func TestFlowStartRejectedKeepsState(t *testing.T) {
	perr := &ProviderError{Code: "form_password_pwned", Message: "Password found in breach"}
	f := NewFlow(&fakeProvider{beginErr: perr}, nil, nil)

	err := f.Start(context.Background(), "Taro", "taro@example.com", "pw")
	if !errors.Is(err, perr) {
		t.Fatalf("expected provider error passed through, got %v", err)
	}
	if state, _ := f.State(); state != StateDefault {
		t.Fatalf("rejected start must not advance the state, got %s", state)
	}
}

func TestFlowVerifyProvisionsNewUser(t *testing.T) {
	var captured map[string]string
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&captured)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{}}`))
	})

	p := &fakeProvider{result: VerificationResult{
		Complete:         true,
		CreatedUserID:    "user_2new",
		CreatedSessionID: "sess_1",
	}}
	f := NewFlow(p, backend, nil)

	if err := f.Start(context.Background(), "Taro Yamada", "taro@example.com", "pw"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := f.Verify(context.Background(), "424242"); err != nil {
		t.Fatalf("verify: %v", err)
	}

	if state, _ := f.State(); state != StateSuccess {
		t.Fatalf("expected success, got %s", state)
	}
	want := map[string]string{"name": "Taro Yamada", "email": "taro@example.com", "clerkId": "user_2new"}
	for k, v := range want {
		if captured[k] != v {
			t.Errorf("provision body %s = %q, want %q", k, captured[k], v)
		}
	}
	if len(p.activated) != 1 || p.activated[0] != "sess_1" {
		t.Fatalf("expected session activation after provisioning, got %v", p.activated)
	}
}

func TestFlowVerifySignInSkipsProvisioning(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("sign-in must not hit the backend")
	})

	p := &fakeProvider{result: VerificationResult{Complete: true, CreatedSessionID: "sess_2"}}
	f := NewFlow(p, backend, nil)

	if err := f.Start(context.Background(), "Taro", "taro@example.com", "pw"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := f.Verify(context.Background(), "424242"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if state, _ := f.State(); state != StateSuccess {
		t.Fatalf("expected success, got %s", state)
	}
}

func TestFlowVerifyIncomplete(t *testing.T) {
	p := &fakeProvider{result: VerificationResult{Complete: false}}
	f := NewFlow(p, nil, nil)

	if err := f.Start(context.Background(), "Taro", "taro@example.com", "pw"); err != nil {
		t.Fatalf("start: %v", err)
	}
	err := f.Verify(context.Background(), "000000")
	if err == nil {
		t.Fatal("expected an error")
	}

	state, msg := f.State()
	if state != StateFailed {
		t.Fatalf("expected failed, got %s", state)
	}
	if msg != "verification failed, please try again" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestFlowVerifyProviderErrorVerbatim(t *testing.T) {
	perr := &ProviderError{Code: "form_code_incorrect", Message: "Incorrect code"}
	p := &fakeProvider{verifyErr: perr}
	f := NewFlow(p, nil, nil)

	if err := f.Start(context.Background(), "Taro", "taro@example.com", "pw"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := f.Verify(context.Background(), "999999"); !errors.Is(err, perr) {
		t.Fatalf("expected provider error passed through, got %v", err)
	}

	state, msg := f.State()
	if state != StateFailed {
		t.Fatalf("expected failed, got %s", state)
	}
	if msg != "Incorrect code" {
		t.Fatalf("expected provider message verbatim, got %q", msg)
	}
}

func TestFlowVerifyProvisioningFailureBlocksSession(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})

	p := &fakeProvider{result: VerificationResult{
		Complete:         true,
		CreatedUserID:    "user_2new",
		CreatedSessionID: "sess_3",
	}}
	f := NewFlow(p, backend, nil)

	if err := f.Start(context.Background(), "Taro", "taro@example.com", "pw"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := f.Verify(context.Background(), "424242"); err == nil {
		t.Fatal("expected an error")
	}
	if state, _ := f.State(); state != StateFailed {
		t.Fatalf("expected failed, got %s", state)
	}
	if len(p.activated) != 0 {
		t.Fatal("session must not activate when provisioning fails")
	}
}
