// Package auth orchestrates sign-up and sign-in against the identity
// provider. The provider owns sessions, tokens and credentials; this layer
// only drives the verification state machine and provisions the backend
// user record once a first-time sign-up completes.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/example/ride-client/internal/fetch"
)

// VerificationState is the per-flow state machine:
// default → pending → {success, failed}.
type VerificationState string

const (
	StateDefault VerificationState = "default"
	StatePending VerificationState = "pending"
	StateSuccess VerificationState = "success"
	StateFailed  VerificationState = "failed"
)

// VerificationResult is what the provider reports for a code attempt.
// CreatedUserID is only set for first-time sign-ups.
type VerificationResult struct {
	Complete         bool
	CreatedUserID    string
	CreatedSessionID string
}

// Provider is the identity-provider surface the flow depends on.
type Provider interface {
	// BeginSignUp registers the credentials and sends a verification code.
	BeginSignUp(ctx context.Context, email, password string) error
	AttemptVerification(ctx context.Context, code string) (VerificationResult, error)
	ActivateSession(ctx context.Context, sessionID string) error
}

// ProviderError carries the provider's own code and message; auth errors
// are surfaced to the user verbatim.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string { return e.Message }

var errVerificationIncomplete = errors.New("verification failed, please try again")

// Flow drives one verification flow. No retry limit is enforced here; the
// provider throttles code attempts on its side.
type Flow struct {
	provider Provider
	backend  *fetch.Client
	logger   *slog.Logger

	mu      sync.Mutex
	state   VerificationState
	lastErr string
	name    string
	email   string
}

func NewFlow(provider Provider, backend *fetch.Client, logger *slog.Logger) *Flow {
	return &Flow{provider: provider, backend: backend, logger: logger, state: StateDefault}
}

// State returns the current machine state and, in the failed state, the
// display message.
func (f *Flow) State() (VerificationState, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, f.lastErr
}

// Start registers the credentials with the provider and moves the flow to
// pending. On provider rejection the flow stays in its current state and
// the provider's message is returned verbatim.
func (f *Flow) Start(ctx context.Context, name, email, password string) error {
	if err := f.provider.BeginSignUp(ctx, email, password); err != nil {
		if f.logger != nil {
			f.logger.Warn("sign-up rejected", "email", email, "error", err)
		}
		return err
	}

	f.mu.Lock()
	f.state = StatePending
	f.lastErr = ""
	f.name = name
	f.email = email
	f.mu.Unlock()
	return nil
}

// Verify submits the emailed code. On a completed first-time sign-up the
// backend user record is created before the session is activated, matching
// the provisioning order the home screen relies on.
func (f *Flow) Verify(ctx context.Context, code string) error {
	res, err := f.provider.AttemptVerification(ctx, code)
	if err != nil {
		f.fail(err.Error())
		return err
	}
	if !res.Complete {
		f.fail(errVerificationIncomplete.Error())
		return errVerificationIncomplete
	}

	if res.CreatedUserID != "" {
		if err := f.provisionUser(ctx, res.CreatedUserID); err != nil {
			f.fail(err.Error())
			return err
		}
	}

	if err := f.provider.ActivateSession(ctx, res.CreatedSessionID); err != nil {
		f.fail(err.Error())
		return err
	}

	f.mu.Lock()
	f.state = StateSuccess
	f.lastErr = ""
	f.mu.Unlock()
	return nil
}

func (f *Flow) provisionUser(ctx context.Context, providerUserID string) error {
	f.mu.Lock()
	name, email := f.name, f.email
	f.mu.Unlock()

	body, err := json.Marshal(map[string]string{
		"name":    name,
		"email":   email,
		"clerkId": providerUserID,
	})
	if err != nil {
		return err
	}
	_, err = f.backend.Do(ctx, http.MethodPost, "/api/user", body)
	return err
}

func (f *Flow) fail(msg string) {
	f.mu.Lock()
	f.state = StateFailed
	f.lastErr = msg
	f.mu.Unlock()
	if f.logger != nil {
		f.logger.Warn("verification failed", "error", msg)
	}
}
