package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/example/ride-client/internal/fetch"
)

// OAuthSession is what the provider hands back after the browser round-trip.
// SignUpUserID is only set when the flow created a brand-new account.
type OAuthSession struct {
	CreatedSessionID string
	SignUpUserID     string
	FirstName        string
	LastName         string
	Email            string
}

// OAuthProvider starts the third-party OAuth round-trip and activates the
// resulting session.
type OAuthProvider interface {
	StartFlow(ctx context.Context, redirectURL string) (OAuthSession, error)
	ActivateSession(ctx context.Context, sessionID string) error
}

// OAuthOutcome is the result surfaced to the sign-in screen.
type OAuthOutcome struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// OAuth glues the provider's Google flow to backend user provisioning.
type OAuth struct {
	Provider    OAuthProvider
	Backend     *fetch.Client
	Logger      *slog.Logger
	RedirectURL string
}

// SignIn runs the OAuth round-trip. Provider failures are reported with the
// provider's own code and message; a flow that yields no session is a plain
// failure.
func (o *OAuth) SignIn(ctx context.Context) OAuthOutcome {
	sess, err := o.Provider.StartFlow(ctx, o.RedirectURL)
	if err != nil {
		if o.Logger != nil {
			o.Logger.Warn("oauth flow failed", "error", err)
		}
		var perr *ProviderError
		if errors.As(err, &perr) {
			return OAuthOutcome{Success: false, Code: perr.Code, Message: perr.Message}
		}
		return OAuthOutcome{Success: false, Message: err.Error()}
	}

	if sess.CreatedSessionID == "" {
		return OAuthOutcome{Success: false, Message: "Failed to sign in with Google"}
	}

	if err := o.Provider.ActivateSession(ctx, sess.CreatedSessionID); err != nil {
		if o.Logger != nil {
			o.Logger.Warn("session activation failed", "error", err)
		}
		return OAuthOutcome{Success: false, Message: err.Error()}
	}

	if sess.SignUpUserID != "" {
		if err := o.provisionUser(ctx, sess); err != nil {
			if o.Logger != nil {
				o.Logger.Warn("user provisioning failed", "error", err)
			}
			return OAuthOutcome{Success: false, Message: err.Error()}
		}
	}

	return OAuthOutcome{Success: true, Code: "success", Message: "Google ログインに成功しました"}
}

func (o *OAuth) provisionUser(ctx context.Context, sess OAuthSession) error {
	body, err := json.Marshal(map[string]string{
		"name":    sess.FirstName + " " + sess.LastName,
		"email":   sess.Email,
		"clerkId": sess.SignUpUserID,
	})
	if err != nil {
		return err
	}
	_, err = o.Backend.Do(ctx, http.MethodPost, "/api/user", body)
	return err
}
