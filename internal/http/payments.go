package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/ride-client/internal/observability"
)

const (
	msgMissingFields = "Missing required fields"
	msgInternalError = "Internal Server Error"
)

// dollarAmount accepts a JSON number or numeric string and truncates to
// whole dollars, the way the original API treated "amount".
type dollarAmount struct {
	value int64
}

func (a *dollarAmount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		s = strings.TrimSpace(unq)
		if s == "" {
			return nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	a.value = int64(f)
	return nil
}

// handleCreatePaymentIntent finds or creates the Stripe customer for the
// given email, issues an ephemeral key scoped to it, and opens a payment
// intent for the fare. Amount arrives in whole dollars and is charged in
// cents.
func (s *Server) handleCreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string       `json:"name"`
		Email  string       `json:"email"`
		Amount dollarAmount `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}
	if req.Name == "" || req.Email == "" || req.Amount.value <= 0 {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	ctx := r.Context()

	cust, err := s.Payments.FindCustomerByEmail(ctx, req.Email)
	if err != nil {
		s.paymentError(w, r, "customer lookup failed", err)
		return
	}
	if cust == nil {
		cust, err = s.Payments.CreateCustomer(ctx, req.Name, req.Email)
		if err != nil {
			s.paymentError(w, r, "customer creation failed", err)
			return
		}
	}

	key, err := s.Payments.CreateEphemeralKey(ctx, cust.ID)
	if err != nil {
		s.paymentError(w, r, "ephemeral key creation failed", err)
		return
	}

	intent, err := s.Payments.CreateIntent(ctx, req.Amount.value*100, cust.ID)
	if err != nil {
		s.paymentError(w, r, "payment intent creation failed", err)
		return
	}

	observability.PaymentIntentsTotal.Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"paymentIntent": intent,
		"ephemeralKey":  key,
		"customer":      cust.ID,
	})
}

// handleConfirmPayment attaches the client's payment method to the customer
// and confirms the intent with it.
func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentMethodID string `json:"payment_method_id"`
		PaymentIntentID string `json:"payment_intent_id"`
		CustomerID      string `json:"customer_id"`
		ClientSecret    string `json:"client_secret"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}
	if req.PaymentMethodID == "" || req.PaymentIntentID == "" || req.CustomerID == "" {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	ctx := r.Context()

	methodID, err := s.Payments.AttachPaymentMethod(ctx, req.PaymentMethodID, req.CustomerID)
	if err != nil {
		s.paymentError(w, r, "payment method attach failed", err)
		return
	}

	result, err := s.Payments.ConfirmIntent(ctx, req.PaymentIntentID, methodID)
	if err != nil {
		s.paymentError(w, r, "payment confirmation failed", err)
		return
	}

	observability.PaymentsConfirmed.Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Payment successful",
		"result":  result,
	})
}

// paymentError applies the single provider-error policy for both payment
// handlers: log the cause, surface a generic 500.
func (s *Server) paymentError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.requestLogger(r.Context()).Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, msgInternalError)
}
