package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/portfolio-generator/internal/types"
)

// handleCreatePayment creates a mock checkout session.
func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req types.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidRequest+err.Error())
		return
	}

	session, err := s.payments.CreateSession(req)
	if err != nil {
		if status := HTTPStatus(err); status == http.StatusBadRequest {
			s.errorResponse(w, status, msgMissingData)
			return
		}
		s.logger.Error("creating payment session failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create payment session")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":        true,
		"paymentSession": session,
	})
}

// handlePaymentStatus reports a session as paid. The optional token query
// parameter is the signed token returned at creation.
func (s *Server) handlePaymentStatus(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status, err := s.payments.Status(q.Get("session_id"), q.Get("token"))
	if err != nil {
		switch code := HTTPStatus(err); code {
		case http.StatusBadRequest:
			s.errorResponse(w, code, "Missing session ID")
		case http.StatusUnauthorized:
			s.errorResponse(w, code, "Invalid payment token")
		case http.StatusForbidden:
			s.errorResponse(w, code, "Payment token does not match session")
		default:
			s.logger.Error("payment status failed", zap.Error(err))
			s.errorResponse(w, code, "Failed to fetch payment status")
		}
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"payment": status,
	})
}
