// Package payment provides mocked checkout sessions. No payment provider is
// contacted; sessions can optionally be signed so a status lookup can recover
// the plan they were created for.
package payment

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/portfolio-generator/internal/types"
)

// Mock checkout values.
const (
	PlanPremium     = "premium"
	PremiumAmount   = 999 // cents
	Currency        = "usd"
	CheckoutURL     = "https://example.com/checkout"
	SessionLifetime = time.Hour
	StatusSucceeded = "succeeded"
)

var (
	// ErrMissingData is returned when plan or portfolio id is absent.
	ErrMissingData = errors.New("missing required data")
	// ErrMissingSession is returned by Status for an empty session id.
	ErrMissingSession = errors.New("missing session ID")
)

var validate = validator.New()

// Service creates and looks up mock checkout sessions.
type Service struct {
	signer *Signer
	now    func() time.Time
}

// NewService creates a Service. A nil signer leaves sessions unsigned.
func NewService(signer *Signer) *Service {
	return &Service{signer: signer, now: time.Now}
}

// AmountFor returns the price of a plan in cents.
func AmountFor(plan string) int {
	if plan == PlanPremium {
		return PremiumAmount
	}
	return 0
}

// CreateSession returns a checkout session valid for one hour.
func (s *Service) CreateSession(req types.PaymentRequest) (*types.PaymentSession, error) {
	if err := validate.Struct(req); err != nil {
		return nil, ErrMissingData
	}

	now := s.now().UTC()
	session := &types.PaymentSession{
		ID:        newSessionID(),
		Amount:    AmountFor(req.Plan),
		Currency:  Currency,
		URL:       CheckoutURL,
		ExpiresAt: now.Add(SessionLifetime),
	}

	if s.signer != nil {
		token, err := s.signer.Sign(session, req, now)
		if err != nil {
			return nil, err
		}
		session.Token = token
	}
	return session, nil
}

// Status reports a session as paid five minutes ago. When a valid token is
// given the plan and amount come from it.
func (s *Service) Status(sessionID, token string) (*types.PaymentStatus, error) {
	if sessionID == "" {
		return nil, ErrMissingSession
	}

	now := s.now().UTC()
	status := &types.PaymentStatus{
		ID:          sessionID,
		Status:      StatusSucceeded,
		Amount:      PremiumAmount,
		Currency:    Currency,
		CreatedAt:   now.Add(-5 * time.Minute),
		CompletedAt: now,
	}

	if token != "" && s.signer != nil {
		claims, err := s.signer.Validate(token)
		if err != nil {
			return nil, err
		}
		if claims.SessionID != sessionID {
			return nil, ErrSessionMismatch
		}
		status.Plan = claims.Plan
		status.Amount = claims.Amount
	}
	return status, nil
}

func newSessionID() string {
	return "pay_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
}
