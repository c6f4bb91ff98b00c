package service

import (
	"context"
	"errors"
	"sync"

	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/entity"
	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/repository"
	"github.com/JaydevKalariyaa/proxima-sales/pkg/apperror"
	"github.com/JaydevKalariyaa/proxima-sales/pkg/calc"
	"go.uber.org/zap"
)

// WorkflowState is the confirmation workflow's position.
type WorkflowState string

const (
	StateAwaitingClientInfo WorkflowState = "awaiting_client_info"
	StateConfirmed          WorkflowState = "confirmed"
	StateCancelled          WorkflowState = "cancelled"
)

// ErrInvalidTransition is returned for operations attempted from a terminal
// state; confirmed and cancelled sales have no way back in this workflow.
var ErrInvalidTransition = errors.New("invalid workflow transition")

// ConfirmationWorkflow drives a submitted draft to confirmed or cancelled.
// Every transition requires the matching server call to succeed first.
type ConfirmationWorkflow struct {
	mu       sync.Mutex
	state    WorkflowState
	saleID   string
	draft    []entity.LineItem
	form     entity.ClientInfo
	saleRepo repository.SaleRepository
	logger   *zap.Logger
	inFlight bool
}

// NewConfirmationWorkflow enters the workflow for a submitted sale. Entering
// without a sale id fails with ErrNoDraft; the caller is expected to send the
// user back to sale creation.
func NewConfirmationWorkflow(saleRepo repository.SaleRepository, logger *zap.Logger, saleID string, draft []entity.LineItem) (*ConfirmationWorkflow, error) {
	if saleID == "" {
		return nil, apperror.ErrNoDraft
	}
	items := make([]entity.LineItem, len(draft))
	copy(items, draft)
	return &ConfirmationWorkflow{
		state:    StateAwaitingClientInfo,
		saleID:   saleID,
		draft:    items,
		saleRepo: saleRepo,
		logger:   logger,
	}, nil
}

// State returns the workflow's current state.
func (w *ConfirmationWorkflow) State() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SaleID returns the sale this workflow acts on.
func (w *ConfirmationWorkflow) SaleID() string {
	return w.saleID
}

// Draft returns the submitted line items, for pre-populating a new draft
// after cancellation.
func (w *ConfirmationWorkflow) Draft() []entity.LineItem {
	out := make([]entity.LineItem, len(w.draft))
	copy(out, w.draft)
	return out
}

// Update records the form as typed so far, so a later Cancel can hand the
// partial input back to the caller.
func (w *ConfirmationWorkflow) Update(info entity.ClientInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form = info
}

func validateClientInfo(info entity.ClientInfo) []apperror.FieldError {
	var violations []apperror.FieldError
	if info.Name == "" {
		violations = append(violations, apperror.FieldError{Field: "name", Message: "Client name is required"})
	}
	if info.Phone != "" && !calc.ValidatePhoneNumber(info.Phone) {
		violations = append(violations, apperror.FieldError{Field: "phone", Message: "Please enter a valid 10-digit phone number"})
	}
	if info.ArcPhone != "" && !calc.ValidatePhoneNumber(info.ArcPhone) {
		violations = append(violations, apperror.FieldError{Field: "arc_phone", Message: "Please enter a valid 10-digit phone number"})
	}
	return violations
}

// Confirm validates the client info, collecting every violation before
// failing, then persists it and finalizes the sale. On validation or server
// failure the workflow stays in AwaitingClientInfo and retry is safe: the
// server upserts client info for a sale id rather than duplicating it.
func (w *ConfirmationWorkflow) Confirm(ctx context.Context, info entity.ClientInfo) error {
	w.mu.Lock()
	if w.state != StateAwaitingClientInfo {
		w.mu.Unlock()
		return ErrInvalidTransition
	}
	if w.inFlight {
		w.mu.Unlock()
		return apperror.NewSubmissionError("a request is already in progress", nil)
	}
	w.form = info

	if violations := validateClientInfo(info); len(violations) > 0 {
		w.mu.Unlock()
		return apperror.NewValidationError(violations)
	}
	w.inFlight = true
	w.mu.Unlock()

	err := w.saleRepo.Confirm(ctx, w.saleID, info)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false
	if err != nil {
		w.logger.Warn("confirm failed", zap.String("sale_id", w.saleID), zap.Error(err))
		return err
	}

	w.state = StateConfirmed
	w.logger.Info("sale confirmed", zap.String("sale_id", w.saleID), zap.String("client", info.Name))
	return nil
}

// Cancel abandons the sale server-side and hands back whatever client info
// was typed so far, so a fresh draft screen can be pre-populated with it.
func (w *ConfirmationWorkflow) Cancel(ctx context.Context) (entity.ClientInfo, error) {
	w.mu.Lock()
	if w.state != StateAwaitingClientInfo {
		w.mu.Unlock()
		return entity.ClientInfo{}, ErrInvalidTransition
	}
	if w.inFlight {
		w.mu.Unlock()
		return entity.ClientInfo{}, apperror.NewSubmissionError("a request is already in progress", nil)
	}
	w.inFlight = true
	w.mu.Unlock()

	err := w.saleRepo.Cancel(ctx, w.saleID)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false
	if err != nil {
		w.logger.Warn("cancel failed", zap.String("sale_id", w.saleID), zap.Error(err))
		return entity.ClientInfo{}, err
	}

	w.state = StateCancelled
	w.logger.Info("sale cancelled", zap.String("sale_id", w.saleID))
	return w.form, nil
}
