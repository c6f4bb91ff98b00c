package service

import (
	"context"
	"sync"

	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/entity"
	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/enum"
	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/repository"
	"github.com/JaydevKalariyaa/proxima-sales/pkg/apperror"
	"github.com/JaydevKalariyaa/proxima-sales/pkg/calc"
	"go.uber.org/zap"
)

// DraftBuilder assembles a draft sale in memory before submission. A builder
// is consumed by exactly one successful Submit; downstream screens carry the
// returned sale id, not the builder.
type DraftBuilder struct {
	mu         sync.Mutex
	draft      entity.DraftSale
	saleRepo   repository.SaleRepository
	logger     *zap.Logger
	submitting bool
}

// NewDraftBuilder creates an empty draft builder.
func NewDraftBuilder(saleRepo repository.SaleRepository, logger *zap.Logger) *DraftBuilder {
	return &DraftBuilder{
		saleRepo: saleRepo,
		logger:   logger,
	}
}

// LineItemInput is the add-item form. Numeric fields are nullable so blank
// inputs stay distinguishable from zero instead of decaying to NaN.
type LineItemInput struct {
	Category      *enum.Category
	Room          *string
	ProductName   string
	ProductCode   string
	SizeFinish    string
	MRP           *float64
	DiscountType  enum.DiscountType
	DiscountValue *float64
	Quantity      *float64
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// AddItem validates and appends a line item with its derived fields already
// computed. Category and room default to the most recently added item's
// values to streamline bulk entry of similar products.
func (b *DraftBuilder) AddItem(in LineItemInput) (entity.LineItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var violations []apperror.FieldError
	if in.ProductName == "" {
		violations = append(violations, apperror.FieldError{Field: "product_name", Message: "Product name is required"})
	}
	if deref(in.MRP) == 0 {
		violations = append(violations, apperror.FieldError{Field: "mrp", Message: "MRP is required"})
	}
	if deref(in.Quantity) == 0 {
		violations = append(violations, apperror.FieldError{Field: "quantity", Message: "Quantity is required"})
	}
	if len(violations) > 0 {
		return entity.LineItem{}, apperror.NewValidationError(violations)
	}

	category := enum.DefaultCategory()
	room := ""
	if last := len(b.draft.Items); last > 0 {
		category = b.draft.Items[last-1].Category
		room = b.draft.Items[last-1].Room
	}
	if in.Category != nil {
		category = *in.Category
	}
	if in.Room != nil {
		room = *in.Room
	}

	discountType := in.DiscountType
	if !discountType.Valid() {
		discountType = enum.DiscountTypePercent
	}

	item := entity.LineItem{
		ID:            calc.GenerateID(),
		Category:      category,
		Room:          room,
		ProductName:   in.ProductName,
		ProductCode:   in.ProductCode,
		SizeFinish:    in.SizeFinish,
		MRP:           deref(in.MRP),
		DiscountType:  discountType,
		DiscountValue: deref(in.DiscountValue),
		Quantity:      deref(in.Quantity),
	}
	item.Recompute()

	b.draft.Items = append(b.draft.Items, item)
	b.logger.Info("line item added",
		zap.String("item_id", item.ID),
		zap.String("product", item.ProductName),
		zap.Float64("total", item.TotalAmount),
	)
	return item, nil
}

// RemoveItem deletes the item with the given id. Removing an unknown id is a
// no-op, not an error.
func (b *DraftBuilder) RemoveItem(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := b.draft.Items[:0]
	for _, it := range b.draft.Items {
		if it.ID != id {
			items = append(items, it)
		}
	}
	b.draft.Items = items
}

// Items returns a copy of the draft's line items in insertion order.
func (b *DraftBuilder) Items() []entity.LineItem {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]entity.LineItem, len(b.draft.Items))
	copy(out, b.draft.Items)
	return out
}

// GrandTotal recomputes the running total from the canonical inputs on every
// call; it is never cached.
func (b *DraftBuilder) GrandTotal() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.draft.GrandTotal()
}

// SubmitResult carries the server-assigned sale id together with the
// submitted items so a cancelled confirmation can resume from them.
type SubmitResult struct {
	SaleID string
	Items  []entity.LineItem
}

// Submit persists the draft with status=draft and returns the sale id. On
// failure the draft is left intact and resubmission is safe; nothing is
// retried automatically. While a submit is outstanding further submits are
// rejected, mirroring the disabled save button.
func (b *DraftBuilder) Submit(ctx context.Context) (*SubmitResult, error) {
	b.mu.Lock()
	if b.submitting {
		b.mu.Unlock()
		return nil, apperror.NewSubmissionError("a submit is already in progress", nil)
	}
	if len(b.draft.Items) == 0 {
		b.mu.Unlock()
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "items", Message: "Please add at least one product"},
		})
	}
	items := make([]entity.LineItem, len(b.draft.Items))
	copy(items, b.draft.Items)
	b.submitting = true
	b.mu.Unlock()

	saleID, err := b.saleRepo.CreateDraft(ctx, items)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.submitting = false
	if err != nil {
		b.logger.Warn("draft submission failed", zap.Error(err))
		return nil, err
	}

	// The draft is consumed; downstream screens work off the sale id.
	b.draft.Items = nil
	b.logger.Info("draft submitted", zap.String("sale_id", saleID), zap.Int("items", len(items)))
	return &SubmitResult{SaleID: saleID, Items: items}, nil
}

// Resume reloads items from a previously submitted draft, used when a
// confirmation was cancelled and the user wants to pick the sale back up.
func (b *DraftBuilder) Resume(items []entity.LineItem) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.draft.Items = make([]entity.LineItem, len(items))
	copy(b.draft.Items, items)
	for i := range b.draft.Items {
		b.draft.Items[i].Recompute()
	}
}
