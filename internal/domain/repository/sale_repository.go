package repository

import (
	"context"

	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/entity"
)

// SaleRepository is the client-side contract to the showroom backend's sale
// endpoints. Implementations never mutate local state; every transition goes
// through a server round trip.
type SaleRepository interface {
	// CreateDraft persists the draft's line items with status=draft and
	// returns the server-assigned sale id. Only canonical input fields are
	// serialized; derived prices stay client-side.
	CreateDraft(ctx context.Context, items []entity.LineItem) (string, error)
	// Confirm attaches client info to the draft and finalizes it. Repeated
	// confirms for the same sale id are expected to upsert server-side.
	Confirm(ctx context.Context, saleID string, info entity.ClientInfo) error
	// Cancel transitions the draft to cancelled.
	Cancel(ctx context.Context, saleID string) error
	// GetByClient fetches the confirmed sale detail for a client.
	GetByClient(ctx context.Context, clientID string) (*entity.SaleDetail, error)
}
