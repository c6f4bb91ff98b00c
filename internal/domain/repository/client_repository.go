package repository

import (
	"context"

	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/entity"
	"github.com/JaydevKalariyaa/proxima-sales/pkg/pagination"
)

// ClientRepository is the client-side contract to the backend's client
// listing endpoints.
type ClientRepository interface {
	// List returns one page of confirmed clients. Search is free text over
	// name/phone/address/architect fields and is applied server-side.
	List(ctx context.Context, params pagination.Params, search string) (*pagination.Result[entity.ClientSummary], error)
	// Delete removes a client; the server cascades to associated sales.
	Delete(ctx context.Context, clientID string) error
}
