package api

import (
	"context"
	"strconv"
	"time"

	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/entity"
	domainRepo "github.com/JaydevKalariyaa/proxima-sales/internal/domain/repository"
	"github.com/JaydevKalariyaa/proxima-sales/pkg/apperror"
	"github.com/JaydevKalariyaa/proxima-sales/pkg/pagination"
	"go.uber.org/zap"
)

type clientRepository struct {
	client *Client
}

// NewClientRepository creates the HTTP-backed client repository.
func NewClientRepository(client *Client) domainRepo.ClientRepository {
	return &clientRepository{client: client}
}

type clientSummaryResponse struct {
	ID        flexID    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	ArcName   string    `json:"arc_name"`
	ArcPhone  string    `json:"arc_phone"`
	CreatedAt time.Time `json:"created_at"`
}

type clientListResponse struct {
	Results    []clientSummaryResponse `json:"results"`
	TotalCount int64                   `json:"total_count"`
}

func (r *clientRepository) List(ctx context.Context, params pagination.Params, search string) (*pagination.Result[entity.ClientSummary], error) {
	params.Validate()

	res, err := r.client.newRequest(ctx).
		SetQueryParam("page", strconv.Itoa(params.Page)).
		SetQueryParam("page_size", strconv.Itoa(params.PageSize)).
		SetQueryParam("search", search).
		Get("/clients/")
	if cerr := r.client.check(res, err, "list clients"); cerr != nil {
		return nil, cerr
	}

	var list clientListResponse
	if err := decodeData(res.Bytes(), &list); err != nil {
		return nil, apperror.NewSubmissionError("unexpected client-list response", err)
	}

	summaries := make([]entity.ClientSummary, 0, len(list.Results))
	for _, c := range list.Results {
		summaries = append(summaries, entity.ClientSummary{
			ID:        c.ID.String(),
			Name:      c.Name,
			Phone:     c.Phone,
			Address:   c.Address,
			ArcName:   c.ArcName,
			ArcPhone:  c.ArcPhone,
			CreatedAt: c.CreatedAt,
		})
	}

	return pagination.NewResult(summaries, list.TotalCount), nil
}

func (r *clientRepository) Delete(ctx context.Context, clientID string) error {
	res, err := r.client.newRequest(ctx).Delete("/clients/" + clientID + "/")
	if cerr := r.client.check(res, err, "delete client"); cerr != nil {
		return cerr
	}

	r.client.logger.Info("client deleted", zap.String("client_id", clientID))
	return nil
}
