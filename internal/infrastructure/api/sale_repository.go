package api

import (
	"context"
	"time"

	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/entity"
	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/enum"
	domainRepo "github.com/JaydevKalariyaa/proxima-sales/internal/domain/repository"
	"github.com/JaydevKalariyaa/proxima-sales/pkg/apperror"
	"go.uber.org/zap"
)

type saleRepository struct {
	client *Client
}

// NewSaleRepository creates the HTTP-backed sale repository.
func NewSaleRepository(client *Client) domainRepo.SaleRepository {
	return &saleRepository{client: client}
}

// saleItemRequest is the canonical-input serialization of a line item. The
// derived price_per_piece/total_amount are deliberately absent; the server
// recomputes them.
type saleItemRequest struct {
	ProductName   string  `json:"product_name"`
	ProductCode   string  `json:"product_code"`
	SizeFinish    string  `json:"size_finish"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
	Quantity      float64 `json:"quantity"`
	Category      string  `json:"category"`
	Room          string  `json:"room"`
	MRP           float64 `json:"mrp"`
}

type createSaleRequest struct {
	Status string            `json:"status"`
	Items  []saleItemRequest `json:"items"`
}

type confirmSaleRequest struct {
	Client confirmClientPayload `json:"client"`
}

type confirmClientPayload struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	ArcName       string `json:"arc_name"`
	ArcPhone      string `json:"arc_phone"`
	ArcAddress    string `json:"arc_address"`
	ReviewScanner string `json:"review_scanner,omitempty"`
}

func (r *saleRepository) CreateDraft(ctx context.Context, items []entity.LineItem) (string, error) {
	body := createSaleRequest{
		Status: enum.SaleStatusDraft.String(),
		Items:  make([]saleItemRequest, 0, len(items)),
	}
	for _, it := range items {
		body.Items = append(body.Items, saleItemRequest{
			ProductName:   it.ProductName,
			ProductCode:   it.ProductCode,
			SizeFinish:    it.SizeFinish,
			DiscountType:  it.DiscountType.String(),
			DiscountValue: it.DiscountValue,
			Quantity:      it.Quantity,
			Category:      it.Category.String(),
			Room:          it.Room,
			MRP:           it.MRP,
		})
	}

	res, err := r.client.newRequest(ctx).SetBody(body).Post("/sales/")
	if cerr := r.client.check(res, err, "create draft sale"); cerr != nil {
		return "", cerr
	}

	var created struct {
		ID flexID `json:"id"`
	}
	if err := decodeData(res.Bytes(), &created); err != nil {
		return "", apperror.NewSubmissionError("unexpected create-sale response", err)
	}
	if created.ID == "" {
		return "", apperror.NewSubmissionError("server did not return a sale id", nil)
	}

	r.client.logger.Info("draft sale created",
		zap.String("sale_id", created.ID.String()),
		zap.Int("items", len(items)),
	)
	return created.ID.String(), nil
}

func (r *saleRepository) Confirm(ctx context.Context, saleID string, info entity.ClientInfo) error {
	body := confirmSaleRequest{
		Client: confirmClientPayload{
			Name:          info.Name,
			Phone:         info.Phone,
			Address:       info.Address,
			ArcName:       info.ArcName,
			ArcPhone:      info.ArcPhone,
			ArcAddress:    info.ArcAddress,
			ReviewScanner: info.ReviewScanner,
		},
	}

	res, err := r.client.newRequest(ctx).SetBody(body).Post("/sales/" + saleID + "/confirm/")
	if cerr := r.client.check(res, err, "confirm sale"); cerr != nil {
		return cerr
	}
	if err := decodeData(res.Bytes(), nil); err != nil {
		return err
	}

	r.client.logger.Info("sale confirmed", zap.String("sale_id", saleID))
	return nil
}

func (r *saleRepository) Cancel(ctx context.Context, saleID string) error {
	res, err := r.client.newRequest(ctx).Post("/sales/" + saleID + "/cancel/")
	if cerr := r.client.check(res, err, "cancel sale"); cerr != nil {
		return cerr
	}
	if err := decodeData(res.Bytes(), nil); err != nil {
		return err
	}

	r.client.logger.Info("sale cancelled", zap.String("sale_id", saleID))
	return nil
}

// saleDetailResponse tolerates the backend's stringly-typed numerics.
type saleDetailResponse struct {
	ID          flexID                   `json:"id"`
	Client      clientContactResponse    `json:"client"`
	Items       []saleItemDetailResponse `json:"items"`
	TotalAmount flexFloat                `json:"total_amount"`
	CreatedAt   time.Time                `json:"created_at"`
	Status      string                   `json:"status"`
}

type clientContactResponse struct {
	ID         flexID `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	ArcName    string `json:"arc_name"`
	ArcPhone   string `json:"arc_phone"`
	ArcAddress string `json:"arc_address"`
}

type saleItemDetailResponse struct {
	ID            flexID    `json:"id"`
	Category      string    `json:"category"`
	Room          string    `json:"room"`
	ProductName   string    `json:"product_name"`
	ProductCode   string    `json:"product_code"`
	SizeFinish    string    `json:"size_finish"`
	MRP           flexFloat `json:"mrp"`
	DiscountType  string    `json:"discount_type"`
	DiscountValue flexFloat `json:"discount_value"`
	Quantity      flexFloat `json:"quantity"`
	PricePerPiece flexFloat `json:"price_per_piece"`
	TotalAmount   flexFloat `json:"total_amount"`
}

func (r *saleRepository) GetByClient(ctx context.Context, clientID string) (*entity.SaleDetail, error) {
	res, err := r.client.newRequest(ctx).SetQueryParam("client_id", clientID).Get("/sales/")
	if cerr := r.client.check(res, err, "sale detail"); cerr != nil {
		return nil, cerr
	}

	var sales []saleDetailResponse
	if err := decodeData(res.Bytes(), &sales); err != nil {
		return nil, apperror.NewSubmissionError("unexpected sale-detail response", err)
	}
	if len(sales) == 0 {
		return nil, apperror.NewNotFoundError("Sale")
	}

	return sales[0].toEntity(), nil
}

func (s saleDetailResponse) toEntity() *entity.SaleDetail {
	detail := &entity.SaleDetail{
		ID: s.ID.String(),
		Client: entity.ClientContact{
			ID:         s.Client.ID.String(),
			Name:       s.Client.Name,
			Phone:      s.Client.Phone,
			Address:    s.Client.Address,
			ArcName:    s.Client.ArcName,
			ArcPhone:   s.Client.ArcPhone,
			ArcAddress: s.Client.ArcAddress,
		},
		TotalAmount: float64(s.TotalAmount),
		CreatedAt:   s.CreatedAt,
		Status:      enum.SaleStatus(s.Status),
	}
	for _, it := range s.Items {
		detail.Items = append(detail.Items, entity.LineItem{
			ID:            it.ID.String(),
			Category:      enum.Category(it.Category),
			Room:          it.Room,
			ProductName:   it.ProductName,
			ProductCode:   it.ProductCode,
			SizeFinish:    it.SizeFinish,
			MRP:           float64(it.MRP),
			DiscountType:  enum.DiscountType(it.DiscountType),
			DiscountValue: float64(it.DiscountValue),
			Quantity:      float64(it.Quantity),
			PricePerPiece: float64(it.PricePerPiece),
			TotalAmount:   float64(it.TotalAmount),
		})
	}
	return detail
}
