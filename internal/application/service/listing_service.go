package service

import (
	"context"
	"sync"
	"time"

	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/entity"
	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/enum"
	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/repository"
	"github.com/JaydevKalariyaa/proxima-sales/pkg/pagination"
	"go.uber.org/zap"
)

// ListingService reads confirmed clients and sale details from the backend.
type ListingService struct {
	clientRepo repository.ClientRepository
	saleRepo   repository.SaleRepository
	logger     *zap.Logger
	pageSize   int
}

// NewListingService creates a listing service with the given default page size.
func NewListingService(clientRepo repository.ClientRepository, saleRepo repository.SaleRepository, logger *zap.Logger, pageSize int) *ListingService {
	if pageSize < 1 {
		pageSize = pagination.Default().PageSize
	}
	return &ListingService{
		clientRepo: clientRepo,
		saleRepo:   saleRepo,
		logger:     logger,
		pageSize:   pageSize,
	}
}

// PageSize returns the configured page size.
func (s *ListingService) PageSize() int {
	return s.pageSize
}

// ListClients fetches one page of confirmed clients, optionally filtered by
// a free-text search applied server-side.
func (s *ListingService) ListClients(ctx context.Context, page int, search string) (*pagination.Result[entity.ClientSummary], error) {
	params := pagination.Params{Page: page, PageSize: s.pageSize}
	return s.clientRepo.List(ctx, params, search)
}

// DeleteClient removes a client; the server cascades to its sales. Callers
// must refetch the list after success.
func (s *ListingService) DeleteClient(ctx context.Context, clientID string) error {
	return s.clientRepo.Delete(ctx, clientID)
}

// RoomGroup is the line items of one room within a category.
type RoomGroup struct {
	Room  string
	Items []entity.LineItem
}

// CategoryGroup is the rooms of one category, in first-seen order.
type CategoryGroup struct {
	Category enum.Category
	Rooms    []RoomGroup
}

// SaleDetailView is a sale detail prepared for display: items grouped by
// category then room. Demo marks placeholder data shown because the fetch
// failed; it must never be persisted or mistaken for real data.
type SaleDetailView struct {
	Detail entity.SaleDetail
	Groups []CategoryGroup
	Demo   bool
}

// GroupItems arranges a flat item list by category then by room, preserving
// first-seen order at both levels. Items without a room fall under "General".
func GroupItems(items []entity.LineItem) []CategoryGroup {
	var groups []CategoryGroup
	catIndex := map[enum.Category]int{}

	for _, it := range items {
		ci, ok := catIndex[it.Category]
		if !ok {
			ci = len(groups)
			catIndex[it.Category] = ci
			groups = append(groups, CategoryGroup{Category: it.Category})
		}

		room := it.Room
		if room == "" {
			room = "General"
		}

		ri := -1
		for i, rg := range groups[ci].Rooms {
			if rg.Room == room {
				ri = i
				break
			}
		}
		if ri == -1 {
			groups[ci].Rooms = append(groups[ci].Rooms, RoomGroup{Room: room})
			ri = len(groups[ci].Rooms) - 1
		}
		groups[ci].Rooms[ri].Items = append(groups[ci].Rooms[ri].Items, it)
	}

	return groups
}

// SaleDetail fetches and groups the confirmed sale of a client. When the
// fetch fails, it returns a visibly flagged demo view alongside the error so
// the screen can keep rendering; callers must surface the error and never
// persist the demo data.
func (s *ListingService) SaleDetail(ctx context.Context, clientID string) (*SaleDetailView, error) {
	detail, err := s.saleRepo.GetByClient(ctx, clientID)
	if err != nil {
		s.logger.Warn("sale detail fetch failed, falling back to demo data",
			zap.String("client_id", clientID),
			zap.Error(err),
		)
		demo := demoSaleDetail()
		return &SaleDetailView{
			Detail: demo,
			Groups: GroupItems(demo.Items),
			Demo:   true,
		}, err
	}

	return &SaleDetailView{
		Detail: *detail,
		Groups: GroupItems(detail.Items),
	}, nil
}

// demoSaleDetail is the placeholder shown when the backend is unreachable.
func demoSaleDetail() entity.SaleDetail {
	return entity.SaleDetail{
		ID: "demo",
		Client: entity.ClientContact{
			Name:    "John Doe",
			Phone:   "9876543210",
			Address: "123 Main Street, Apartment 4B",
		},
		Items: []entity.LineItem{
			{
				ID:            "demo-1",
				Category:      enum.CategorySofaCurtain,
				Room:          "Living Room",
				ProductName:   "Modern Sofa Set",
				ProductCode:   "SOFA-001",
				SizeFinish:    "3-Seater, Grey",
				MRP:           45000,
				DiscountType:  enum.DiscountTypePercent,
				DiscountValue: 10,
				Quantity:      1,
				PricePerPiece: 40500,
				TotalAmount:   40500,
			},
			{
				ID:            "demo-2",
				Category:      enum.CategoryModular,
				Room:          "Kitchen",
				ProductName:   "Cabinet",
				ProductCode:   "MD002",
				SizeFinish:    "Large",
				MRP:           2000,
				DiscountType:  enum.DiscountTypeAmount,
				DiscountValue: 200,
				Quantity:      1,
				PricePerPiece: 1800,
				TotalAmount:   1800,
			},
			{
				ID:            "demo-3",
				Category:      enum.CategoryVeneer,
				Room:          "Bedroom",
				ProductName:   "Veneer Sheet",
				ProductCode:   "VN003",
				SizeFinish:    "Standard",
				MRP:           100,
				DiscountType:  enum.DiscountTypeAmount,
				DiscountValue: 5,
				Quantity:      5,
				PricePerPiece: 95,
				TotalAmount:   475,
			},
		},
		TotalAmount: 42775,
		CreatedAt:   time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Status:      enum.SaleStatusConfirmed,
	}
}

// SearchUpdate is one published listing refresh.
type SearchUpdate struct {
	Term   string
	Page   int
	Result *pagination.Result[entity.ClientSummary]
	Err    error
}

// ClientSearch debounces free-text search over the client list and drops
// stale responses: only the reply to the most recent dispatch may publish.
type ClientSearch struct {
	mu       sync.Mutex
	svc      *ListingService
	debounce time.Duration
	publish  func(SearchUpdate)
	timer    *time.Timer
	seq      uint64
	term     string
	page     int
}

// NewClientSearch creates a search controller publishing updates through the
// given callback.
func NewClientSearch(svc *ListingService, debounce time.Duration, publish func(SearchUpdate)) *ClientSearch {
	return &ClientSearch{
		svc:      svc,
		debounce: debounce,
		publish:  publish,
		page:     1,
	}
}

// SetTerm records a new search term. The fetch fires only after the debounce
// window passes without further typing, and the page resets to 1.
func (c *ClientSearch) SetTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.term = term
	c.page = 1
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		seq, term, page := c.nextDispatchLocked()
		c.mu.Unlock()
		c.fetch(seq, term, page)
	})
}

// SetPage moves to another page of the current term immediately.
func (c *ClientSearch) SetPage(page int) {
	c.mu.Lock()
	if page < 1 {
		page = 1
	}
	c.page = page
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	seq, term, p := c.nextDispatchLocked()
	c.mu.Unlock()
	c.fetch(seq, term, p)
}

// Refresh refetches the current term and page, e.g. after a delete.
func (c *ClientSearch) Refresh() {
	c.mu.Lock()
	seq, term, page := c.nextDispatchLocked()
	c.mu.Unlock()
	c.fetch(seq, term, page)
}

func (c *ClientSearch) nextDispatchLocked() (uint64, string, int) {
	c.seq++
	return c.seq, c.term, c.page
}

func (c *ClientSearch) fetch(seq uint64, term string, page int) {
	result, err := c.svc.ListClients(context.Background(), page, term)

	c.mu.Lock()
	stale := seq != c.seq
	c.mu.Unlock()
	if stale {
		// a newer request superseded this one
		return
	}

	c.publish(SearchUpdate{Term: term, Page: page, Result: result, Err: err})
}
