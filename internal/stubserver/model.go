package stubserver

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a confirmed buyer in the local backend
type Client struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Phone         string    `gorm:"size:50" json:"phone"`
	Address       string    `gorm:"type:text" json:"address"`
	ArcName       string    `gorm:"size:255;column:arc_name" json:"arc_name"`
	ArcPhone      string    `gorm:"size:50;column:arc_phone" json:"arc_phone"`
	ArcAddress    string    `gorm:"type:text;column:arc_address" json:"arc_address"`
	ReviewScanner string    `gorm:"size:255" json:"review_scanner,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"-"`

	// Relationships
	Sales []Sale `gorm:"foreignKey:ClientID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}

// Sale represents a sale in the local backend
type Sale struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Status      string     `gorm:"size:20;not null;index" json:"status"`
	ClientID    *uuid.UUID `gorm:"type:uuid;index" json:"-"`
	TotalAmount float64    `gorm:"not null" json:"total_amount"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"-"`

	// Relationships
	Client *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Items  []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem represents one line of a sale. PricePerPiece and TotalAmount are
// recomputed server-side from the canonical inputs on every write.
type SaleItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID        uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Category      string    `gorm:"size:100" json:"category"`
	Room          string    `gorm:"size:100" json:"room"`
	ProductName   string    `gorm:"size:255;not null" json:"product_name"`
	ProductCode   string    `gorm:"size:100" json:"product_code"`
	SizeFinish    string    `gorm:"size:255" json:"size_finish"`
	MRP           float64   `gorm:"column:mrp;not null" json:"mrp"`
	DiscountType  string    `gorm:"size:20" json:"discount_type"`
	DiscountValue float64   `json:"discount_value"`
	Quantity      float64   `gorm:"not null" json:"quantity"`
	PricePerPiece float64   `json:"price_per_piece"`
	TotalAmount   float64   `json:"total_amount"`
	CreatedAt     time.Time `json:"-"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
