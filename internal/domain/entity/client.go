package entity

import "time"

// ClientInfo is the contact data captured while confirming a draft sale.
// Only the client name is mandatory; phone numbers are validated when
// present. The architect ("mistry") block is an optional secondary contact.
type ClientInfo struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	ArcName       string `json:"arc_name"`
	ArcPhone      string `json:"arc_phone"`
	ArcAddress    string `json:"arc_address"`
	ReviewScanner string `json:"review_scanner,omitempty"`
}

// ClientContact is the client block embedded in a sale detail response.
type ClientContact struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	ArcName    string `json:"arc_name"`
	ArcPhone   string `json:"arc_phone"`
	ArcAddress string `json:"arc_address"`
}

// ClientSummary is one row of the confirmed-clients listing.
type ClientSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	ArcName   string    `json:"arc_name"`
	ArcPhone  string    `json:"arc_phone"`
	CreatedAt time.Time `json:"created_at"`
}
