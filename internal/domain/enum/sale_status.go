package enum

// SaleStatus represents the server-side lifecycle of a persisted sale. The
// client only ever drives draft → confirmed or draft → cancelled, and only
// after the corresponding server round trip succeeds.
type SaleStatus string

const (
	SaleStatusDraft     SaleStatus = "draft"
	SaleStatusConfirmed SaleStatus = "confirmed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

func (s SaleStatus) String() string {
	return string(s)
}

// Valid reports whether s is a known sale status.
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusDraft, SaleStatusConfirmed, SaleStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status change is a legal lifecycle move.
func (s SaleStatus) CanTransitionTo(next SaleStatus) bool {
	return s == SaleStatusDraft && (next == SaleStatusConfirmed || next == SaleStatusCancelled)
}
