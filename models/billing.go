package models

import "time"

type ChargeType string

const (
	ChargePerPerson  ChargeType = "PER_PERSON"
	ChargePerSession ChargeType = "PER_SESSION"
)

// ExtraCharge is a configurable surcharge applied at billing time.
type ExtraCharge struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Name       string     `json:"name" gorm:"not null"`
	Price      float64    `json:"price" gorm:"not null"`
	ChargeType ChargeType `json:"charge_type" gorm:"not null;default:'PER_SESSION'"`
	Active     bool       `json:"active" gorm:"default:true"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type PromotionType string

const (
	PromoPercent   PromotionType = "PERCENT"
	PromoFixed     PromotionType = "FIXED"
	PromoPerPerson PromotionType = "PER_PERSON"
	PromoMinPeople PromotionType = "MIN_PEOPLE"
	PromoMinAmount PromotionType = "MIN_AMOUNT"
)

// Promotion is a configurable discount rule applied at billing time.
// Condition is the threshold for MIN_PEOPLE (head count) and MIN_AMOUNT
// (subtotal); a conditional promotion with no condition never applies.
type Promotion struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	Name      string        `json:"name" gorm:"not null"`
	Type      PromotionType `json:"type" gorm:"not null"`
	Value     float64       `json:"value" gorm:"not null"`
	Condition *float64      `json:"condition"`
	Active    bool          `json:"active" gorm:"default:true"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type PaymentMethod string

const (
	PayCash   PaymentMethod = "CASH"
	PayQR     PaymentMethod = "QR"
	PayCredit PaymentMethod = "CREDIT"
)

type BillingItemKind string

const (
	BillingKindMenu  BillingItemKind = "MENU"
	BillingKindExtra BillingItemKind = "EXTRA"
)

// BillingSummary is the immutable financial close-out record for one
// session. Created exactly once, inside the same transaction that flips
// the session and table state.
type BillingSummary struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	Reference     string        `json:"reference" gorm:"uniqueIndex;not null"`
	SessionID     uint          `json:"session_id" gorm:"uniqueIndex;not null"`
	Session       TableSession  `json:"session,omitempty" gorm:"foreignKey:SessionID"`
	Subtotal      float64       `json:"subtotal"`
	ExtraCharge   float64       `json:"extra_charge"`
	Discount      float64       `json:"discount"`
	GrandTotal    float64       `json:"grand_total"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"not null"`
	Items         []BillingItem `json:"items,omitempty" gorm:"foreignKey:BillingSummaryID"`
	CreatedAt     time.Time     `json:"created_at"`
}

// BillingItem is one frozen line of the audit snapshot. Qty is nil for
// per-session charges that have no natural quantity.
type BillingItem struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	BillingSummaryID uint            `json:"billing_summary_id" gorm:"not null;index"`
	Name             string          `json:"name" gorm:"not null"`
	Qty              *int            `json:"qty"`
	UnitPrice        float64         `json:"unit_price"`
	TotalPrice       float64         `json:"total_price"`
	Kind             BillingItemKind `json:"kind" gorm:"not null"`
}
