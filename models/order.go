package models

import "time"

// OrderStatus: OPEN while the kitchen still owes items, SERVED once the
// session's billing close-out collapses it.
type OrderStatus string

const (
	OrderOpen   OrderStatus = "OPEN"
	OrderServed OrderStatus = "SERVED"
)

// ItemStatus tracks one order line through the kitchen/runner pipeline.
// Transitions are forward only.
type ItemStatus string

const (
	ItemWaiting ItemStatus = "WAITING"
	ItemCooking ItemStatus = "COOKING"
	ItemDone    ItemStatus = "DONE"
	ItemServed  ItemStatus = "SERVED"
)

// ItemType is the billing classification frozen at order time.
type ItemType string

const (
	ItemBuffetIncluded ItemType = "BUFFET_INCLUDED"
	ItemALaCarte       ItemType = "A_LA_CARTE"
)

type Order struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	TableSessionID uint         `json:"table_session_id" gorm:"not null;index"`
	Session        TableSession `json:"session,omitempty" gorm:"foreignKey:TableSessionID"`
	Status         OrderStatus  `json:"status" gorm:"not null;default:'OPEN';index"`
	Note           string       `json:"note"`
	Items          []OrderItem  `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type OrderItem struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	OrderID    uint       `json:"order_id" gorm:"not null;index"`
	MenuItemID uint       `json:"menu_item_id" gorm:"not null"`
	MenuItem   MenuItem   `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Qty        int        `json:"qty" gorm:"not null"`
	Note       string     `json:"note"`
	Status     ItemStatus `json:"status" gorm:"not null;default:'WAITING'"`
	ItemType   ItemType   `json:"item_type" gorm:"not null"`
	UnitPrice  float64    `json:"unit_price" gorm:"not null"` // snapshot of the effective price at order time
	Name       string     `json:"name"`                       // snapshot name
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ItemStatusHistory records every pipeline step an item actually took.
// Repeats and rejected requests leave no row.
type ItemStatusHistory struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	OrderItemID uint       `json:"order_item_id" gorm:"not null;index"`
	FromStatus  ItemStatus `json:"from_status"`
	ToStatus    ItemStatus `json:"to_status" gorm:"not null"`
	ChangedBy   uint       `json:"changed_by"` // user ID of the terminal that won the write
	CreatedAt   time.Time  `json:"created_at"`
}
