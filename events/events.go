package events

// Topic names one kind of domain event on the fan-out channel.
type Topic string

const (
	TopicOrderNew         Topic = "order:new"
	TopicOrderCooking     Topic = "order:cooking"
	TopicOrderDone        Topic = "order:done"
	TopicOrderServed      Topic = "order:served"
	TopicBillingClosed    Topic = "billing:closed"
	TopicSessionOpened    Topic = "session:opened"
	TopicSessionCancelled Topic = "session:cancelled"
	TopicMenuUnavailable  Topic = "menu:unavailable"
)

// Event is one broadcast message. The payload identifies the entity the
// event concerns; subscribers treat it as a hint and re-fetch rather
// than trusting it as authoritative state.
type Event struct {
	Topic   Topic       `json:"topic"`
	Payload interface{} `json:"payload"`
}

// Payload shapes, one per topic family.

type OrderEvent struct {
	OrderID   uint `json:"order_id"`
	SessionID uint `json:"session_id"`
	ItemID    uint `json:"item_id,omitempty"`
}

type SessionEvent struct {
	SessionID uint `json:"session_id"`
	TableID   uint `json:"table_id"`
}

type BillingEvent struct {
	BillingID  uint    `json:"billing_id"`
	SessionID  uint    `json:"session_id"`
	GrandTotal float64 `json:"grand_total"`
}

type MenuEvent struct {
	MenuItemID uint `json:"menu_item_id"`
}

// Bus is the injectable fan-out channel. Publish is fire-and-forget:
// it never blocks the publishing command and never reports failure back
// to it — the store write is authoritative, the notification is not.
type Bus interface {
	Publish(ev Event)
	Subscribe() (<-chan Event, func())
}
