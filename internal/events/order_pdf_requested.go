package events

import "time"

const OrderPDFRequestedTopic = "bau.order.pdf.v1"

type OrderPDFRequestedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	OrderID    string    `json:"order_id"`
	TenantID   string    `json:"tenant_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
