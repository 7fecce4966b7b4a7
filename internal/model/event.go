package model

import "time"

const EventTypeOrderCompleted = "OrderCompleted"

type OrderEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID       OrderID `json:"id"`
	PONumber string  `json:"po_number"`
	StoreID  StoreID `json:"store_id"`
}
