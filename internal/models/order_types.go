package models

import "time"

// Order status values. An order is created INIT, moves to SUCCESS when the
// gateway approves its payment and to CANCELED when the gateway declines.
const (
	OrderInit     = "INIT"
	OrderSuccess  = "SUCCESS"
	OrderCanceled = "CANCELED"
)

// Order is one customer purchase against a store.
type Order struct {
	ID         int64     `json:"id"`
	StoreID    int64     `json:"storeId"`
	Status     string    `json:"status"`
	TotalPrice int64     `json:"totalPrice"`
	OrderedAt  time.Time `json:"orderedAt"`
}

// OrderProduct snapshots one line of an order. UnitPrice is the product
// price plus selected option surcharges at order time.
type OrderProduct struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"orderId"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unitPrice"`
}
