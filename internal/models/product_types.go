package models

import "time"

// Selling status values for a product.
const (
	Selling     = "SELLING"
	StopSelling = "STOP_SELLING"
)

// Product is one sellable item of a store.
type Product struct {
	ID          int64     `json:"id"`
	StoreID     int64     `json:"storeId"`
	CategoryID  int64     `json:"categoryId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Selling     string    `json:"selling"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Populated by the read handlers, not stored on the products table.
	OptionGroups []OptionGroup `json:"optionGroups,omitempty"`
}
