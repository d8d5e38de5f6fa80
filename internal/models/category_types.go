package models

// Category groups a store's products. Names are unique per store.
type Category struct {
	ID      int64  `json:"id"`
	StoreID int64  `json:"storeId"`
	Name    string `json:"name"`
}
