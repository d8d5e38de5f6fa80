package models

// OptionGroup is a named set of choices for a product (e.g. "Size").
type OptionGroup struct {
	ID        int64    `json:"id"`
	ProductID int64    `json:"productId"`
	Name      string   `json:"name"`
	Options   []Option `json:"options,omitempty"`
}

// Option is a single choice inside a group; Price is the surcharge added
// to the product price when the option is selected.
type Option struct {
	ID            int64  `json:"id"`
	OptionGroupID int64  `json:"optionGroupId"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
}
