package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/Hounds1/Mosk-Server/internal/models"
	"github.com/Hounds1/Mosk-Server/internal/payment"
	"github.com/gin-gonic/gin"
)

type OrderItemInput struct {
	ProductID int64   `json:"productId" binding:"required"`
	OptionIDs []int64 `json:"optionIds"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderInput struct {
	StoreID int64            `json:"storeId" binding:"required"`
	Items   []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// CreateOrder is the handler for POST /api/v1/public/orders.
// Totals are computed server-side from current product and option prices;
// the order starts in INIT and is settled by PayOrder.
func (h *Handlers) CreateOrder(c *gin.Context) {
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := h.DB.BeginTx(c, nil)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	defer tx.Rollback()

	var totalPrice int64
	type line struct {
		productID int64
		quantity  int
		unitPrice int64
	}
	lines := make([]line, 0, len(input.Items))

	for _, item := range input.Items {
		var basePrice int64
		var selling string
		err := tx.QueryRow(
			"SELECT price, selling FROM products WHERE id = ? AND store_id = ?",
			item.ProductID, input.StoreID,
		).Scan(&basePrice, &selling)
		if err != nil {
			if err == sql.ErrNoRows {
				respondError(c, http.StatusNotFound, "product not found")
				return
			}
			respondDomainError(c, err)
			return
		}
		if selling != models.Selling {
			respondError(c, http.StatusConflict, "product is not on sale")
			return
		}

		unitPrice := basePrice
		for _, optionID := range item.OptionIDs {
			var optionPrice int64
			err := tx.QueryRow(`
				SELECT o.price FROM options o
				JOIN option_groups og ON o.option_group_id = og.id
				WHERE o.id = ? AND og.product_id = ?`, optionID, item.ProductID,
			).Scan(&optionPrice)
			if err != nil {
				if err == sql.ErrNoRows {
					respondError(c, http.StatusNotFound, "option not found for product")
					return
				}
				respondDomainError(c, err)
				return
			}
			unitPrice += optionPrice
		}

		totalPrice += unitPrice * int64(item.Quantity)
		lines = append(lines, line{productID: item.ProductID, quantity: item.Quantity, unitPrice: unitPrice})
	}

	now := time.Now()
	result, err := tx.Exec(
		"INSERT INTO orders (store_id, status, total_price, ordered_at) VALUES (?, ?, ?, ?)",
		input.StoreID, models.OrderInit, totalPrice, now,
	)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	orderID, err := result.LastInsertId()
	if err != nil {
		respondDomainError(c, err)
		return
	}

	for _, l := range lines {
		if _, err := tx.Exec(
			"INSERT INTO order_products (order_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?)",
			orderID, l.productID, l.quantity, l.unitPrice,
		); err != nil {
			respondDomainError(c, err)
			return
		}
	}

	if err := tx.Commit(); err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusCreated, models.Order{
		ID:         orderID,
		StoreID:    input.StoreID,
		Status:     models.OrderInit,
		TotalPrice: totalPrice,
		OrderedAt:  now,
	})
}

type PayOrderInput struct {
	OrderID    int64  `json:"orderId" binding:"required"`
	PaymentKey string `json:"paymentKey" binding:"required"`
	Amount     int64  `json:"amount" binding:"required,gt=0"`
}

// PayOrder is the handler for POST /api/v1/public/orders/payment.
// The gateway is called once with a fresh order id token; approval moves the
// order to SUCCESS, a decline cancels it. The amount must match the order
// total exactly.
func (h *Handlers) PayOrder(c *gin.Context) {
	var input PayOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var status string
	var totalPrice int64
	err := h.DB.QueryRow("SELECT status, total_price FROM orders WHERE id = ?", input.OrderID).Scan(&status, &totalPrice)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(c, http.StatusNotFound, "order not found")
			return
		}
		respondDomainError(c, err)
		return
	}
	if status != models.OrderInit {
		respondError(c, http.StatusConflict, "order is not payable")
		return
	}
	if totalPrice != input.Amount {
		respondError(c, http.StatusBadRequest, "amount does not match the order total")
		return
	}

	approval := payment.ApprovalRequest{
		PaymentKey: input.PaymentKey,
		OrderID:    payment.NewOrderID(),
		Amount:     input.Amount,
	}
	if err := h.Payments.Approve(c, approval); err != nil {
		// Cancel first so the decline is never lost, then surface it.
		if _, cancelErr := h.DB.Exec(
			"UPDATE orders SET status = ? WHERE id = ? AND status = ?",
			models.OrderCanceled, input.OrderID, models.OrderInit,
		); cancelErr != nil {
			respondDomainError(c, cancelErr)
			return
		}
		respondError(c, http.StatusBadRequest, "payment gateway is unstable, please try again later")
		return
	}

	// Conditional update: a concurrent payment that won the race leaves
	// nothing to do here.
	result, err := h.DB.Exec(
		"UPDATE orders SET status = ? WHERE id = ? AND status = ?",
		models.OrderSuccess, input.OrderID, models.OrderInit,
	)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		respondError(c, http.StatusConflict, "order was already settled")
		return
	}

	respond(c, http.StatusOK, gin.H{"orderId": input.OrderID, "status": models.OrderSuccess})
}

// GetMyOrders is the handler for GET /api/v1/orders.
func (h *Handlers) GetMyOrders(c *gin.Context) {
	rows, err := h.DB.Query(`
		SELECT id, store_id, status, total_price, ordered_at
		FROM orders
		WHERE store_id = ?
		ORDER BY id DESC`, storeID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.StoreID, &o.Status, &o.TotalPrice, &o.OrderedAt); err != nil {
			respondDomainError(c, err)
			return
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, orders)
}

// GetOrderDetails is the handler for GET /api/v1/orders/:orderId.
func (h *Handlers) GetOrderDetails(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid order id")
		return
	}

	var order models.Order
	err = h.DB.QueryRow(
		"SELECT id, store_id, status, total_price, ordered_at FROM orders WHERE id = ? AND store_id = ?",
		orderID, storeID(c),
	).Scan(&order.ID, &order.StoreID, &order.Status, &order.TotalPrice, &order.OrderedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(c, http.StatusNotFound, "order not found")
			return
		}
		respondDomainError(c, err)
		return
	}

	rows, err := h.DB.Query(
		"SELECT id, order_id, product_id, quantity, unit_price FROM order_products WHERE order_id = ?",
		order.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	defer rows.Close()

	items := []models.OrderProduct{}
	for rows.Next() {
		var item models.OrderProduct
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			respondDomainError(c, err)
			return
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"order": order, "items": items})
}
