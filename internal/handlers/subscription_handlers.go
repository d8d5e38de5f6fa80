package handlers

import (
	"net/http"

	"github.com/Hounds1/Mosk-Server/internal/subscribe"
	"github.com/gin-gonic/gin"
)

// SubscribePayment is the handler for POST /api/v1/subscribes/payment.
// The authenticated store pays for one subscription period; the inbound
// orderId is accepted but the gateway-side one is always regenerated.
func (h *Handlers) SubscribePayment(c *gin.Context) {
	var req subscribe.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.Subscribes.SubscribePayment(c, storeID(c), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusCreated, resp)
}

// GetSubscribeHistory is the handler for GET /api/v1/subscribes.
// Lists the authenticated store's payment ledger, newest first.
func (h *Handlers) GetSubscribeHistory(c *gin.Context) {
	entries, err := h.Subscribes.History(c, storeID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, entries)
}
