package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Hounds1/Mosk-Server/internal/middleware"
	"github.com/Hounds1/Mosk-Server/internal/subscribe"
	"github.com/gin-gonic/gin"
)

// ApiResponse is the uniform envelope every endpoint answers with.
// Errors carry a message and a null data field.
type ApiResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, ApiResponse{
		Status:  status,
		Message: http.StatusText(status),
		Data:    data,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ApiResponse{
		Status:  status,
		Message: message,
		Data:    nil,
	})
}

// respondDomainError translates domain errors into HTTP statuses. Unknown
// errors become a bare 500; their details are logged, never surfaced.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, subscribe.ErrStoreNotFound):
		respondError(c, http.StatusNotFound, "store not found")
	case errors.Is(err, subscribe.ErrSubscriptionNotFound):
		respondError(c, http.StatusNotFound, "subscription info not found")
	case errors.Is(err, subscribe.ErrPaymentGatewayUnstable):
		respondError(c, http.StatusBadRequest, "payment gateway is unstable, please try again later")
	default:
		log.Printf("unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

// storeID returns the authenticated store id placed by the auth middleware.
func storeID(c *gin.Context) int64 {
	id, _ := c.Get(middleware.StoreIDKey)
	storeID, _ := id.(int64)
	return storeID
}
