package handlers

import (
	"database/sql"

	"github.com/Hounds1/Mosk-Server/internal/payment"
	"github.com/Hounds1/Mosk-Server/internal/subscribe"
)

// Handlers holds all dependencies the HTTP layer needs.
type Handlers struct {
	DB         *sql.DB
	Subscribes *subscribe.Service
	Payments   payment.Client
}
