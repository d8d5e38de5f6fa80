package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/Hounds1/Mosk-Server/internal/auth"
	"github.com/Hounds1/Mosk-Server/internal/models"
	"github.com/gin-gonic/gin"
)

type RegisterStoreInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	StoreName string `json:"storeName" binding:"required"`
	OwnerName string `json:"ownerName" binding:"required"`
	CRN       string `json:"crn" binding:"required"`
	Address   string `json:"address" binding:"required"`
}

// RegisterStore is the handler for POST /api/v1/public/stores.
func (h *Handlers) RegisterStore(c *gin.Context) {
	var input RegisterStoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var exists bool
	err := h.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM stores WHERE email = ? OR crn = ?)", input.Email, input.CRN).Scan(&exists)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if exists {
		respondError(c, http.StatusConflict, "a store with this email or registration number already exists")
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	now := time.Now()
	store := models.Store{
		Email:     input.Email,
		StoreName: input.StoreName,
		OwnerName: input.OwnerName,
		CRN:       input.CRN,
		Address:   input.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := h.DB.Exec(`
		INSERT INTO stores (email, password_hash, store_name, owner_name, crn, address, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		store.Email, password.Hash, store.StoreName, store.OwnerName, store.CRN, store.Address, store.CreatedAt, store.UpdatedAt,
	)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	store.ID, _ = result.LastInsertId()

	respond(c, http.StatusCreated, store)
}

// CheckEmailDuplicate is the handler for GET /api/v1/public/stores/duplicate.
func (h *Handlers) CheckEmailDuplicate(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respondError(c, http.StatusBadRequest, "email query parameter is required")
		return
	}

	var exists bool
	if err := h.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM stores WHERE email = ?)", email).Scan(&exists); err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"duplicated": exists})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /api/v1/auth/login.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var id int64
	var hash string
	err := h.DB.QueryRow("SELECT id, password_hash FROM stores WHERE email = ? AND withdrawn_at IS NULL", input.Email).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondDomainError(c, err)
		return
	}

	password := models.Password{Hash: hash}
	ok, err := password.Matches(input.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if !ok {
		respondError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := auth.GenerateToken(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"accessToken": token})
}

// GetMyStore is the handler for GET /api/v1/stores.
func (h *Handlers) GetMyStore(c *gin.Context) {
	var store models.Store
	err := h.DB.QueryRow(`
		SELECT id, email, store_name, owner_name, crn, address, created_at, updated_at
		FROM stores WHERE id = ? AND withdrawn_at IS NULL`, storeID(c),
	).Scan(&store.ID, &store.Email, &store.StoreName, &store.OwnerName, &store.CRN, &store.Address, &store.CreatedAt, &store.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(c, http.StatusNotFound, "store not found")
			return
		}
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, store)
}

type UpdateStoreInput struct {
	StoreName string `json:"storeName" binding:"required"`
	OwnerName string `json:"ownerName" binding:"required"`
	Address   string `json:"address" binding:"required"`
}

// UpdateMyStore is the handler for PUT /api/v1/stores.
func (h *Handlers) UpdateMyStore(c *gin.Context) {
	var input UpdateStoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.DB.Exec(
		"UPDATE stores SET store_name = ?, owner_name = ?, address = ?, updated_at = ? WHERE id = ? AND withdrawn_at IS NULL",
		input.StoreName, input.OwnerName, input.Address, time.Now(), storeID(c),
	)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		respondError(c, http.StatusNotFound, "store not found")
		return
	}

	respond(c, http.StatusOK, nil)
}

// WithdrawStore is the handler for DELETE /api/v1/stores.
// Withdrawal is soft: the row stays for order and payment history, but the
// account can no longer log in and stops resolving in lookups.
func (h *Handlers) WithdrawStore(c *gin.Context) {
	result, err := h.DB.Exec(
		"UPDATE stores SET withdrawn_at = ?, updated_at = ? WHERE id = ? AND withdrawn_at IS NULL",
		time.Now(), time.Now(), storeID(c),
	)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		respondError(c, http.StatusNotFound, "store not found")
		return
	}

	respond(c, http.StatusNoContent, nil)
}
