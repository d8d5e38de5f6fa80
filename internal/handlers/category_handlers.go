package handlers

import (
	"net/http"
	"strconv"

	"github.com/Hounds1/Mosk-Server/internal/models"
	"github.com/gin-gonic/gin"
)

type CategoryInput struct {
	Name string `json:"name" binding:"required"`
}

// CreateCategory is the handler for POST /api/v1/categories.
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var exists bool
	err := h.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM categories WHERE store_id = ? AND name = ?)", storeID(c), input.Name).Scan(&exists)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if exists {
		respondError(c, http.StatusConflict, "category already exists")
		return
	}

	result, err := h.DB.Exec("INSERT INTO categories (store_id, name) VALUES (?, ?)", storeID(c), input.Name)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	category := models.Category{StoreID: storeID(c), Name: input.Name}
	category.ID, _ = result.LastInsertId()

	respond(c, http.StatusCreated, category)
}

// UpdateCategory is the handler for PUT /api/v1/categories/:categoryId.
func (h *Handlers) UpdateCategory(c *gin.Context) {
	categoryID, err := strconv.ParseInt(c.Param("categoryId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid category id")
		return
	}

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.DB.Exec("UPDATE categories SET name = ? WHERE id = ? AND store_id = ?", input.Name, categoryID, storeID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		respondError(c, http.StatusNotFound, "category not found")
		return
	}

	respond(c, http.StatusOK, models.Category{ID: categoryID, StoreID: storeID(c), Name: input.Name})
}

// DeleteCategory is the handler for DELETE /api/v1/categories/:categoryId.
// A category still referenced by products cannot be deleted.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	categoryID, err := strconv.ParseInt(c.Param("categoryId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid category id")
		return
	}

	var inUse bool
	err = h.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM products WHERE category_id = ?)", categoryID).Scan(&inUse)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if inUse {
		respondError(c, http.StatusConflict, "category still has products")
		return
	}

	result, err := h.DB.Exec("DELETE FROM categories WHERE id = ? AND store_id = ?", categoryID, storeID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		respondError(c, http.StatusNotFound, "category not found")
		return
	}

	respond(c, http.StatusNoContent, nil)
}

// GetCategoriesByStore is the handler for GET /api/v1/public/categories.
func (h *Handlers) GetCategoriesByStore(c *gin.Context) {
	targetStoreID, err := strconv.ParseInt(c.Query("storeId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "storeId query parameter is required")
		return
	}

	rows, err := h.DB.Query("SELECT id, store_id, name FROM categories WHERE store_id = ? ORDER BY name", targetStoreID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.StoreID, &category.Name); err != nil {
			respondDomainError(c, err)
			return
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, categories)
}
