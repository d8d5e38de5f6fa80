package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/Hounds1/Mosk-Server/internal/models"
	"github.com/gin-gonic/gin"
)

type CreateProductInput struct {
	CategoryID  int64  `json:"categoryId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,gt=0"`
}

// CreateProduct is the handler for POST /api/v1/products.
// New products start in STOP_SELLING until the store flips them.
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var categoryOK bool
	err := h.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM categories WHERE id = ? AND store_id = ?)", input.CategoryID, storeID(c)).Scan(&categoryOK)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if !categoryOK {
		respondError(c, http.StatusNotFound, "category not found")
		return
	}

	now := time.Now()
	product := models.Product{
		StoreID:     storeID(c),
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Selling:     models.StopSelling,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := h.DB.Exec(`
		INSERT INTO products (store_id, category_id, name, description, price, selling, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		product.StoreID, product.CategoryID, product.Name, product.Description, product.Price, product.Selling, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	product.ID, _ = result.LastInsertId()

	respond(c, http.StatusCreated, product)
}

type UpdateProductInput struct {
	ProductID   int64  `json:"productId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,gt=0"`
}

// UpdateProduct is the handler for PUT /api/v1/products.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.DB.Exec(
		"UPDATE products SET name = ?, description = ?, price = ?, updated_at = ? WHERE id = ? AND store_id = ?",
		input.Name, input.Description, input.Price, time.Now(), input.ProductID, storeID(c),
	)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		respondError(c, http.StatusNotFound, "product not found")
		return
	}

	respond(c, http.StatusOK, nil)
}

// DeleteProduct is the handler for DELETE /api/v1/products/:productId.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid product id")
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	defer tx.Rollback()

	// Options cascade by hand: groups and options go with the product.
	if _, err := tx.Exec(`
		DELETE o FROM options o
		JOIN option_groups og ON o.option_group_id = og.id
		WHERE og.product_id = ?`, productID); err != nil {
		respondDomainError(c, err)
		return
	}
	if _, err := tx.Exec("DELETE FROM option_groups WHERE product_id = ?", productID); err != nil {
		respondDomainError(c, err)
		return
	}

	result, err := tx.Exec("DELETE FROM products WHERE id = ? AND store_id = ?", productID, storeID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		respondError(c, http.StatusNotFound, "product not found")
		return
	}

	if err := tx.Commit(); err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusNoContent, nil)
}

type SellingStatusInput struct {
	ProductID int64  `json:"productId" binding:"required"`
	Selling   string `json:"selling" binding:"required,oneof=SELLING STOP_SELLING"`
}

// ChangeSellingStatus is the handler for PATCH /api/v1/products/status.
func (h *Handlers) ChangeSellingStatus(c *gin.Context) {
	var input SellingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.DB.Exec(
		"UPDATE products SET selling = ?, updated_at = ? WHERE id = ? AND store_id = ?",
		input.Selling, time.Now(), input.ProductID, storeID(c),
	)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		respondError(c, http.StatusNotFound, "product not found")
		return
	}

	respond(c, http.StatusOK, nil)
}

// GetProduct is the handler for GET /api/v1/public/products.
// Returns a single product with its option groups and options.
func (h *Handlers) GetProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Query("productId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "productId query parameter is required")
		return
	}
	targetStoreID, err := strconv.ParseInt(c.Query("storeId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "storeId query parameter is required")
		return
	}

	var product models.Product
	err = h.DB.QueryRow(`
		SELECT id, store_id, category_id, name, description, price, selling, created_at, updated_at
		FROM products WHERE id = ? AND store_id = ?`, productID, targetStoreID,
	).Scan(&product.ID, &product.StoreID, &product.CategoryID, &product.Name, &product.Description,
		&product.Price, &product.Selling, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(c, http.StatusNotFound, "product not found")
			return
		}
		respondDomainError(c, err)
		return
	}

	groups, err := h.loadOptionGroups(product.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	product.OptionGroups = groups

	respond(c, http.StatusOK, product)
}

// GetProductsByStore is the handler for GET /api/v1/public/products/all.
// Newest first, paged with page/size query parameters.
func (h *Handlers) GetProductsByStore(c *gin.Context) {
	targetStoreID, err := strconv.ParseInt(c.Query("storeId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "storeId query parameter is required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 10
	}

	rows, err := h.DB.Query(`
		SELECT id, store_id, category_id, name, description, price, selling, created_at, updated_at
		FROM products
		WHERE store_id = ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?`, targetStoreID, size, page*size)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, products)
}

// GetProductsByCategory is the handler for GET /api/v1/public/products/category.
func (h *Handlers) GetProductsByCategory(c *gin.Context) {
	targetStoreID, err := strconv.ParseInt(c.Query("storeId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "storeId query parameter is required")
		return
	}
	categoryID, err := strconv.ParseInt(c.Query("categoryId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "categoryId query parameter is required")
		return
	}

	rows, err := h.DB.Query(`
		SELECT id, store_id, category_id, name, description, price, selling, created_at, updated_at
		FROM products
		WHERE store_id = ? AND category_id = ?
		ORDER BY id DESC`, targetStoreID, categoryID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, products)
}

// SearchProducts is the handler for GET /api/v1/public/products/keywords.
func (h *Handlers) SearchProducts(c *gin.Context) {
	targetStoreID, err := strconv.ParseInt(c.Query("storeId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "storeId query parameter is required")
		return
	}
	keyword := c.Query("keyword")
	if keyword == "" {
		respondError(c, http.StatusBadRequest, "keyword query parameter is required")
		return
	}

	rows, err := h.DB.Query(`
		SELECT id, store_id, category_id, name, description, price, selling, created_at, updated_at
		FROM products
		WHERE store_id = ? AND name LIKE CONCAT('%', ?, '%')
		ORDER BY id DESC`, targetStoreID, keyword)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, products)
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.CategoryID, &p.Name, &p.Description,
			&p.Price, &p.Selling, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
