package handlers

import (
	"net/http"
	"strconv"

	"github.com/Hounds1/Mosk-Server/internal/models"
	"github.com/gin-gonic/gin"
)

type CreateOptionGroupInput struct {
	ProductID int64  `json:"productId" binding:"required"`
	Name      string `json:"name" binding:"required"`
}

// CreateOptionGroup is the handler for POST /api/v1/option-groups.
func (h *Handlers) CreateOptionGroup(c *gin.Context) {
	var input CreateOptionGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	// The product must belong to the calling store.
	var owned bool
	err := h.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM products WHERE id = ? AND store_id = ?)", input.ProductID, storeID(c)).Scan(&owned)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if !owned {
		respondError(c, http.StatusNotFound, "product not found")
		return
	}

	result, err := h.DB.Exec("INSERT INTO option_groups (product_id, name) VALUES (?, ?)", input.ProductID, input.Name)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	group := models.OptionGroup{ProductID: input.ProductID, Name: input.Name}
	group.ID, _ = result.LastInsertId()

	respond(c, http.StatusCreated, group)
}

// DeleteOptionGroup is the handler for DELETE /api/v1/option-groups/:groupId.
func (h *Handlers) DeleteOptionGroup(c *gin.Context) {
	groupID, err := strconv.ParseInt(c.Param("groupId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid option group id")
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM options WHERE option_group_id = ?", groupID); err != nil {
		respondDomainError(c, err)
		return
	}

	result, err := tx.Exec(`
		DELETE og FROM option_groups og
		JOIN products p ON og.product_id = p.id
		WHERE og.id = ? AND p.store_id = ?`, groupID, storeID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		respondError(c, http.StatusNotFound, "option group not found")
		return
	}

	if err := tx.Commit(); err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusNoContent, nil)
}

type CreateOptionInput struct {
	OptionGroupID int64  `json:"optionGroupId" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Price         int64  `json:"price" binding:"gte=0"`
}

// CreateOption is the handler for POST /api/v1/options.
func (h *Handlers) CreateOption(c *gin.Context) {
	var input CreateOptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var owned bool
	err := h.DB.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM option_groups og
			JOIN products p ON og.product_id = p.id
			WHERE og.id = ? AND p.store_id = ?
		)`, input.OptionGroupID, storeID(c)).Scan(&owned)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if !owned {
		respondError(c, http.StatusNotFound, "option group not found")
		return
	}

	result, err := h.DB.Exec("INSERT INTO options (option_group_id, name, price) VALUES (?, ?, ?)",
		input.OptionGroupID, input.Name, input.Price)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	option := models.Option{OptionGroupID: input.OptionGroupID, Name: input.Name, Price: input.Price}
	option.ID, _ = result.LastInsertId()

	respond(c, http.StatusCreated, option)
}

// DeleteOption is the handler for DELETE /api/v1/options/:optionId.
func (h *Handlers) DeleteOption(c *gin.Context) {
	optionID, err := strconv.ParseInt(c.Param("optionId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid option id")
		return
	}

	result, err := h.DB.Exec(`
		DELETE o FROM options o
		JOIN option_groups og ON o.option_group_id = og.id
		JOIN products p ON og.product_id = p.id
		WHERE o.id = ? AND p.store_id = ?`, optionID, storeID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		respondError(c, http.StatusNotFound, "option not found")
		return
	}

	respond(c, http.StatusNoContent, nil)
}

// loadOptionGroups fetches all option groups and options of a product.
func (h *Handlers) loadOptionGroups(productID int64) ([]models.OptionGroup, error) {
	rows, err := h.DB.Query("SELECT id, product_id, name FROM option_groups WHERE product_id = ? ORDER BY id", productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []models.OptionGroup{}
	for rows.Next() {
		var group models.OptionGroup
		if err := rows.Scan(&group.ID, &group.ProductID, &group.Name); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range groups {
		optRows, err := h.DB.Query("SELECT id, option_group_id, name, price FROM options WHERE option_group_id = ? ORDER BY id", groups[i].ID)
		if err != nil {
			return nil, err
		}

		options := []models.Option{}
		for optRows.Next() {
			var option models.Option
			if err := optRows.Scan(&option.ID, &option.OptionGroupID, &option.Name, &option.Price); err != nil {
				optRows.Close()
				return nil, err
			}
			options = append(options, option)
		}
		if err := optRows.Err(); err != nil {
			optRows.Close()
			return nil, err
		}
		optRows.Close()
		groups[i].Options = options
	}

	return groups, nil
}
