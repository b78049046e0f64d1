// internal/handlers/category.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dscommerce/dscommerce-backend/internal/i18n"
	"github.com/dscommerce/dscommerce-backend/internal/services"
	"github.com/dscommerce/dscommerce-backend/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GET /categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, i18n.KeyCategoryNotFound)
		return
	}
	utils.SuccessResponse(c, categories)
}

// POST /categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req services.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, i18n.KeyCategoryNotFound)
		return
	}
	utils.CreatedResponse(c, category)
}

// DELETE /categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "category")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err, i18n.KeyCategoryNotFound)
		return
	}
	utils.NoContentResponse(c)
}
