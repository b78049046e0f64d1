// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dscommerce/dscommerce-backend/internal/i18n"
	"github.com/dscommerce/dscommerce-backend/internal/services"
	"github.com/dscommerce/dscommerce-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GET /users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	principal := utils.GetPrincipalFromContext(c)
	if principal == nil {
		utils.UnauthorizedResponse(c, "")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), principal, principal.UserID)
	if err != nil {
		respondError(c, err, i18n.KeyUserNotFound)
		return
	}
	utils.SuccessResponse(c, user)
}

// GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "user")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), utils.GetPrincipalFromContext(c), id)
	if err != nil {
		respondError(c, err, i18n.KeyUserNotFound)
		return
	}
	utils.SuccessResponse(c, user)
}

// POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, i18n.KeyUserNotFound)
		return
	}
	utils.CreatedResponse(c, user)
}
