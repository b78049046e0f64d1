// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dscommerce/dscommerce-backend/internal/i18n"
	"github.com/dscommerce/dscommerce-backend/internal/services"
	"github.com/dscommerce/dscommerce-backend/internal/utils"
)

// respondError maps a service error to its HTTP response. notFoundKey names
// the message used for ErrNotFound.
func respondError(c *gin.Context, err error, notFoundKey string) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, notFoundKey)
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, services.ErrUnauthenticated):
		utils.UnauthorizedResponse(c, "")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
	case errors.Is(err, services.ErrValidation):
		utils.BadRequestResponse(c, "", strings.TrimPrefix(err.Error(), services.ErrValidation.Error()+": "))
	case errors.Is(err, services.ErrFileTooLarge), errors.Is(err, services.ErrInvalidFileType):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileInvalidType), err.Error())
	case errors.Is(err, services.ErrIntegrityViolation):
		utils.ErrorResponse(c, http.StatusConflict, "INTEGRITY_VIOLATION", i18n.T(lang, i18n.KeyIntegrityFailure), nil)
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, conflictMessage(lang, notFoundKey))
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

func conflictMessage(lang, notFoundKey string) string {
	if notFoundKey == i18n.KeyUserNotFound {
		return i18n.T(lang, i18n.KeyUserExists)
	}
	return i18n.T(lang, i18n.KeyCategoryExists)
}

// bindJSON decodes and validates the request body, writing the 400 response
// itself when either step fails.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)

	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationID, resource), nil)
		return uuid.Nil, false
	}
	return id, true
}
