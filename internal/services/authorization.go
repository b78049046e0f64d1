// internal/services/authorization.go
package services

import (
	"github.com/google/uuid"

	"github.com/dscommerce/dscommerce-backend/internal/models"
)

// ValidateSelfOrAdmin allows the principal to act on resources owned by
// targetUserID when it is that user or holds the admin role.
func ValidateSelfOrAdmin(principal *models.Principal, targetUserID uuid.UUID) error {
	if principal == nil {
		return ErrUnauthenticated
	}
	if principal.UserID == targetUserID || principal.Roles.Has(models.RoleAdmin) {
		return nil
	}
	return ErrForbidden
}
