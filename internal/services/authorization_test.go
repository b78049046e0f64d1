package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dscommerce/dscommerce-backend/internal/models"
)

func TestValidateSelfOrAdmin(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	tests := []struct {
		name      string
		principal *models.Principal
		target    uuid.UUID
		want      error
	}{
		{"anonymous", nil, self, ErrUnauthenticated},
		{"self", &models.Principal{UserID: self, Roles: models.RoleClient}, self, nil},
		{"other client", &models.Principal{UserID: other, Roles: models.RoleClient}, self, ErrForbidden},
		{"admin", &models.Principal{UserID: other, Roles: models.RoleClient | models.RoleAdmin}, self, nil},
		{"no roles", &models.Principal{UserID: other}, self, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSelfOrAdmin(tt.principal, tt.target)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
