package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/dscommerce/dscommerce-backend/internal/models"
)

const principalKey = "principal"

func SetPrincipal(c *gin.Context, p *models.Principal) {
	c.Set(principalKey, p)
	c.Set("user_id", p.UserID.String())
}

// GetPrincipalFromContext returns the principal resolved by the auth
// middleware, or nil for anonymous requests.
func GetPrincipalFromContext(c *gin.Context) *models.Principal {
	if v, exists := c.Get(principalKey); exists {
		if p, ok := v.(*models.Principal); ok {
			return p
		}
	}
	return nil
}
