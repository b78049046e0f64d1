package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderTotals(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{Quantity: 2, Price: decimal.RequireFromString("10.00")},
			{Quantity: 3, Price: decimal.RequireFromString("1.25")},
		},
	}

	assert.Equal(t, "20.00", order.Items[0].SubTotal().StringFixed(2))
	assert.Equal(t, "23.75", order.Total().StringFixed(2))
	assert.True(t, (&Order{}).Total().IsZero())
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderStatusWaitingPayment.Valid())
	assert.True(t, OrderStatusCanceled.Valid())
	assert.False(t, OrderStatus("REFUNDED").Valid())

	assert.NoError(t, (&Order{Status: OrderStatusWaitingPayment}).BeforeSave(nil))
	assert.ErrorIs(t, (&Order{Status: "REFUNDED"}).BeforeSave(nil), ErrInvalidOrderStatus)
	assert.ErrorIs(t, (&Order{}).BeforeSave(nil), ErrInvalidOrderStatus)
}

func TestRoleSet(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseAuthority(" role_admin "))
	assert.Equal(t, RoleSet(0), ParseAuthority("ROLE_OPERATOR"))

	set := RoleClient | RoleAdmin
	assert.True(t, set.Has(RoleClient))
	assert.True(t, set.Has(RoleAdmin))
	assert.False(t, RoleClient.Has(RoleAdmin))
	assert.False(t, set.Has(0))
	assert.Equal(t, []string{AuthorityClient, AuthorityAdmin}, set.Authorities())
}

func TestUserPrincipal(t *testing.T) {
	user := &User{
		BaseModel: BaseModel{ID: uuid.New()},
		Name:      "Maria Brown",
		Email:     "maria@gmail.com",
		Roles:     []Role{{Authority: AuthorityClient}, {Authority: "ROLE_UNKNOWN"}},
	}

	p := user.Principal()
	assert.Equal(t, user.ID, p.UserID)
	assert.Equal(t, RoleClient, p.Roles)
	assert.False(t, p.IsAdmin())

	var nilPrincipal *Principal
	assert.False(t, nilPrincipal.IsAdmin())
}

func TestPasswordHash(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("s3cret!"))

	assert.NotEqual(t, "s3cret!", user.PasswordHash)
	assert.NoError(t, user.CheckPassword("s3cret!"))
	assert.Error(t, user.CheckPassword("wrong"))
}
