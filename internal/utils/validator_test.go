package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type itemInput struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type orderInput struct {
	Items []itemInput `json:"items" validate:"required,min=1,dive"`
}

type priceInput struct {
	Name  string          `json:"name" validate:"required,min=3,max=80"`
	Email string          `json:"email" validate:"omitempty,email"`
	Price decimal.Decimal `json:"price" validate:"gt=0"`
}

type amountInput struct {
	Price decimal.Decimal `json:"price" validate:"price"`
}

func TestValidateNestedItems(t *testing.T) {
	err := ValidateStruct(&orderInput{Items: []itemInput{
		{ProductID: uuid.New(), Quantity: 1},
		{ProductID: uuid.Nil, Quantity: 0},
	}})
	require.Error(t, err)

	errs := GetValidationErrors(err)
	require.Len(t, errs, 2)
	assert.Equal(t, "items[1].productId", errs[0].Field)
	assert.Equal(t, "items[1].quantity", errs[1].Field)
}

func TestValidateEmptyItems(t *testing.T) {
	errs := GetValidationErrors(ValidateStruct(&orderInput{}))
	require.Len(t, errs, 1)
	assert.Equal(t, "items", errs[0].Field)
	assert.Equal(t, "required", errs[0].Tag)

	errs = GetValidationErrors(ValidateStruct(&orderInput{Items: []itemInput{}}))
	require.Len(t, errs, 1)
	assert.Equal(t, "min", errs[0].Tag)
}

func TestValidateDecimalAndEmail(t *testing.T) {
	ok := priceInput{Name: "Notebook", Price: decimal.RequireFromString("0.01")}
	assert.NoError(t, ValidateStruct(&ok))

	bad := priceInput{Name: "TV", Email: "not-an-email", Price: decimal.Zero}
	errs := GetValidationErrors(ValidateStruct(&bad))
	require.Len(t, errs, 3)

	tags := map[string]string{}
	for _, e := range errs {
		tags[e.Field] = e.Tag
	}
	assert.Equal(t, "min", tags["name"])
	assert.Equal(t, "email", tags["email"])
	assert.Equal(t, "gt", tags["price"])
}

func TestValidatePrice(t *testing.T) {
	for _, ok := range []string{"0.01", "10", "10.00", "90.50", "99999999.99"} {
		assert.NoError(t, ValidateStruct(&amountInput{Price: decimal.RequireFromString(ok)}), ok)
	}

	for _, bad := range []string{"0", "-5", "0.004", "10.001", "100000000", "123456789012.50"} {
		errs := GetValidationErrors(ValidateStruct(&amountInput{Price: decimal.RequireFromString(bad)}))
		require.Len(t, errs, 1, bad)
		assert.Equal(t, "price", errs[0].Tag, bad)
	}
}

func TestGetValidationErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Empty(t, GetValidationErrors(nil))
	assert.Empty(t, GetValidationErrors(assert.AnError))
}
