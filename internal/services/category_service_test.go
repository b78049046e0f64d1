package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dscommerce/dscommerce-backend/internal/testutil"
)

func TestCategoryService(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	service := NewCategoryService(db)

	categories, err := service.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Computadores", categories[0].Name)

	created, err := service.CreateCategory(ctx, &CategoryRequest{Name: "Games"})
	require.NoError(t, err)

	_, err = service.CreateCategory(ctx, &CategoryRequest{Name: "Games"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = service.CreateCategory(ctx, &CategoryRequest{Name: ""})
	assert.ErrorIs(t, err, ErrValidation)

	assert.NoError(t, service.DeleteCategory(ctx, created.ID))
	assert.ErrorIs(t, service.DeleteCategory(ctx, created.ID), ErrNotFound)
	assert.ErrorIs(t, service.DeleteCategory(ctx, uuid.New()), ErrNotFound)
}

func TestDeleteCategoryInUse(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	service := NewCategoryService(db)

	product := testutil.CreateProduct(t, db, "Smart TV", "2190.00")
	require.Len(t, product.Categories, 1)

	err := service.DeleteCategory(ctx, product.Categories[0].ID)
	assert.ErrorIs(t, err, ErrIntegrityViolation)
}
