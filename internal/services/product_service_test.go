package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/dscommerce/dscommerce-backend/internal/models"
	"github.com/dscommerce/dscommerce-backend/internal/testutil"
	"github.com/dscommerce/dscommerce-backend/internal/utils"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db         *gorm.DB
	service    *ProductService
	categories map[string]models.Category
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.db = testutil.NewDB(suite.T())
	suite.service = NewProductService(suite.db)

	var categories []models.Category
	suite.Require().NoError(suite.db.Find(&categories).Error)
	suite.categories = make(map[string]models.Category, len(categories))
	for _, c := range categories {
		suite.categories[c.Name] = c
	}
}

func (suite *ProductServiceTestSuite) request(name string, categories ...string) *ProductRequest {
	req := &ProductRequest{
		Name:        name,
		Description: "Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
		Price:       decimal.RequireFromString("90.50"),
	}
	for _, c := range categories {
		req.Categories = append(req.Categories, CategoryRef{ID: suite.categories[c].ID})
	}
	return req
}

func (suite *ProductServiceTestSuite) TestCreateAndGet() {
	ctx := context.Background()
	created, err := suite.service.CreateProduct(ctx, suite.request("PC Gamer", "Computadores", "Eletrônicos"))
	suite.Require().NoError(err)
	suite.NotEqual(uuid.Nil, created.ID)

	found, err := suite.service.GetProduct(ctx, created.ID)
	suite.Require().NoError(err)
	suite.Equal("PC Gamer", found.Name)
	suite.True(decimal.RequireFromString("90.50").Equal(found.Price))
	suite.Len(found.Categories, 2)
}

func (suite *ProductServiceTestSuite) TestCreateValidation() {
	ctx := context.Background()

	req := suite.request("PC", "Computadores")
	_, err := suite.service.CreateProduct(ctx, req)
	suite.ErrorIs(err, ErrValidation)

	req = suite.request("PC Gamer")
	_, err = suite.service.CreateProduct(ctx, req)
	suite.ErrorIs(err, ErrValidation)

	req = suite.request("PC Gamer", "Computadores")
	req.Price = decimal.Zero
	_, err = suite.service.CreateProduct(ctx, req)
	suite.ErrorIs(err, ErrValidation)

	req = suite.request("PC Gamer", "Computadores")
	req.Price = decimal.RequireFromString("0.004")
	_, err = suite.service.CreateProduct(ctx, req)
	suite.ErrorIs(err, ErrValidation)

	req = suite.request("PC Gamer", "Computadores")
	req.Price = decimal.RequireFromString("123456789012.50")
	_, err = suite.service.CreateProduct(ctx, req)
	suite.ErrorIs(err, ErrValidation)

	var count int64
	suite.db.Model(&models.Product{}).Count(&count)
	suite.Zero(count)

	req = suite.request("PC Gamer")
	req.Categories = []CategoryRef{{ID: uuid.New()}}
	_, err = suite.service.CreateProduct(ctx, req)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *ProductServiceTestSuite) TestGetMissing() {
	_, err := suite.service.GetProduct(context.Background(), uuid.New())
	suite.ErrorIs(err, ErrNotFound)

	exists, err := suite.service.Exists(context.Background(), uuid.New())
	suite.NoError(err)
	suite.False(exists)
}

func (suite *ProductServiceTestSuite) TestSearchIsCaseInsensitiveAndPaged() {
	testutil.CreateProduct(suite.T(), suite.db, "Macbook Pro", "1250.00")
	testutil.CreateProduct(suite.T(), suite.db, "PC Gamer Tera", "1200.00")
	testutil.CreateProduct(suite.T(), suite.db, "PC Gamer Max", "1300.00")
	testutil.CreateProduct(suite.T(), suite.db, "Smart TV", "2190.00")

	products, total, err := suite.service.SearchProducts(context.Background(),
		utils.NormalizePagination(utils.PaginationParams{Page: 1, Limit: 1, Search: "gamer"}))
	suite.Require().NoError(err)
	suite.EqualValues(2, total)
	suite.Require().Len(products, 1)
	suite.Equal("PC Gamer Max", products[0].Name)
	suite.NotEmpty(products[0].Categories)

	products, total, err = suite.service.SearchProducts(context.Background(),
		utils.NormalizePagination(utils.PaginationParams{Sort: "price", Order: "desc"}))
	suite.Require().NoError(err)
	suite.EqualValues(4, total)
	suite.Equal("Smart TV", products[0].Name)
}

func (suite *ProductServiceTestSuite) TestUpdateReplacesCategories() {
	ctx := context.Background()
	created, err := suite.service.CreateProduct(ctx, suite.request("PC Gamer", "Computadores", "Eletrônicos"))
	suite.Require().NoError(err)

	req := suite.request("PC Gamer Boo", "Livros")
	req.Price = decimal.RequireFromString("1500.00")
	updated, err := suite.service.UpdateProduct(ctx, created.ID, req)
	suite.Require().NoError(err)
	suite.Equal("PC Gamer Boo", updated.Name)

	found, err := suite.service.GetProduct(ctx, created.ID)
	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("1500.00").Equal(found.Price))
	suite.Require().Len(found.Categories, 1)
	suite.Equal("Livros", found.Categories[0].Name)

	_, err = suite.service.UpdateProduct(ctx, uuid.New(), req)
	suite.ErrorIs(err, ErrNotFound)

	req.Price = decimal.RequireFromString("19.999")
	_, err = suite.service.UpdateProduct(ctx, created.ID, req)
	suite.ErrorIs(err, ErrValidation)
}

func (suite *ProductServiceTestSuite) TestDelete() {
	ctx := context.Background()
	product := testutil.CreateProduct(suite.T(), suite.db, "Smart TV", "2190.00")

	suite.NoError(suite.service.DeleteProduct(ctx, product.ID))
	suite.ErrorIs(suite.service.DeleteProduct(ctx, product.ID), ErrNotFound)

	var links int64
	suite.db.Table("product_categories").Where("product_id = ?", product.ID).Count(&links)
	suite.Zero(links)
}

func (suite *ProductServiceTestSuite) TestDeleteOrderedProductViolatesIntegrity() {
	ctx := context.Background()
	product := testutil.CreateProduct(suite.T(), suite.db, "Smart TV", "2190.00")
	client := testutil.CreateUser(suite.T(), suite.db, "maria@gmail.com", "123456", models.AuthorityClient).Principal()

	_, err := NewOrderService(suite.db).Insert(ctx, client, &CreateOrderRequest{
		Items: []OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	suite.Require().NoError(err)

	suite.ErrorIs(suite.service.DeleteProduct(ctx, product.ID), ErrIntegrityViolation)

	// The failed delete leaves the product and its categories untouched
	found, err := suite.service.GetProduct(ctx, product.ID)
	suite.Require().NoError(err)
	suite.Len(found.Categories, 1)
}

func (suite *ProductServiceTestSuite) TestSetImage() {
	ctx := context.Background()
	product := testutil.CreateProduct(suite.T(), suite.db, "Smart TV", "2190.00")

	updated, err := suite.service.SetImage(ctx, product.ID, "https://cdn.example.com/products/tv.png")
	suite.Require().NoError(err)
	suite.Equal("https://cdn.example.com/products/tv.png", updated.ImgURL)

	_, err = suite.service.SetImage(ctx, uuid.New(), "https://cdn.example.com/x.png")
	suite.ErrorIs(err, ErrNotFound)
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
