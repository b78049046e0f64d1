package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/dscommerce/dscommerce-backend/internal/models"
	"github.com/dscommerce/dscommerce-backend/internal/testutil"
	"github.com/dscommerce/dscommerce-backend/internal/utils"
)

type OrderServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *OrderService
	client  *models.Principal
	other   *models.Principal
	admin   *models.Principal
	product *models.Product
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.db = testutil.NewDB(suite.T())
	suite.service = NewOrderService(suite.db)
	suite.client = testutil.CreateUser(suite.T(), suite.db, "maria@gmail.com", "123456", models.AuthorityClient).Principal()
	suite.other = testutil.CreateUser(suite.T(), suite.db, "alex@gmail.com", "123456", models.AuthorityClient).Principal()
	suite.admin = testutil.CreateUser(suite.T(), suite.db, "root@gmail.com", "123456", models.AuthorityClient, models.AuthorityAdmin).Principal()
	suite.product = testutil.CreateProduct(suite.T(), suite.db, "The Lord of the Rings", "10.00")
}

func (suite *OrderServiceTestSuite) placeOrder(principal *models.Principal, items ...OrderItemRequest) *OrderView {
	order, err := suite.service.Insert(context.Background(), principal, &CreateOrderRequest{Items: items})
	suite.Require().NoError(err)
	return order
}

func (suite *OrderServiceTestSuite) TestInsertCapturesPriceAndTotal() {
	order := suite.placeOrder(suite.client, OrderItemRequest{ProductID: suite.product.ID, Quantity: 2})

	suite.Equal(models.OrderStatusWaitingPayment, order.Status)
	suite.Equal(suite.client.UserID, order.Client.ID)
	suite.Require().Len(order.Items, 1)
	suite.True(decimal.RequireFromString("10.00").Equal(order.Items[0].Price))
	suite.True(decimal.RequireFromString("20.00").Equal(order.Items[0].SubTotal))
	suite.True(decimal.RequireFromString("20.00").Equal(order.Total))
	suite.Equal(suite.product.Name, order.Items[0].Name)
}

func (suite *OrderServiceTestSuite) TestPriceSnapshotSurvivesProductChange() {
	order := suite.placeOrder(suite.client, OrderItemRequest{ProductID: suite.product.ID, Quantity: 2})

	suite.Require().NoError(suite.db.Model(&models.Product{}).
		Where("id = ?", suite.product.ID).
		Update("price", decimal.RequireFromString("15.00")).Error)

	found, err := suite.service.FindByID(context.Background(), suite.client, order.ID)
	suite.Require().NoError(err)
	suite.Require().Len(found.Items, 1)
	suite.True(decimal.RequireFromString("10.00").Equal(found.Items[0].Price))
	suite.True(decimal.RequireFromString("20.00").Equal(found.Total))
}

func (suite *OrderServiceTestSuite) TestInsertKeepsItemSequence() {
	second := testutil.CreateProduct(suite.T(), suite.db, "Smart TV", "2190.00")
	third := testutil.CreateProduct(suite.T(), suite.db, "Macbook Pro", "1250.00")

	order := suite.placeOrder(suite.client,
		OrderItemRequest{ProductID: third.ID, Quantity: 1},
		OrderItemRequest{ProductID: suite.product.ID, Quantity: 3},
		OrderItemRequest{ProductID: second.ID, Quantity: 1},
	)

	found, err := suite.service.FindByID(context.Background(), suite.client, order.ID)
	suite.Require().NoError(err)
	suite.Require().Len(found.Items, 3)
	suite.Equal(third.ID, found.Items[0].ProductID)
	suite.Equal(suite.product.ID, found.Items[1].ProductID)
	suite.Equal(second.ID, found.Items[2].ProductID)
	suite.True(decimal.RequireFromString("3470.00").Equal(found.Total))
}

func (suite *OrderServiceTestSuite) TestInsertUnknownProductWritesNothing() {
	_, err := suite.service.Insert(context.Background(), suite.client, &CreateOrderRequest{Items: []OrderItemRequest{
		{ProductID: suite.product.ID, Quantity: 1},
		{ProductID: uuid.New(), Quantity: 1},
	}})
	suite.ErrorIs(err, ErrNotFound)

	var orders, items int64
	suite.db.Model(&models.Order{}).Count(&orders)
	suite.db.Model(&models.OrderItem{}).Count(&items)
	suite.Zero(orders)
	suite.Zero(items)
}

func (suite *OrderServiceTestSuite) TestInsertRejectsInvalidRequests() {
	ctx := context.Background()

	_, err := suite.service.Insert(ctx, nil, &CreateOrderRequest{Items: []OrderItemRequest{{ProductID: suite.product.ID, Quantity: 1}}})
	suite.ErrorIs(err, ErrUnauthenticated)

	_, err = suite.service.Insert(ctx, suite.client, &CreateOrderRequest{})
	suite.ErrorIs(err, ErrValidation)

	_, err = suite.service.Insert(ctx, suite.client, &CreateOrderRequest{Items: []OrderItemRequest{{ProductID: suite.product.ID, Quantity: 0}}})
	suite.ErrorIs(err, ErrValidation)

	_, err = suite.service.Insert(ctx, suite.client, &CreateOrderRequest{Items: []OrderItemRequest{
		{ProductID: suite.product.ID, Quantity: 1},
		{ProductID: suite.product.ID, Quantity: 2},
	}})
	suite.ErrorIs(err, ErrValidation)
}

func (suite *OrderServiceTestSuite) TestFindByIDAuthorization() {
	ctx := context.Background()
	order := suite.placeOrder(suite.client, OrderItemRequest{ProductID: suite.product.ID, Quantity: 1})

	_, err := suite.service.FindByID(ctx, suite.client, order.ID)
	suite.NoError(err)

	_, err = suite.service.FindByID(ctx, suite.admin, order.ID)
	suite.NoError(err)

	_, err = suite.service.FindByID(ctx, suite.other, order.ID)
	suite.ErrorIs(err, ErrForbidden)

	_, err = suite.service.FindByID(ctx, nil, order.ID)
	suite.ErrorIs(err, ErrUnauthenticated)
}

func (suite *OrderServiceTestSuite) TestFindByIDMissingOrder() {
	_, err := suite.service.FindByID(context.Background(), suite.admin, uuid.New())
	suite.ErrorIs(err, ErrNotFound)

	// Absence is reported before ownership
	_, err = suite.service.FindByID(context.Background(), suite.other, uuid.New())
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestListForClientNewestFirst() {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var placed []uuid.UUID
	for i := 0; i < 3; i++ {
		moment := base.Add(time.Duration(i) * time.Hour)
		suite.service.now = func() time.Time { return moment }
		placed = append(placed, suite.placeOrder(suite.client, OrderItemRequest{ProductID: suite.product.ID, Quantity: i + 1}).ID)
	}
	suite.placeOrder(suite.other, OrderItemRequest{ProductID: suite.product.ID, Quantity: 1})

	orders, total, err := suite.service.ListForClient(context.Background(), suite.client, utils.NormalizePagination(utils.PaginationParams{Page: 1, Limit: 2}))
	suite.Require().NoError(err)
	suite.EqualValues(3, total)
	suite.Require().Len(orders, 2)
	suite.Equal(placed[2], orders[0].ID)
	suite.Equal(placed[1], orders[1].ID)
}

func (suite *OrderServiceTestSuite) TestConcurrentInserts() {
	const workers = 8

	var wg sync.WaitGroup
	placed := make([]uuid.UUID, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			order, err := suite.service.Insert(context.Background(), suite.client, &CreateOrderRequest{
				Items: []OrderItemRequest{{ProductID: suite.product.ID, Quantity: i + 1}},
			})
			errs[i] = err
			if err == nil {
				placed[i] = order.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		suite.Require().NoError(errs[i])

		found, err := suite.service.FindByID(context.Background(), suite.client, placed[i])
		suite.Require().NoError(err)
		suite.Require().Len(found.Items, 1)
		suite.Equal(i+1, found.Items[0].Quantity)
		want := decimal.RequireFromString("10.00").Mul(decimal.NewFromInt(int64(i + 1)))
		suite.True(want.Equal(found.Total), "order %d total %s", i, found.Total)
	}

	var orders, items int64
	suite.db.Model(&models.Order{}).Count(&orders)
	suite.db.Model(&models.OrderItem{}).Count(&items)
	suite.EqualValues(workers, orders)
	suite.EqualValues(workers, items)
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
