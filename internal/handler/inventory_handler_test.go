package handler_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"go-retail-ledger/internal/apperrors"
	"go-retail-ledger/internal/handler"
	"go-retail-ledger/internal/model"
	"go-retail-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLedgerService struct {
	mock.Mock
}

var _ service.LedgerService = (*MockLedgerService)(nil)

func (m *MockLedgerService) CreateProduct(product *model.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockLedgerService) UpdateProduct(id uuid.UUID, patch service.ProductPatch) (*model.Product, error) {
	args := m.Called(id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockLedgerService) DeleteProduct(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockLedgerService) GetAllProducts() ([]model.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockLedgerService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockLedgerService) RecordTransaction(input service.RecordTransactionInput) (*service.TransactionResult, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TransactionResult), args.Error(1)
}

func (m *MockLedgerService) DeleteTransaction(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockLedgerService) GetAllTransactions() ([]model.Transaction, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *MockLedgerService) GetTransactionByID(id uuid.UUID) (*model.Transaction, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func newInventoryApp(svc service.LedgerService) *fiber.App {
	h := handler.NewInventoryHandler(svc)
	app := fiber.New()
	app.Get("/products", h.GetProducts)
	app.Post("/products", h.CreateProduct)
	app.Put("/products/:id", h.UpdateProduct)
	app.Delete("/products/:id", h.DeleteProduct)
	app.Get("/transactions", h.GetTransactions)
	app.Get("/transactions/:id", h.GetTransaction)
	app.Post("/transactions", h.CreateTransaction)
	app.Delete("/transactions/:id", h.DeleteTransaction)
	return app
}

func TestCreateProductCoercesInvalidNumerics(t *testing.T) {
	svc := new(MockLedgerService)
	app := newInventoryApp(svc)

	var got *model.Product
	svc.On("CreateProduct", mock.AnythingOfType("*model.Product")).
		Run(func(args mock.Arguments) {
			got = args.Get(0).(*model.Product)
		}).
		Return(nil)

	body := `{"name":"Noodles","quantity":"junk","sellingPrice":-5,"costPrice":"4000"}`
	req := httptest.NewRequest("POST", "/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	require.NotNil(t, got)
	assert.Equal(t, 0, got.Quantity)
	assert.True(t, got.SellingPrice.IsZero())
	assert.Equal(t, "4000", got.CostPrice.String())
}

func TestCreateTransactionReturnsOversoldSignal(t *testing.T) {
	svc := new(MockLedgerService)
	app := newInventoryApp(svc)

	productID := uuid.New()
	product := &model.Product{Name: "Milk", Quantity: -2}
	product.ID = productID
	txn := &model.Transaction{ProductID: productID, ProductName: "Milk", Type: model.TxSell, Quantity: 5}

	svc.On("RecordTransaction", mock.AnythingOfType("service.RecordTransactionInput")).
		Return(&service.TransactionResult{Transaction: txn, Product: product, Oversold: true}, nil)

	body := `{"productId":"` + productID.String() + `","type":"sell","quantity":5,"unitPrice":12000}`
	req := httptest.NewRequest("POST", "/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Data struct {
			Oversold bool `json:"oversold"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.True(t, payload.Data.Oversold)
}

func TestCreateTransactionRejectsBadProductID(t *testing.T) {
	svc := new(MockLedgerService)
	app := newInventoryApp(svc)

	body := `{"productId":"not-a-uuid","type":"sell","quantity":5,"unitPrice":12000}`
	req := httptest.NewRequest("POST", "/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	svc.AssertNotCalled(t, "RecordTransaction", mock.Anything)
}

func TestErrorMapping(t *testing.T) {
	svc := new(MockLedgerService)
	app := newInventoryApp(svc)

	missingID := uuid.New()
	svc.On("GetTransactionByID", missingID).Return(nil, apperrors.ErrNotFound)

	req := httptest.NewRequest("GET", "/transactions/"+missingID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	conflictID := uuid.New()
	svc.On("DeleteTransaction", conflictID).Return(apperrors.ErrInvariantViolation)

	req = httptest.NewRequest("DELETE", "/transactions/"+conflictID.String(), nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
}

func TestUpdateProductBuildsPatchFromBody(t *testing.T) {
	svc := new(MockLedgerService)
	app := newInventoryApp(svc)

	id := uuid.New()
	updated := &model.Product{Name: "Renamed"}
	updated.ID = id

	var gotPatch service.ProductPatch
	svc.On("UpdateProduct", id, mock.AnythingOfType("service.ProductPatch")).
		Run(func(args mock.Arguments) {
			gotPatch = args.Get(1).(service.ProductPatch)
		}).
		Return(updated, nil)

	body := `{"name":"Renamed","quantity":7}`
	req := httptest.NewRequest("PUT", "/products/"+id.String(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	require.NotNil(t, gotPatch.Name)
	assert.Equal(t, "Renamed", *gotPatch.Name)
	require.NotNil(t, gotPatch.Quantity)
	assert.Equal(t, 7, *gotPatch.Quantity)
	assert.Nil(t, gotPatch.SellingPrice)
	assert.Nil(t, gotPatch.Unit)
}
