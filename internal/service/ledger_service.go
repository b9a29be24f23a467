package service

import (
	"fmt"

	"go-retail-ledger/internal/apperrors"
	"go-retail-ledger/internal/model"
	"go-retail-ledger/internal/repository"
	"go-retail-ledger/internal/ws"
	"go-retail-ledger/pkg/logging"
	"go-retail-ledger/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductPatch carries a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Name         *string
	Category     *string
	Unit         *string
	Quantity     *int
	SellingPrice *decimal.Decimal
	CostPrice    *decimal.Decimal
}

// RecordTransactionInput is the caller-supplied part of a new transaction.
// ProductName, TotalAmount and timestamps are derived, never accepted.
type RecordTransactionInput struct {
	ProductID uuid.UUID             `validate:"uuid_required"`
	Type      model.TransactionType `validate:"required,oneof=buy sell"`
	Quantity  int                   `validate:"required,gt=0"`
	UnitPrice decimal.Decimal       `validate:"-"` // checked manually, decimal has no tag support
	Note      string
}

// TransactionResult bundles the recorded transaction with the product state it
// produced. Oversold is the non-blocking over-sell signal: the operation
// succeeded, stock just went negative.
type TransactionResult struct {
	Transaction *model.Transaction `json:"transaction"`
	Product     *model.Product     `json:"product"`
	Oversold    bool               `json:"oversold"`
}

type LedgerService interface {
	CreateProduct(product *model.Product) error
	UpdateProduct(id uuid.UUID, patch ProductPatch) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
	RecordTransaction(input RecordTransactionInput) (*TransactionResult, error)
	DeleteTransaction(id uuid.UUID) error
	GetAllTransactions() ([]model.Transaction, error)
	GetTransactionByID(id uuid.UUID) (*model.Transaction, error)
}

type ledgerService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	wsHub           *ws.Hub
}

func NewLedgerService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, hub *ws.Hub) LedgerService {
	return &ledgerService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		wsHub:           hub,
	}
}

func (s *ledgerService) CreateProduct(product *model.Product) error {
	if errs := validator.ValidateStruct(product); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", apperrors.ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	if err := s.productRepo.Create(product); err != nil {
		return err
	}

	go s.wsHub.Publish(map[string]interface{}{
		"type":   "stock_update",
		"action": "product_created",
		"product": map[string]interface{}{
			"id":       product.ID,
			"name":     product.Name,
			"quantity": product.Quantity,
		},
	})

	return nil
}

func (s *ledgerService) UpdateProduct(id uuid.UUID, patch ProductPatch) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, fmt.Errorf("%w: product name must not be empty", apperrors.ErrValidation)
		}
		product.Name = *patch.Name
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Unit != nil {
		product.Unit = *patch.Unit
	}
	if patch.Quantity != nil {
		product.Quantity = *patch.Quantity
	}
	if patch.SellingPrice != nil {
		product.SellingPrice = *patch.SellingPrice
	}
	if patch.CostPrice != nil {
		product.CostPrice = *patch.CostPrice
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	go s.wsHub.Publish(map[string]interface{}{
		"type":   "stock_update",
		"action": "product_updated",
		"product": map[string]interface{}{
			"id":       product.ID,
			"name":     product.Name,
			"quantity": product.Quantity,
		},
	})

	return product, nil
}

// DeleteProduct removes the product only. Transactions that reference it stay
// in the log; their later deletion skips the stock reversal.
func (s *ledgerService) DeleteProduct(id uuid.UUID) error {
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	go s.wsHub.Publish(map[string]interface{}{
		"type":       "stock_update",
		"action":     "product_deleted",
		"product_id": id,
	})

	return nil
}

func (s *ledgerService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *ledgerService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *ledgerService) RecordTransaction(input RecordTransactionInput) (*TransactionResult, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", apperrors.ErrValidation, firstErr.FailedField, firstErr.Tag)
	}
	if input.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price must not be negative", apperrors.ErrValidation)
	}

	txn := &model.Transaction{
		ProductID: input.ProductID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		UnitPrice: input.UnitPrice,
		Note:      input.Note,
	}
	txn.ComputeTotal()

	// The repo applies the stock delta and inserts the record as one atomic
	// unit, snapshotting the product name under the row lock.
	product, err := s.transactionRepo.Record(txn)
	if err != nil {
		return nil, err
	}

	oversold := txn.Type == model.TxSell && product.Quantity < 0
	if oversold {
		logging.GetLogger().WithFields(map[string]interface{}{
			"product_id": product.ID,
			"quantity":   product.Quantity,
		}).Warn("sell drove product stock negative")
	}

	go s.wsHub.Publish(map[string]interface{}{
		"type":   "stock_update",
		"action": "transaction_recorded",
		"transaction": map[string]interface{}{
			"id":           txn.ID,
			"type":         txn.Type,
			"quantity":     txn.Quantity,
			"product_id":   product.ID,
			"product_name": txn.ProductName,
			"new_quantity": product.Quantity,
		},
		"oversold":  oversold,
		"low_stock": product.IsLowStock(),
	})

	return &TransactionResult{
		Transaction: txn,
		Product:     product,
		Oversold:    oversold,
	}, nil
}

func (s *ledgerService) DeleteTransaction(id uuid.UUID) error {
	if err := s.transactionRepo.Reverse(id); err != nil {
		return err
	}

	go s.wsHub.Publish(map[string]interface{}{
		"type":           "stock_update",
		"action":         "transaction_deleted",
		"transaction_id": id,
	})

	return nil
}

func (s *ledgerService) GetAllTransactions() ([]model.Transaction, error) {
	return s.transactionRepo.FindAll()
}

func (s *ledgerService) GetTransactionByID(id uuid.UUID) (*model.Transaction, error) {
	return s.transactionRepo.FindByID(id)
}
