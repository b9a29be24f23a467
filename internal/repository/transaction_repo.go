package repository

import (
	"errors"
	"fmt"
	"time"

	"go-retail-ledger/internal/apperrors"
	"go-retail-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionRepository interface {
	// Record inserts the transaction and applies its stock delta to the
	// referenced product as one atomic unit. Returns the product as it stands
	// after the adjustment.
	Record(txn *model.Transaction) (*model.Product, error)
	// Reverse deletes the transaction and applies its reversal delta to the
	// referenced product as one atomic unit. A missing transaction is a no-op;
	// a missing product skips the reversal.
	Reverse(id uuid.UUID) error
	FindAll() ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindRecent(limit int) ([]model.Transaction, error)
	SumTotalByType(txType model.TransactionType) (decimal.Decimal, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Record(txn *model.Transaction) (*model.Product, error) {
	var product model.Product
	stockAdjusted := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Lock the product row so concurrent transactions against the same
		// product serialize their read-modify-write.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", txn.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		// Snapshot the name under the lock so a concurrent rename cannot slip
		// between resolve and insert.
		txn.ProductName = product.Name
		product.Quantity += txn.StockDelta()
		product.UpdatedAt = time.Now()

		if err := tx.Model(&model.Product{}).
			Where("id = ?", product.ID).
			Updates(map[string]interface{}{
				"quantity":   product.Quantity,
				"updated_at": product.UpdatedAt,
			}).Error; err != nil {
			return err
		}
		stockAdjusted = true

		return tx.Create(txn).Error
	})

	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if stockAdjusted {
			// The quantity write went through but the pair failed to commit.
			// Everything rolled back; the caller should retry the whole
			// operation.
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvariantViolation, err)
		}
		return nil, err
	}
	return &product, nil
}

func (r *transactionRepo) Reverse(id uuid.UUID) error {
	reversalStarted := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var txn model.Transaction
		if err := tx.First(&txn, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // deleting a non-existent transaction is a no-op
			}
			return err
		}

		var product model.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", txn.ProductID).Error
		switch {
		case err == nil:
			reversalStarted = true
			if err := tx.Model(&model.Product{}).
				Where("id = ?", product.ID).
				Updates(map[string]interface{}{
					"quantity":   product.Quantity + txn.ReversalDelta(),
					"updated_at": time.Now(),
				}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Product was deleted after the transaction was recorded: skip the
			// reversal, do not resurrect the product.
		default:
			return err
		}

		return tx.Delete(&model.Transaction{}, "id = ?", id).Error
	})

	if err != nil && reversalStarted {
		return fmt.Errorf("%w: %v", apperrors.ErrInvariantViolation, err)
	}
	return err
}

// FindAll returns the log newest-first. Seq breaks createdAt ties in insertion
// order.
func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Order("created_at DESC, seq DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var txn model.Transaction
	if err := r.db.First(&txn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepo) FindRecent(limit int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Order("created_at DESC, seq DESC").Limit(limit).Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) SumTotalByType(txType model.TransactionType) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.Model(&model.Transaction{}).
		Where("type = ?", txType).
		Select("COALESCE(SUM(total_amount), 0)").
		Row()
	err := row.Scan(&total)
	return total, err
}
