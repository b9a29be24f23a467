package service

import (
	"go-retail-ledger/internal/model"
	"go-retail-ledger/internal/repository"

	"github.com/shopspring/decimal"
)

const recentTransactionLimit = 5

// DashboardStats is recomputed on every request from the product and
// transaction collections. Nothing here is stored.
type DashboardStats struct {
	TotalProducts      int64               `json:"totalProducts"`
	TotalRevenue       decimal.Decimal     `json:"totalRevenue"`
	TotalExpense       decimal.Decimal     `json:"totalExpense"`
	Profit             decimal.Decimal     `json:"profit"`
	LowStockProducts   []model.Product     `json:"lowStockProducts"`
	RecentTransactions []model.Transaction `json:"recentTransactions"`
}

type DashboardService interface {
	GetStats() (*DashboardStats, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
}

func NewDashboardService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository) DashboardService {
	return &dashboardService{productRepo: pRepo, txRepo: tRepo}
}

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	totalProducts, err := s.productRepo.Count()
	if err != nil {
		return nil, err
	}

	revenue, err := s.txRepo.SumTotalByType(model.TxSell)
	if err != nil {
		return nil, err
	}

	expense, err := s.txRepo.SumTotalByType(model.TxBuy)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.FindLowStock(model.LowStockThreshold)
	if err != nil {
		return nil, err
	}

	recent, err := s.txRepo.FindRecent(recentTransactionLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalProducts:      totalProducts,
		TotalRevenue:       revenue,
		TotalExpense:       expense,
		Profit:             revenue.Sub(expense),
		LowStockProducts:   lowStock,
		RecentTransactions: recent,
	}, nil
}
