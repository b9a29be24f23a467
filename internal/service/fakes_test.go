package service_test

import (
	"sort"
	"time"

	"go-retail-ledger/internal/apperrors"
	"go-retail-ledger/internal/model"
	"go-retail-ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeDB is an in-memory stand-in for the persistence gateway. It mirrors the
// repository semantics closely enough to drive whole add/delete sequences in
// the property tests without a database.
type fakeDB struct {
	products map[uuid.UUID]*model.Product
	txns     []*model.Transaction
	seq      int64
}

func newFakeDB() *fakeDB {
	return &fakeDB{products: make(map[uuid.UUID]*model.Product)}
}

type fakeProductRepo struct{ db *fakeDB }
type fakeTxRepo struct{ db *fakeDB }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)
var _ repository.TransactionRepository = (*fakeTxRepo)(nil)

func newFakeRepos() (*fakeProductRepo, *fakeTxRepo) {
	db := newFakeDB()
	return &fakeProductRepo{db}, &fakeTxRepo{db}
}

func (f *fakeProductRepo) Create(p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	f.db.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) FindAll() ([]model.Product, error) {
	out := make([]model.Product, 0, len(f.db.products))
	for _, p := range f.db.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := f.db.products[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) Update(p *model.Product) error {
	if _, ok := f.db.products[p.ID]; !ok {
		return apperrors.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	cp := *p
	f.db.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(id uuid.UUID) error {
	delete(f.db.products, id)
	return nil
}

func (f *fakeProductRepo) FindLowStock(threshold int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.db.products {
		if p.Quantity <= threshold {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out, nil
}

func (f *fakeProductRepo) Count() (int64, error) {
	return int64(len(f.db.products)), nil
}

func (f *fakeTxRepo) Record(txn *model.Transaction) (*model.Product, error) {
	p, ok := f.db.products[txn.ProductID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	txn.ID = uuid.New()
	txn.CreatedAt = time.Now()
	f.db.seq++
	txn.Seq = f.db.seq
	txn.ProductName = p.Name

	p.Quantity += txn.StockDelta()
	p.UpdatedAt = txn.CreatedAt

	cp := *txn
	f.db.txns = append(f.db.txns, &cp)
	pcp := *p
	return &pcp, nil
}

func (f *fakeTxRepo) Reverse(id uuid.UUID) error {
	idx := -1
	for i, txn := range f.db.txns {
		if txn.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	txn := f.db.txns[idx]
	if p, ok := f.db.products[txn.ProductID]; ok {
		p.Quantity += txn.ReversalDelta()
		p.UpdatedAt = time.Now()
	}
	f.db.txns = append(f.db.txns[:idx], f.db.txns[idx+1:]...)
	return nil
}

func (f *fakeTxRepo) FindAll() ([]model.Transaction, error) {
	out := make([]model.Transaction, 0, len(f.db.txns))
	for _, txn := range f.db.txns {
		out = append(out, *txn)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Seq > out[j].Seq
	})
	return out, nil
}

func (f *fakeTxRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	for _, txn := range f.db.txns {
		if txn.ID == id {
			cp := *txn
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeTxRepo) FindRecent(limit int) ([]model.Transaction, error) {
	all, _ := f.FindAll()
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeTxRepo) SumTotalByType(txType model.TransactionType) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, txn := range f.db.txns {
		if txn.Type == txType {
			total = total.Add(txn.TotalAmount)
		}
	}
	return total, nil
}
