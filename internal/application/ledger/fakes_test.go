package ledger_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Fakes en memoria para los puertos del motor. memTxRunner serializa las
// transacciones con un mutex (equivalente en memoria del lock de fila) y
// restaura un snapshot en caso de error, imitando el Rollback de PostgreSQL.

type memStore struct {
	mu        sync.Mutex
	products  map[string]entity.Product
	movements []entity.Movement
}

func newMemStore() *memStore {
	return &memStore{products: make(map[string]entity.Product)}
}

func (s *memStore) putProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *memStore) productQuantity(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Quantity
}

func (s *memStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

func (s *memStore) appendMovement(m entity.Movement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements = append(s.movements, m)
}

func (s *memStore) snapshot() ([]entity.Movement, map[string]entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	movs := append([]entity.Movement(nil), s.movements...)
	prods := make(map[string]entity.Product, len(s.products))
	for k, v := range s.products {
		prods[k] = v
	}
	return movs, prods
}

func (s *memStore) restore(movs []entity.Movement, prods map[string]entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements = movs
	s.products = prods
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type memTxRunner struct {
	store *memStore
	txMu  sync.Mutex
}

var _ ledger.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	movs, prods := r.store.snapshot()
	if err := fn(&memMovementRepo{store: r.store}, &memProductRepo{store: r.store}); err != nil {
		r.store.restore(movs, prods)
		return err
	}
	return nil
}

// ── MovementRepository ────────────────────────────────────────────────────────

type memMovementRepo struct {
	store *memStore
}

var _ repository.MovementRepository = (*memMovementRepo)(nil)

func (r *memMovementRepo) Create(m *entity.Movement) error {
	r.store.appendMovement(*m)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.Movement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, m := range r.store.movements {
		if m.ID == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) SumByProduct(productID string) (entries, exits int64, err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, m := range r.store.movements {
		if m.ProductID != productID {
			continue
		}
		if m.Type == entity.MovementTypeIn {
			entries += m.Quantity
		} else {
			exits += m.Quantity
		}
	}
	return entries, exits, nil
}

func (r *memMovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.MovementWithProduct, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.MovementWithProduct
	for _, m := range r.store.movements {
		p := r.store.products[m.ProductID]
		if !matches(filter, m, p) {
			continue
		}
		out = append(out, &entity.MovementWithProduct{Movement: m, ProductName: p.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memMovementRepo) Count(filter repository.MovementFilter) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, m := range r.store.movements {
		if matches(filter, m, r.store.products[m.ProductID]) {
			n++
		}
	}
	return n, nil
}

func matches(f repository.MovementFilter, m entity.Movement, p entity.Product) bool {
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.ProductName != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.ProductName)) {
		return false
	}
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if f.From != nil && m.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && m.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type memProductRepo struct {
	store *memStore
}

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(p *entity.Product) error {
	r.store.putProduct(*p)
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

// GetForUpdate: el lock real lo da memTxRunner serializando transacciones.
func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) Update(p *entity.Product) error {
	r.store.putProduct(*p)
	return nil
}

func (r *memProductRepo) UpdateQuantity(productID string, quantity int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[productID]
	if !ok {
		return nil
	}
	p.Quantity = quantity
	r.store.products[productID] = p
	return nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.store.products {
		cp := p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memProductRepo) ListIDs() ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ids := make([]string, 0, len(r.store.products))
	for id := range r.store.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *memProductRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.products, id)
	return nil
}
