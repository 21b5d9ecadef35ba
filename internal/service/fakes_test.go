package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/flicky/swiftora-api/internal/model"
	"github.com/flicky/swiftora-api/internal/repository"
)

// memStore backs every fake repository so joins see the same rows.
type memStore struct {
	accounts     map[uuid.UUID]*model.Account
	suppliers    map[uuid.UUID]*model.SupplierProfile
	supermarkets map[uuid.UUID]*model.SupermarketProfile
	products     map[string]*model.Product // supplier account id + "/" + product id
	inventory    map[string]*model.InventoryRecord
	tieUps       map[uuid.UUID]*model.TieUp
	orders       map[uuid.UUID]*model.Order
}

func newMemStore() *memStore {
	return &memStore{
		accounts:     make(map[uuid.UUID]*model.Account),
		suppliers:    make(map[uuid.UUID]*model.SupplierProfile),
		supermarkets: make(map[uuid.UUID]*model.SupermarketProfile),
		products:     make(map[string]*model.Product),
		inventory:    make(map[string]*model.InventoryRecord),
		tieUps:       make(map[uuid.UUID]*model.TieUp),
		orders:       make(map[uuid.UUID]*model.Order),
	}
}

func rowKey(acct uuid.UUID, id string) string { return acct.String() + "/" + id }

// addSupplier and addSupermarket seed an account with its profile.
func (s *memStore) addSupplier(name string) *model.SupplierProfile {
	acct := &model.Account{ID: uuid.New(), Username: name, Email: name + "@example.com", Role: model.RoleSupplier}
	s.accounts[acct.ID] = acct
	p := &model.SupplierProfile{ID: uuid.New(), AccountID: acct.ID, Name: name, Contact: "555-" + name}
	s.suppliers[p.ID] = p
	return p
}

func (s *memStore) addSupermarket(name string) *model.SupermarketProfile {
	acct := &model.Account{ID: uuid.New(), Username: name, Email: name + "@example.com", Role: model.RoleSupermarket}
	s.accounts[acct.ID] = acct
	p := &model.SupermarketProfile{ID: uuid.New(), AccountID: acct.ID, Name: &name}
	s.supermarkets[p.ID] = p
	return p
}

func (s *memStore) addProduct(supplierAccountID uuid.UUID, id, name string) *model.Product {
	p := &model.Product{ID: id, SupplierAccountID: supplierAccountID, SKU: "SKU-" + id, Barcode: id, Name: name, Stock: 10}
	s.products[rowKey(supplierAccountID, id)] = p
	return p
}

// --- accounts ---

type fakeAccountRepo struct{ s *memStore }

func (r fakeAccountRepo) Register(_ context.Context, a *model.Account, sup *model.SupplierProfile, mkt *model.SupermarketProfile) error {
	for _, existing := range r.s.accounts {
		if existing.Username == a.Username || existing.Email == a.Email {
			return repository.ErrDuplicate
		}
	}
	a.ID = uuid.New()
	a.CreatedAt, a.UpdatedAt = time.Now(), time.Now()
	r.s.accounts[a.ID] = a
	if sup != nil {
		sup.ID, sup.AccountID = uuid.New(), a.ID
		r.s.suppliers[sup.ID] = sup
	}
	if mkt != nil {
		mkt.ID, mkt.AccountID = uuid.New(), a.ID
		r.s.supermarkets[mkt.ID] = mkt
	}
	return nil
}

func (r fakeAccountRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	return r.s.accounts[id], nil
}

func (r fakeAccountRepo) GetByUsername(_ context.Context, username string) (*model.Account, error) {
	for _, a := range r.s.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, nil
}

func (r fakeAccountRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, a := range r.s.accounts {
		if a.Username == username || a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// --- suppliers ---

type fakeSupplierRepo struct{ s *memStore }

func (r fakeSupplierRepo) Create(_ context.Context, p *model.SupplierProfile) error {
	for _, existing := range r.s.suppliers {
		if existing.AccountID == p.AccountID {
			return repository.ErrDuplicate
		}
	}
	p.ID = uuid.New()
	r.s.suppliers[p.ID] = p
	return nil
}

func (r fakeSupplierRepo) GetByID(_ context.Context, id uuid.UUID) (*model.SupplierProfile, error) {
	if p, ok := r.s.suppliers[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r fakeSupplierRepo) GetByAccountID(_ context.Context, accountID uuid.UUID) (*model.SupplierProfile, error) {
	for _, p := range r.s.suppliers {
		if p.AccountID == accountID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeSupplierRepo) ListByAccountIDs(_ context.Context, ids []uuid.UUID) ([]model.SupplierProfile, error) {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []model.SupplierProfile
	for _, p := range r.s.suppliers {
		if want[p.AccountID] {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r fakeSupplierRepo) List(_ context.Context) ([]model.SupplierProfile, error) {
	var out []model.SupplierProfile
	for _, p := range r.s.suppliers {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r fakeSupplierRepo) Update(_ context.Context, p *model.SupplierProfile) error {
	if _, ok := r.s.suppliers[p.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	r.s.suppliers[p.ID] = &cp
	return nil
}

// --- supermarkets ---

type fakeSupermarketRepo struct{ s *memStore }

func (r fakeSupermarketRepo) Create(_ context.Context, p *model.SupermarketProfile) error {
	for _, existing := range r.s.supermarkets {
		if existing.AccountID == p.AccountID {
			return repository.ErrDuplicate
		}
	}
	p.ID = uuid.New()
	r.s.supermarkets[p.ID] = p
	return nil
}

func (r fakeSupermarketRepo) GetByID(_ context.Context, id uuid.UUID) (*model.SupermarketProfile, error) {
	if p, ok := r.s.supermarkets[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r fakeSupermarketRepo) GetByAccountID(_ context.Context, accountID uuid.UUID) (*model.SupermarketProfile, error) {
	for _, p := range r.s.supermarkets {
		if p.AccountID == accountID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeSupermarketRepo) Update(_ context.Context, p *model.SupermarketProfile) error {
	if _, ok := r.s.supermarkets[p.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	r.s.supermarkets[p.ID] = &cp
	return nil
}

func (r fakeSupermarketRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.supermarkets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.supermarkets, id)
	for tid, t := range r.s.tieUps {
		if t.SupermarketID == id {
			delete(r.s.tieUps, tid)
		}
	}
	return nil
}

// --- products ---

type fakeProductRepo struct{ s *memStore }

func (r fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	for _, existing := range r.s.products {
		if existing.SupplierAccountID == p.SupplierAccountID && (existing.ID == p.ID || existing.SKU == p.SKU) {
			return repository.ErrDuplicate
		}
	}
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	cp := *p
	r.s.products[rowKey(p.SupplierAccountID, p.ID)] = &cp
	return nil
}

func (r fakeProductRepo) find(acct uuid.UUID, match func(*model.Product) bool) *model.Product {
	for _, p := range r.s.products {
		if p.SupplierAccountID == acct && match(p) {
			cp := *p
			return &cp
		}
	}
	return nil
}

func (r fakeProductRepo) GetByID(_ context.Context, acct uuid.UUID, id string) (*model.Product, error) {
	return r.find(acct, func(p *model.Product) bool { return p.ID == id }), nil
}

func (r fakeProductRepo) GetBySKU(_ context.Context, acct uuid.UUID, sku string) (*model.Product, error) {
	return r.find(acct, func(p *model.Product) bool { return p.SKU == sku }), nil
}

func (r fakeProductRepo) GetByBarcode(_ context.Context, acct uuid.UUID, barcode string) (*model.Product, error) {
	return r.find(acct, func(p *model.Product) bool { return p.Barcode == barcode }), nil
}

func (r fakeProductRepo) ListBySupplier(_ context.Context, acct uuid.UUID) ([]model.Product, error) {
	return r.ListBySuppliers(context.Background(), []uuid.UUID{acct})
}

func (r fakeProductRepo) ListBySuppliers(_ context.Context, accts []uuid.UUID) ([]model.Product, error) {
	want := make(map[uuid.UUID]bool, len(accts))
	for _, a := range accts {
		want[a] = true
	}
	var out []model.Product
	for _, p := range r.s.products {
		if want[p.SupplierAccountID] {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r fakeProductRepo) ListAll(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.s.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r fakeProductRepo) CountBySupplier(ctx context.Context, acct uuid.UUID) (int, error) {
	list, _ := r.ListBySupplier(ctx, acct)
	return len(list), nil
}

func (r fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	key := rowKey(p.SupplierAccountID, p.ID)
	if _, ok := r.s.products[key]; !ok {
		return repository.ErrNotFound
	}
	for k, existing := range r.s.products {
		if k != key && existing.SupplierAccountID == p.SupplierAccountID && existing.SKU == p.SKU {
			return repository.ErrDuplicate
		}
	}
	p.UpdatedAt = time.Now()
	cp := *p
	r.s.products[key] = &cp
	return nil
}

func (r fakeProductRepo) DeleteBySKU(_ context.Context, acct uuid.UUID, sku string) error {
	for k, p := range r.s.products {
		if p.SupplierAccountID == acct && p.SKU == sku {
			delete(r.s.products, k)
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- inventory ---

type fakeInventoryRepo struct{ s *memStore }

func (r fakeInventoryRepo) Upsert(_ context.Context, rec *model.InventoryRecord) error {
	key := rowKey(rec.SupplierAccountID, rec.ProductID)
	if existing, ok := r.s.inventory[key]; ok {
		rec.ID = existing.ID
	} else {
		rec.ID = uuid.New()
	}
	cp := *rec
	r.s.inventory[key] = &cp
	return nil
}

func (r fakeInventoryRepo) Update(_ context.Context, rec *model.InventoryRecord) error {
	key := rowKey(rec.SupplierAccountID, rec.ProductID)
	existing, ok := r.s.inventory[key]
	if !ok {
		return repository.ErrNotFound
	}
	rec.ID = existing.ID
	cp := *rec
	r.s.inventory[key] = &cp
	return nil
}

func (r fakeInventoryRepo) Delete(_ context.Context, acct uuid.UUID, productID string) error {
	key := rowKey(acct, productID)
	if _, ok := r.s.inventory[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.inventory, key)
	return nil
}

func (r fakeInventoryRepo) ListBySupplier(_ context.Context, acct uuid.UUID) ([]model.InventoryRecord, error) {
	var out []model.InventoryRecord
	for _, rec := range r.s.inventory {
		if rec.SupplierAccountID == acct {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r fakeInventoryRepo) Summary(_ context.Context, acct uuid.UUID) (model.StockSummary, error) {
	var s model.StockSummary
	for _, rec := range r.s.inventory {
		if rec.SupplierAccountID != acct {
			continue
		}
		switch rec.StockLevel {
		case model.StockLow:
			s.Low++
		case model.StockMedium:
			s.Medium++
		case model.StockHigh:
			s.High++
		}
	}
	return s, nil
}

// --- tie-ups ---

type fakeTieUpRepo struct{ s *memStore }

func (r fakeTieUpRepo) CreateIfAbsent(_ context.Context, t *model.TieUp) (bool, error) {
	for _, existing := range r.s.tieUps {
		if existing.SupplierID == t.SupplierID && existing.SupermarketID == t.SupermarketID {
			*t = *existing
			return false, nil
		}
	}
	t.ID = uuid.New()
	t.RequestedAt, t.UpdatedAt = time.Now(), time.Now()
	cp := *t
	r.s.tieUps[t.ID] = &cp
	return true, nil
}

func (r fakeTieUpRepo) find(match func(*model.TieUp) bool) *model.TieUp {
	for _, t := range r.s.tieUps {
		if match(t) {
			cp := *t
			return &cp
		}
	}
	return nil
}

func (r fakeTieUpRepo) GetByPair(_ context.Context, supermarketID, supplierID uuid.UUID) (*model.TieUp, error) {
	return r.find(func(t *model.TieUp) bool { return t.SupermarketID == supermarketID && t.SupplierID == supplierID }), nil
}

func (r fakeTieUpRepo) GetForSupermarketAccount(_ context.Context, acct, supplierID uuid.UUID) (*model.TieUp, error) {
	return r.find(func(t *model.TieUp) bool { return t.SupermarketAccountID == acct && t.SupplierID == supplierID }), nil
}

func (r fakeTieUpRepo) Accept(_ context.Context, supermarketID, supplierID uuid.UUID) (*model.TieUp, error) {
	for _, t := range r.s.tieUps {
		if t.SupermarketID == supermarketID && t.SupplierID == supplierID {
			t.Status = model.TieUpAccepted
			t.UpdatedAt = time.Now()
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeTieUpRepo) ListAcceptedForSupermarket(_ context.Context, acct uuid.UUID) ([]model.AcceptedTieUp, error) {
	var out []model.AcceptedTieUp
	for _, t := range r.s.tieUps {
		if t.SupermarketAccountID == acct && t.Status == model.TieUpAccepted {
			out = append(out, model.AcceptedTieUp{TieUp: *t, Supplier: *r.s.suppliers[t.SupplierID]})
		}
	}
	return out, nil
}

func (r fakeTieUpRepo) ListForSupplier(_ context.Context, acct uuid.UUID, status *model.TieUpStatus) ([]model.SupplierTieUp, error) {
	var out []model.SupplierTieUp
	for _, t := range r.s.tieUps {
		if t.SupplierAccountID != acct || (status != nil && t.Status != *status) {
			continue
		}
		out = append(out, model.SupplierTieUp{TieUp: *t, Supermarket: *r.s.supermarkets[t.SupermarketID]})
	}
	return out, nil
}

func (r fakeTieUpRepo) AcceptedSupplierAccounts(_ context.Context, acct uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, t := range r.s.tieUps {
		if t.SupermarketAccountID == acct && t.Status == model.TieUpAccepted && !seen[t.SupplierAccountID] {
			seen[t.SupplierAccountID] = true
			out = append(out, t.SupplierAccountID)
		}
	}
	return out, nil
}

func (r fakeTieUpRepo) count(match func(*model.TieUp) bool) (int, int, error) {
	var accepted, pending int
	for _, t := range r.s.tieUps {
		if !match(t) {
			continue
		}
		if t.Status == model.TieUpAccepted {
			accepted++
		} else {
			pending++
		}
	}
	return accepted, pending, nil
}

func (r fakeTieUpRepo) CountForSupermarket(_ context.Context, acct uuid.UUID) (int, int, error) {
	return r.count(func(t *model.TieUp) bool { return t.SupermarketAccountID == acct })
}

func (r fakeTieUpRepo) CountForSupplier(_ context.Context, acct uuid.UUID) (int, int, error) {
	return r.count(func(t *model.TieUp) bool { return t.SupplierAccountID == acct })
}

// --- orders ---

type fakeOrderRepo struct{ s *memStore }

func (r fakeOrderRepo) Place(_ context.Context, o *model.Order) error {
	accepted := false
	for _, t := range r.s.tieUps {
		if t.SupermarketAccountID == o.SupermarketAccountID && t.SupplierAccountID == o.SupplierAccountID && t.Status == model.TieUpAccepted {
			accepted = true
		}
	}
	if !accepted {
		return repository.ErrTieUpNotAccepted
	}
	p, ok := r.s.products[rowKey(o.SupplierAccountID, o.ProductID)]
	if !ok {
		return repository.ErrProductMissing
	}
	if o.SKU == "" {
		o.SKU = p.SKU
	}
	now := time.Now()
	o.ID = uuid.New()
	o.OrderDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	o.Status = model.OrderStatusPending
	o.CreatedAt, o.UpdatedAt = now, now
	cp := *o
	r.s.orders[o.ID] = &cp
	return nil
}

func (r fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	if o, ok := r.s.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string, deliveredAt *time.Time) (*model.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o.Status = status
	if deliveredAt != nil {
		o.DeliveryDate = deliveredAt
	}
	o.UpdatedAt = time.Now()
	cp := *o
	return &cp, nil
}

func (r fakeOrderRepo) list(match func(*model.Order) bool, limit int) []model.Order {
	var out []model.Order
	for _, o := range r.s.orders {
		if match(o) {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r fakeOrderRepo) ListBySupplier(_ context.Context, acct uuid.UUID, limit int) ([]model.Order, error) {
	return r.list(func(o *model.Order) bool { return o.SupplierAccountID == acct }, limit), nil
}

func (r fakeOrderRepo) ListBySupermarket(_ context.Context, acct uuid.UUID, limit int) ([]model.Order, error) {
	return r.list(func(o *model.Order) bool { return o.SupermarketAccountID == acct }, limit), nil
}

func (r fakeOrderRepo) ListDetailsBySupermarket(ctx context.Context, acct uuid.UUID) ([]model.OrderDetail, error) {
	orders, _ := r.ListBySupermarket(ctx, acct, 0)
	var out []model.OrderDetail
	for _, o := range orders {
		d := model.OrderDetail{Order: o}
		if p, ok := r.s.products[rowKey(o.SupplierAccountID, o.ProductID)]; ok {
			d.ProductName, d.ProductStock, d.ProductSKU = &p.Name, &p.Stock, &p.SKU
		}
		for _, sp := range r.s.suppliers {
			if sp.AccountID == o.SupplierAccountID {
				d.SupplierName, d.SupplierContact = &sp.Name, &sp.Contact
			}
		}
		if a, ok := r.s.accounts[o.SupplierAccountID]; ok {
			d.SupplierEmail = &a.Email
		}
		out = append(out, d)
	}
	return out, nil
}

func (r fakeOrderRepo) StatusCounts(_ context.Context, role model.Role, acct uuid.UUID) (map[string]int, error) {
	counts := make(map[string]int)
	for _, o := range r.s.orders {
		if (role == model.RoleSupplier && o.SupplierAccountID == acct) ||
			(role == model.RoleSupermarket && o.SupermarketAccountID == acct) {
			counts[o.Status]++
		}
	}
	return counts, nil
}

var (
	_ repository.AccountRepository     = fakeAccountRepo{}
	_ repository.SupplierRepository    = fakeSupplierRepo{}
	_ repository.SupermarketRepository = fakeSupermarketRepo{}
	_ repository.ProductRepository     = fakeProductRepo{}
	_ repository.InventoryRepository   = fakeInventoryRepo{}
	_ repository.TieUpRepository       = fakeTieUpRepo{}
	_ repository.OrderRepository       = fakeOrderRepo{}
)
