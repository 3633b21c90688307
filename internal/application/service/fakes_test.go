package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kmuteti/restopos-api/internal/domain/entity"
	"github.com/kmuteti/restopos-api/internal/domain/enum"
	"github.com/kmuteti/restopos-api/internal/domain/repository"
	infraRepo "github.com/kmuteti/restopos-api/internal/infrastructure/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes mirroring the transactional behavior of the
// Postgres implementations: commit is all-or-nothing, shift open is unique
// per staff, and resume deletes the held order.

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *fakeProductRepo) add(name string, price int64, quantity int) *entity.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := &entity.Product{
		ID:       uuid.New(),
		Name:     name,
		SKU:      fmt.Sprintf("SKU-%s", uuid.New().String()[:8]),
		Price:    price,
		Quantity: quantity,
		Active:   true,
	}
	r.products[p.ID] = p
	return p
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _ *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) GetLowStock(_ context.Context) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Product
	for _, p := range r.products {
		if p.Active && p.Quantity <= p.QuantityAlert {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) AtomicIncrementBatch(_ context.Context, increments map[uuid.UUID]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, amount := range increments {
		if p, ok := r.products[id]; ok {
			p.Quantity += amount
		}
	}
	return nil
}

func (r *fakeProductRepo) quantity(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		return p.Quantity
	}
	return -1
}

type fakeStaffRepo struct {
	mu    sync.Mutex
	staff map[uuid.UUID]*entity.Staff
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staff: make(map[uuid.UUID]*entity.Staff)}
}

func (r *fakeStaffRepo) Create(_ context.Context, staff *entity.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if staff.ID == uuid.Nil {
		staff.ID = uuid.New()
	}
	cp := *staff
	r.staff[staff.ID] = &cp
	return nil
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.staff[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStaffRepo) GetByUsername(_ context.Context, username string) (*entity.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.staff {
		if s.Username == username {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeStaffRepo) Update(_ context.Context, staff *entity.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *staff
	r.staff[staff.ID] = &cp
	return nil
}

func (r *fakeStaffRepo) List(_ context.Context) ([]entity.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Staff, 0, len(r.staff))
	for _, s := range r.staff {
		out = append(out, *s)
	}
	return out, nil
}

type fakeShiftRepo struct {
	mu     sync.Mutex
	shifts map[uuid.UUID]*entity.Shift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[uuid.UUID]*entity.Shift)}
}

func (r *fakeShiftRepo) Create(_ context.Context, shift *entity.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.shifts {
		if s.StaffID == shift.StaffID && !s.IsClosed {
			return gorm.ErrDuplicatedKey
		}
	}
	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	cp := *shift
	r.shifts[shift.ID] = &cp
	return nil
}

func (r *fakeShiftRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shifts[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeShiftRepo) GetActiveByStaff(_ context.Context, staffID uuid.UUID) (*entity.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.shifts {
		if s.StaffID == staffID && !s.IsClosed {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeShiftRepo) Close(_ context.Context, shift *entity.Shift) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.shifts[shift.ID]
	if !ok || stored.IsClosed {
		return false, nil
	}
	stored.PhysicalCashCounted = shift.PhysicalCashCounted
	stored.ClosedAt = shift.ClosedAt
	stored.IsClosed = true
	return true, nil
}

func (r *fakeShiftRepo) List(_ context.Context, staffID uuid.UUID, includeClosed bool) ([]entity.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Shift
	for _, s := range r.shifts {
		if s.StaffID != staffID {
			continue
		}
		if s.IsClosed && !includeClosed {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OpenedAt.After(out[j].OpenedAt) })
	return out, nil
}

type fakeSaleRepo struct {
	mu         sync.Mutex
	sales      map[uuid.UUID]*entity.Sale
	products   *fakeProductRepo
	shifts     *fakeShiftRepo
	daySerial  int64
	receiptSeq int64

	// beforeStatusWrite, when set, runs once at the start of the next
	// UpdateKitchenStatus call. Tests use it to slip a concurrent status
	// change between a caller's read and its write.
	beforeStatusWrite func()
}

func newFakeSaleRepo(products *fakeProductRepo, shifts *fakeShiftRepo) *fakeSaleRepo {
	return &fakeSaleRepo{
		sales:    make(map[uuid.UUID]*entity.Sale),
		products: products,
		shifts:   shifts,
	}
}

func (r *fakeSaleRepo) Commit(_ context.Context, commit *repository.SaleCommit) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products.mu.Lock()
	defer r.products.mu.Unlock()
	r.shifts.mu.Lock()
	defer r.shifts.mu.Unlock()

	shift, ok := r.shifts.shifts[commit.Sale.ShiftID]
	if !ok || shift.IsClosed {
		return nil, infraRepo.ErrShiftNotOpen
	}

	var failed []uuid.UUID
	for id, qty := range commit.Decrements {
		p, ok := r.products.products[id]
		if !ok || p.Quantity < qty {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}

	for id, qty := range commit.Decrements {
		r.products.products[id].Quantity -= qty
	}

	r.daySerial++
	r.receiptSeq++
	sale := commit.Sale
	sale.ID = uuid.New()
	sale.OrderNo = fmt.Sprintf("ORD-%s%02d", commit.OrderDate.Format("0102"), r.daySerial)
	sale.ReceiptNo = fmt.Sprintf("RCP-%08d", r.receiptSeq)
	sale.CreatedAt = time.Now()

	switch sale.PaymentMethod {
	case enum.PaymentMethodCard:
		shift.CardSalesTotal += sale.Total
	case enum.PaymentMethodCredit:
		shift.CreditSalesTotal += sale.Total
	case enum.PaymentMethodFOC:
		shift.FocSalesTotal += sale.Total
	default:
		shift.CashSalesTotal += sale.Total
	}

	cp := *sale
	cp.Items = append([]entity.SaleItem(nil), commit.Items...)
	r.sales[sale.ID] = &cp
	return nil, nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeSaleRepo) GetByReceiptNo(_ context.Context, receiptNo string) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sales {
		if s.ReceiptNo == receiptNo {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) List(_ context.Context, _ *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) UpdateKitchenStatus(_ context.Context, id uuid.UUID, from, to enum.KitchenStatus) error {
	if hook := r.beforeStatusWrite; hook != nil {
		r.beforeStatusWrite = nil
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok || s.KitchenStatus != from {
		return infraRepo.ErrTicketStatusChanged
	}
	s.KitchenStatus = to
	return nil
}

func (r *fakeSaleRepo) ActiveTickets(_ context.Context, dayStart time.Time) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Sale
	for _, s := range r.sales {
		if s.KitchenStatus.IsActive() && !s.CreatedAt.Before(dayStart) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSaleRepo) CountOpenTickets(_ context.Context, shiftID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.sales {
		if s.ShiftID == shiftID && s.KitchenStatus.IsActive() {
			n++
		}
	}
	return n, nil
}

type fakeHeldOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*entity.HeldOrder
}

func newFakeHeldOrderRepo() *fakeHeldOrderRepo {
	return &fakeHeldOrderRepo{orders: make(map[uuid.UUID]*entity.HeldOrder)}
}

func (r *fakeHeldOrderRepo) Create(_ context.Context, order *entity.HeldOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeHeldOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.HeldOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeHeldOrderRepo) ListByOwner(_ context.Context, ownerSessionID string) ([]entity.HeldOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.HeldOrder
	for _, o := range r.orders {
		if o.OwnerSessionID == ownerSessionID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HeldAt.Before(out[j].HeldAt) })
	return out, nil
}

func (r *fakeHeldOrderRepo) Resume(_ context.Context, id uuid.UUID) (*entity.HeldOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	delete(r.orders, id)
	return o, nil
}

func (r *fakeHeldOrderRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return false, nil
	}
	delete(r.orders, id)
	return true, nil
}

// memoryBoardCache records cache traffic so tests can assert on hits and
// invalidations.
type memoryBoardCache struct {
	mu          sync.Mutex
	entries     map[string]json.RawMessage
	sets        int
	invalidates int
}

func newMemoryBoardCache() *memoryBoardCache {
	return &memoryBoardCache{entries: make(map[string]json.RawMessage)}
}

func (c *memoryBoardCache) Get(_ context.Context, key string) (json.RawMessage, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.entries[key]
	return payload, ok, nil
}

func (c *memoryBoardCache) Set(_ context.Context, key string, payload json.RawMessage, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = payload
	c.sets++
	return nil
}

func (c *memoryBoardCache) Invalidate(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.invalidates++
	return nil
}
