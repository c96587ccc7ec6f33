// Package inventorytest ofrece un almacenamiento transaccional en memoria para probar
// el motor de inventario y sus adaptadores sin base de datos.
package inventorytest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

type levelKey struct{ item, warehouse string }

type state struct {
	items         map[string]entity.InventoryItem
	warehouses    map[string]entity.Warehouse
	levels        map[levelKey]entity.StockLevel
	movements     map[string]entity.StockMovement
	movementOrder []string
	alerts        map[string]entity.StockAlert
	alertOrder    []string
	parts         map[string]entity.PartsUsed
	invoiceItems  map[string]entity.InvoiceItem
	poItems       map[string]entity.PurchaseOrderItem
	poOrder       []string
	transfers     map[string]entity.StockTransfer
	transferItems []entity.StockTransferItem
	counts        map[string]entity.StockCount
	countItems    []entity.StockCountItem
}

func newState() *state {
	return &state{
		items:        map[string]entity.InventoryItem{},
		warehouses:   map[string]entity.Warehouse{},
		levels:       map[levelKey]entity.StockLevel{},
		movements:    map[string]entity.StockMovement{},
		alerts:       map[string]entity.StockAlert{},
		parts:        map[string]entity.PartsUsed{},
		invoiceItems: map[string]entity.InvoiceItem{},
		poItems:      map[string]entity.PurchaseOrderItem{},
		transfers:    map[string]entity.StockTransfer{},
		counts:       map[string]entity.StockCount{},
	}
}

// clone copia el estado completo; las entidades se guardan por valor.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.levels {
		c.levels[k] = v
	}
	for k, v := range s.movements {
		c.movements[k] = v
	}
	for k, v := range s.alerts {
		c.alerts[k] = v
	}
	for k, v := range s.parts {
		c.parts[k] = v
	}
	for k, v := range s.invoiceItems {
		c.invoiceItems[k] = v
	}
	for k, v := range s.poItems {
		c.poItems[k] = v
	}
	for k, v := range s.transfers {
		c.transfers[k] = v
	}
	for k, v := range s.counts {
		c.counts[k] = v
	}
	c.transferItems = append([]entity.StockTransferItem(nil), s.transferItems...)
	c.countItems = append([]entity.StockCountItem(nil), s.countItems...)
	c.movementOrder = append([]string(nil), s.movementOrder...)
	c.alertOrder = append([]string(nil), s.alertOrder...)
	c.poOrder = append([]string(nil), s.poOrder...)
	return c
}

// Store almacenamiento en memoria. Run serializa las transacciones (equivale a bloquear todas las filas)
// y restaura el snapshot tomado al inicio si fn devuelve error.
type Store struct {
	mu              sync.Mutex
	st              *state
	failMovementErr error
	failAlertErr    error
	commits         int
	rollbacks       int
}

// New crea un Store vacío.
func New() *Store {
	return &Store{st: newState()}
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot := s.st.clone()
	if err := fn(s.repos()); err != nil {
		s.st = snapshot
		s.rollbacks++
		return err
	}
	s.commits++
	return nil
}

func (s *Store) repos() inventory.TxRepos {
	return inventory.TxRepos{
		Items:          itemRepo{s},
		Warehouses:     warehouseRepo{s},
		Levels:         levelRepo{s},
		Movements:      movementRepo{s},
		Alerts:         alertRepo{s},
		PartsUsed:      partsRepo{s},
		InvoiceItems:   invoiceItemRepo{s},
		PurchaseOrders: purchaseOrderRepo{s},
		Transfers:      transferRepo{s},
		Counts:         countRepo{s},
	}
}

// InvoiceItems repositorio de líneas de factura fuera de transacción (equivale al del pool).
func (s *Store) InvoiceItems() repository.InvoiceItemRepository {
	return lockedInvoiceItems{s: s}
}

// Warehouses repositorio de bodegas fuera de transacción.
func (s *Store) Warehouses() repository.WarehouseRepository {
	return lockedWarehouses{s: s}
}

// FailMovementCreate hace fallar toda alta de movimiento con err (nil restablece).
func (s *Store) FailMovementCreate(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failMovementErr = err
}

// FailAlertWrites hace fallar toda escritura de alertas con err (nil restablece).
func (s *Store) FailAlertWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAlertErr = err
}

// Rollbacks cantidad de transacciones revertidas.
func (s *Store) Rollbacks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rollbacks
}

// ─── Datos de prueba ──────────────────────────────────────────────────────────

// AddItem registra un repuesto con precio de venta.
func (s *Store) AddItem(id string, sellingPrice decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	s.st.items[id] = entity.InventoryItem{ID: id, SKU: "SKU-" + id, Name: "Repuesto " + id,
		SellingPrice: sellingPrice, PurchasePrice: sellingPrice, CreatedAt: now, UpdatedAt: now}
}

// AddWarehouse registra una bodega.
func (s *Store) AddWarehouse(id string, isDefault bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	s.st.warehouses[id] = entity.Warehouse{ID: id, Name: "Bodega " + id, IsDefault: isDefault, CreatedAt: now, UpdatedAt: now}
}

// SetLevel fija un saldo inicial sin pasar por el ledger.
func (s *Store) SetLevel(itemID, warehouseID string, quantity, minLevel int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	s.st.levels[levelKey{itemID, warehouseID}] = entity.StockLevel{ItemID: itemID, WarehouseID: warehouseID,
		Quantity: quantity, MinLevel: minLevel, IsLow: quantity <= minLevel, CreatedAt: now, UpdatedAt: now}
}

// AddPurchaseOrderItem registra una línea de pedido de compra.
func (s *Store) AddPurchaseOrderItem(item entity.PurchaseOrderItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.poItems[item.ID] = item
	s.st.poOrder = append(s.st.poOrder, item.ID)
}

// AddTransfer registra un traslado pendiente con sus líneas.
func (s *Store) AddTransfer(t entity.StockTransfer, items ...entity.StockTransferItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.Status == "" {
		t.Status = entity.TransferStatusPending
	}
	s.st.transfers[t.ID] = t
	for _, it := range items {
		it.TransferID = t.ID
		s.st.transferItems = append(s.st.transferItems, it)
	}
}

// AddCount registra un conteo en curso con sus líneas.
func (s *Store) AddCount(c entity.StockCount, items ...entity.StockCountItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.Status == "" {
		c.Status = entity.CountStatusInProgress
	}
	s.st.counts[c.ID] = c
	for _, it := range items {
		it.CountID = c.ID
		s.st.countItems = append(s.st.countItems, it)
	}
}

// ─── Inspección ──────────────────────────────────────────────────────────────

// Level saldo actual (incluye retirados).
func (s *Store) Level(itemID, warehouseID string) (entity.StockLevel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.st.levels[levelKey{itemID, warehouseID}]
	return l, ok
}

// Alerts todas las alertas del par, activas y resueltas, en orden de creación.
func (s *Store) Alerts(itemID, warehouseID string) []entity.StockAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.StockAlert
	for _, id := range s.st.alertOrder {
		a := s.st.alerts[id]
		if a.ItemID == itemID && a.WarehouseID == warehouseID {
			out = append(out, a)
		}
	}
	return out
}

// ActiveAlerts alertas activas del par.
func (s *Store) ActiveAlerts(itemID, warehouseID string) []entity.StockAlert {
	var out []entity.StockAlert
	for _, a := range s.Alerts(itemID, warehouseID) {
		if a.Status == entity.AlertStatusActive {
			out = append(out, a)
		}
	}
	return out
}

// Movement movimiento por ID.
func (s *Store) Movement(id string) (entity.StockMovement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.st.movements[id]
	return m, ok
}

// Movements todos los movimientos en orden de alta.
func (s *Store) Movements() []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.StockMovement, 0, len(s.st.movementOrder))
	for _, id := range s.st.movementOrder {
		out = append(out, s.st.movements[id])
	}
	return out
}

// ActiveMovementsByCause movimientos activos con el CauseRef dado.
func (s *Store) ActiveMovementsByCause(causeRef string) []entity.StockMovement {
	var out []entity.StockMovement
	for _, m := range s.Movements() {
		if m.CauseRef == causeRef && m.IsActive() {
			out = append(out, m)
		}
	}
	return out
}

// PartsUsedRecord consumo por ID (incluye eliminados).
func (s *Store) PartsUsedRecord(id string) (entity.PartsUsed, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.st.parts[id]
	return p, ok
}

// InvoiceItem línea de factura por ID (incluye eliminadas).
func (s *Store) InvoiceItem(id string) (entity.InvoiceItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.st.invoiceItems[id]
	return i, ok
}

// PurchaseOrderItem línea de pedido por ID.
func (s *Store) PurchaseOrderItem(id string) (entity.PurchaseOrderItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.st.poItems[id]
	return i, ok
}

// Transfer traslado por ID (incluye eliminados).
func (s *Store) Transfer(id string) (entity.StockTransfer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.st.transfers[id]
	return t, ok
}

// Count conteo por ID.
func (s *Store) Count(id string) (entity.StockCount, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.st.counts[id]
	return c, ok
}

// ─── Repositorios (se usan con s.mu tomado por Run) ───────────────────────────

type itemRepo struct{ s *Store }

func (r itemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	it, ok := r.s.st.items[id]
	if !ok || it.DeletedAt != nil {
		return nil, nil
	}
	return &it, nil
}

type warehouseRepo struct{ s *Store }

func (r warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	if _, ok := r.s.st.warehouses[w.ID]; ok {
		return domain.ErrConflict
	}
	r.s.st.warehouses[w.ID] = *w
	return nil
}

func (r warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	w, ok := r.s.st.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r warehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	all := make([]*entity.Warehouse, 0, len(r.s.st.warehouses))
	for _, w := range r.s.st.warehouses {
		w := w
		all = append(all, &w)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

func (r warehouseRepo) GetDefault(_ context.Context) (*entity.Warehouse, error) {
	var found *entity.Warehouse
	for _, w := range r.s.st.warehouses {
		w := w
		if w.IsDefault && (found == nil || w.ID < found.ID) {
			found = &w
		}
	}
	return found, nil
}

type levelRepo struct{ s *Store }

func (r levelRepo) Get(_ context.Context, itemID, warehouseID string) (*entity.StockLevel, error) {
	l, ok := r.s.st.levels[levelKey{itemID, warehouseID}]
	if !ok || l.DeletedAt != nil {
		return nil, nil
	}
	return &l, nil
}

func (r levelRepo) GetForUpdate(ctx context.Context, itemID, warehouseID string) (*entity.StockLevel, error) {
	return r.Get(ctx, itemID, warehouseID)
}

func (r levelRepo) Adjust(_ context.Context, itemID, warehouseID string, delta, minLevelIfCreating int) (*entity.StockLevel, error) {
	key := levelKey{itemID, warehouseID}
	now := time.Now().UTC()
	l, ok := r.s.st.levels[key]
	if !ok {
		l = entity.StockLevel{ItemID: itemID, WarehouseID: warehouseID, MinLevel: minLevelIfCreating, CreatedAt: now}
	}
	if l.Quantity+delta < 0 {
		return nil, &domain.InsufficientStockError{ItemID: itemID, WarehouseID: warehouseID, Requested: -delta, Available: l.Quantity}
	}
	l.Quantity += delta
	l.IsLow = l.Quantity <= l.MinLevel
	l.DeletedAt = nil
	l.UpdatedAt = now
	r.s.st.levels[key] = l
	return &l, nil
}

func (r levelRepo) SetMinimum(_ context.Context, itemID, warehouseID string, minLevel int) (*entity.StockLevel, error) {
	key := levelKey{itemID, warehouseID}
	now := time.Now().UTC()
	l, ok := r.s.st.levels[key]
	if !ok {
		l = entity.StockLevel{ItemID: itemID, WarehouseID: warehouseID, CreatedAt: now}
	}
	l.MinLevel = minLevel
	l.IsLow = l.Quantity <= minLevel
	l.DeletedAt = nil
	l.UpdatedAt = now
	r.s.st.levels[key] = l
	return &l, nil
}

func (r levelRepo) ListByItem(_ context.Context, itemID string) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	for _, l := range r.s.st.levels {
		l := l
		if l.ItemID == itemID && l.DeletedAt == nil {
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].WarehouseID < out[j].WarehouseID
	})
	return out, nil
}

func (r levelRepo) SoftDelete(_ context.Context, itemID, warehouseID string) error {
	key := levelKey{itemID, warehouseID}
	l, ok := r.s.st.levels[key]
	if !ok || l.DeletedAt != nil {
		return domain.ErrNotFound
	}
	if l.Quantity != 0 {
		return domain.ErrConflict
	}
	now := time.Now().UTC()
	l.DeletedAt = &now
	r.s.st.levels[key] = l
	return nil
}

type movementRepo struct{ s *Store }

func (r movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if r.s.failMovementErr != nil {
		return r.s.failMovementErr
	}
	if m.CauseRef != "" {
		for _, other := range r.s.st.movements {
			if other.CauseRef == m.CauseRef && other.IsActive() {
				return domain.ErrDuplicateCause
			}
		}
	}
	r.s.st.movements[m.ID] = *m
	r.s.st.movementOrder = append(r.s.st.movementOrder, m.ID)
	return nil
}

func (r movementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	m, ok := r.s.st.movements[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r movementRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.GetByID(ctx, id)
}

func (r movementRepo) FindActiveByCause(_ context.Context, causeRef string) (*entity.StockMovement, error) {
	for _, id := range r.s.st.movementOrder {
		m := r.s.st.movements[id]
		if m.CauseRef == causeRef && m.IsActive() {
			return &m, nil
		}
	}
	return nil, nil
}

func (r movementRepo) MarkSuperseded(_ context.Context, id string, at time.Time) error {
	m, ok := r.s.st.movements[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !m.IsActive() {
		return domain.ErrAlreadyReversed
	}
	m.Status = entity.MovementStatusSuperseded
	m.SupersededAt = &at
	r.s.st.movements[id] = m
	return nil
}

func (r movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(r.s.st.movementOrder) - 1; i >= 0; i-- {
		m := r.s.st.movements[r.s.st.movementOrder[i]]
		if f.ItemID != "" && m.ItemID != f.ItemID {
			continue
		}
		if f.WarehouseID != "" && m.FromWarehouseID != f.WarehouseID && m.ToWarehouseID != f.WarehouseID {
			continue
		}
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		if f.CauseRef != "" && m.CauseRef != f.CauseRef {
			continue
		}
		out = append(out, &m)
	}
	return page(out, f.Limit, f.Offset), nil
}

type alertRepo struct{ s *Store }

func (r alertRepo) GetActive(_ context.Context, itemID, warehouseID string) (*entity.StockAlert, error) {
	for _, id := range r.s.st.alertOrder {
		a := r.s.st.alerts[id]
		if a.ItemID == itemID && a.WarehouseID == warehouseID && a.Status == entity.AlertStatusActive {
			return &a, nil
		}
	}
	return nil, nil
}

func (r alertRepo) Create(ctx context.Context, a *entity.StockAlert) error {
	if r.s.failAlertErr != nil {
		return r.s.failAlertErr
	}
	if existing, _ := r.GetActive(ctx, a.ItemID, a.WarehouseID); existing != nil {
		return domain.ErrConflict
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	r.s.st.alerts[a.ID] = *a
	r.s.st.alertOrder = append(r.s.st.alertOrder, a.ID)
	return nil
}

func (r alertRepo) Update(_ context.Context, a *entity.StockAlert) error {
	if r.s.failAlertErr != nil {
		return r.s.failAlertErr
	}
	if _, ok := r.s.st.alerts[a.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.alerts[a.ID] = *a
	return nil
}

func (r alertRepo) ListActive(_ context.Context, f repository.AlertFilter) ([]*entity.StockAlert, error) {
	var out []*entity.StockAlert
	for i := len(r.s.st.alertOrder) - 1; i >= 0; i-- {
		a := r.s.st.alerts[r.s.st.alertOrder[i]]
		if a.Status != entity.AlertStatusActive {
			continue
		}
		if f.ItemID != "" && a.ItemID != f.ItemID {
			continue
		}
		if f.WarehouseID != "" && a.WarehouseID != f.WarehouseID {
			continue
		}
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		out = append(out, &a)
	}
	return page(out, f.Limit, f.Offset), nil
}

type partsRepo struct{ s *Store }

func (r partsRepo) Create(_ context.Context, p *entity.PartsUsed) error {
	if _, ok := r.s.st.parts[p.ID]; ok {
		return domain.ErrConflict
	}
	r.s.st.parts[p.ID] = *p
	return nil
}

func (r partsRepo) GetByID(_ context.Context, id string) (*entity.PartsUsed, error) {
	p, ok := r.s.st.parts[id]
	if !ok || p.DeletedAt != nil {
		return nil, nil
	}
	return &p, nil
}

func (r partsRepo) Update(_ context.Context, p *entity.PartsUsed) error {
	if _, ok := r.s.st.parts[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.parts[p.ID] = *p
	return nil
}

func (r partsRepo) SoftDelete(_ context.Context, id string) error {
	p, ok := r.s.st.parts[id]
	if !ok || p.DeletedAt != nil {
		return domain.ErrNotFound
	}
	now := time.Now().UTC()
	p.DeletedAt = &now
	r.s.st.parts[id] = p
	return nil
}

func (r partsRepo) LinkInvoiceItem(_ context.Context, id, invoiceItemID string) error {
	p, ok := r.s.st.parts[id]
	if !ok || p.DeletedAt != nil {
		return domain.ErrNotFound
	}
	p.InvoiceItemID = invoiceItemID
	r.s.st.parts[id] = p
	return nil
}

type invoiceItemRepo struct{ s *Store }

func (r invoiceItemRepo) Create(_ context.Context, it *entity.InvoiceItem) error {
	if _, ok := r.s.st.invoiceItems[it.ID]; ok {
		return domain.ErrConflict
	}
	r.s.st.invoiceItems[it.ID] = *it
	return nil
}

func (r invoiceItemRepo) GetByID(_ context.Context, id string) (*entity.InvoiceItem, error) {
	it, ok := r.s.st.invoiceItems[id]
	if !ok || it.DeletedAt != nil {
		return nil, nil
	}
	return &it, nil
}

func (r invoiceItemRepo) Update(_ context.Context, it *entity.InvoiceItem) error {
	if _, ok := r.s.st.invoiceItems[it.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.invoiceItems[it.ID] = *it
	return nil
}

func (r invoiceItemRepo) SoftDelete(_ context.Context, id string) error {
	it, ok := r.s.st.invoiceItems[id]
	if !ok || it.DeletedAt != nil {
		return domain.ErrNotFound
	}
	now := time.Now().UTC()
	it.DeletedAt = &now
	r.s.st.invoiceItems[id] = it
	return nil
}

func (r invoiceItemRepo) SoftDeleteByPartsUsed(_ context.Context, partsUsedID string) (int, error) {
	n := 0
	now := time.Now().UTC()
	for id, it := range r.s.st.invoiceItems {
		if it.PartsUsedID == partsUsedID && it.DeletedAt == nil {
			it.DeletedAt = &now
			r.s.st.invoiceItems[id] = it
			n++
		}
	}
	return n, nil
}

// lockedInvoiceItems toma el lock en cada llamada; no usar dentro de Run.
type lockedInvoiceItems struct{ s *Store }

func (r lockedInvoiceItems) Create(ctx context.Context, it *entity.InvoiceItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return invoiceItemRepo{r.s}.Create(ctx, it)
}

func (r lockedInvoiceItems) GetByID(ctx context.Context, id string) (*entity.InvoiceItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return invoiceItemRepo{r.s}.GetByID(ctx, id)
}

func (r lockedInvoiceItems) Update(ctx context.Context, it *entity.InvoiceItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return invoiceItemRepo{r.s}.Update(ctx, it)
}

func (r lockedInvoiceItems) SoftDelete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return invoiceItemRepo{r.s}.SoftDelete(ctx, id)
}

func (r lockedInvoiceItems) SoftDeleteByPartsUsed(ctx context.Context, partsUsedID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return invoiceItemRepo{r.s}.SoftDeleteByPartsUsed(ctx, partsUsedID)
}

type lockedWarehouses struct{ s *Store }

func (r lockedWarehouses) Create(ctx context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return warehouseRepo{r.s}.Create(ctx, w)
}

func (r lockedWarehouses) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return warehouseRepo{r.s}.GetByID(ctx, id)
}

func (r lockedWarehouses) List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return warehouseRepo{r.s}.List(ctx, limit, offset)
}

func (r lockedWarehouses) GetDefault(ctx context.Context) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return warehouseRepo{r.s}.GetDefault(ctx)
}

type purchaseOrderRepo struct{ s *Store }

func (r purchaseOrderRepo) ListItems(_ context.Context, purchaseOrderID string) ([]*entity.PurchaseOrderItem, error) {
	var out []*entity.PurchaseOrderItem
	for _, id := range r.s.st.poOrder {
		it := r.s.st.poItems[id]
		if it.PurchaseOrderID == purchaseOrderID {
			out = append(out, &it)
		}
	}
	return out, nil
}

func (r purchaseOrderRepo) SetReceived(_ context.Context, itemID string, receivedQuantity int) error {
	it, ok := r.s.st.poItems[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	it.ReceivedQuantity = receivedQuantity
	r.s.st.poItems[itemID] = it
	return nil
}

type transferRepo struct{ s *Store }

func (r transferRepo) GetForUpdate(_ context.Context, id string) (*entity.StockTransfer, error) {
	t, ok := r.s.st.transfers[id]
	if !ok || t.DeletedAt != nil {
		return nil, nil
	}
	return &t, nil
}

func (r transferRepo) ListItems(_ context.Context, transferID string) ([]*entity.StockTransferItem, error) {
	var out []*entity.StockTransferItem
	for _, it := range r.s.st.transferItems {
		it := it
		if it.TransferID == transferID {
			out = append(out, &it)
		}
	}
	return out, nil
}

func (r transferRepo) MarkCompleted(_ context.Context, id string, at time.Time) error {
	t, ok := r.s.st.transfers[id]
	if !ok || t.DeletedAt != nil {
		return domain.ErrNotFound
	}
	t.Status = entity.TransferStatusCompleted
	t.CompletedAt = &at
	t.UpdatedAt = at
	r.s.st.transfers[id] = t
	return nil
}

func (r transferRepo) SoftDelete(_ context.Context, id string) error {
	t, ok := r.s.st.transfers[id]
	if !ok || t.DeletedAt != nil {
		return domain.ErrNotFound
	}
	now := time.Now().UTC()
	t.DeletedAt = &now
	r.s.st.transfers[id] = t
	return nil
}

type countRepo struct{ s *Store }

func (r countRepo) GetForUpdate(_ context.Context, id string) (*entity.StockCount, error) {
	c, ok := r.s.st.counts[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r countRepo) ListItems(_ context.Context, countID string) ([]*entity.StockCountItem, error) {
	var out []*entity.StockCountItem
	for _, it := range r.s.st.countItems {
		it := it
		if it.CountID == countID {
			out = append(out, &it)
		}
	}
	return out, nil
}

func (r countRepo) MarkCompleted(_ context.Context, id string, at time.Time) error {
	c, ok := r.s.st.counts[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Status = entity.CountStatusCompleted
	c.CompletedAt = &at
	c.UpdatedAt = at
	r.s.st.counts[id] = c
	return nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
