package depletion_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdepletion "github.com/jhoicas/Consumibles-api/internal/application/depletion"
	"github.com/jhoicas/Consumibles-api/internal/application/dto"
	"github.com/jhoicas/Consumibles-api/internal/domain"
	domdepletion "github.com/jhoicas/Consumibles-api/internal/domain/depletion"
	"github.com/jhoicas/Consumibles-api/internal/domain/entity"
	"github.com/jhoicas/Consumibles-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeStore emula la base con un mutex en lugar del SELECT FOR UPDATE: Run
// serializa las transacciones igual que el bloqueo de fila, toma un snapshot
// al entrar y lo restaura si fn falla (rollback).
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	events   map[string][]*entity.UsageEvent

	// failUpdateUsage fuerza un fallo de persistencia después de que el evento
	// ya fue agregado, para verificar el rollback.
	failUpdateUsage bool
}

func newFakeStore(products ...*entity.Product) *fakeStore {
	s := &fakeStore{
		products: make(map[string]*entity.Product),
		events:   make(map[string][]*entity.UsageEvent),
	}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

// Run serializa y da semántica transaccional al fn (snapshot + restore).
func (s *fakeStore) Run(ctx context.Context, fn func(
	eventRepo repository.UsageEventRepository,
	productRepo repository.ProductRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapProducts := make(map[string]*entity.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		snapProducts[id] = &cp
	}
	snapEvents := make(map[string][]*entity.UsageEvent, len(s.events))
	for id, evs := range s.events {
		snapEvents[id] = append([]*entity.UsageEvent(nil), evs...)
	}

	if err := fn(&fakeEventRepo{s: s}, &fakeProductRepo{s: s}); err != nil {
		s.products = snapProducts
		s.events = snapEvents
		return err
	}
	return nil
}

func (s *fakeStore) product(id string) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func (s *fakeStore) eventCount(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events[productID])
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetForUpdate: el bloqueo real lo emula el mutex de Run.
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateUsage(p *entity.Product) error {
	if r.s.failUpdateUsage {
		return errors.New("fallo de persistencia inyectado")
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.StoreID == storeID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListLowStock(storeID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.StoreID == storeID && p.Quantity <= p.MinStockAlert {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

type fakeEventRepo struct{ s *fakeStore }

func (r *fakeEventRepo) Create(ev *entity.UsageEvent) error {
	cp := *ev
	r.s.events[ev.ProductID] = append(r.s.events[ev.ProductID], &cp)
	return nil
}

func (r *fakeEventRepo) ListByProduct(productID string, limit, offset int) ([]*entity.UsageEvent, error) {
	evs := append([]*entity.UsageEvent(nil), r.s.events[productID]...)
	sort.SliceStable(evs, func(i, j int) bool { return evs[i].Date.After(evs[j].Date) })
	if offset >= len(evs) {
		return nil, nil
	}
	evs = evs[offset:]
	if limit > 0 && limit < len(evs) {
		evs = evs[:limit]
	}
	return evs, nil
}

func (r *fakeEventRepo) CountByProduct(productID string) (int, error) {
	return len(r.s.events[productID]), nil
}

func (r *fakeEventRepo) DeleteByProduct(productID string) error {
	delete(r.s.events, productID)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testStoreID = "store-1"
	testOtherID = "store-2"
)

var t0 = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func testProduct(quantity int) *entity.Product {
	return &entity.Product{
		ID:            "prod-1",
		StoreID:       testStoreID,
		Brand:         "OPI",
		Name:          "Esmalte rojo clásico",
		Type:          entity.ProductTypePolish,
		Quantity:      quantity,
		UsageCount:    0,
		MinStockAlert: 5,
		CreatedAt:     t0,
		UpdatedAt:     t0,
	}
}

func buildUseCase(store *fakeStore, at time.Time) *appdepletion.RecordUsageUseCase {
	return appdepletion.NewRecordUsageUseCase(store, domdepletion.StrategyCountOverAge, 500).
		WithClock(func() time.Time { return at })
}

func record(t *testing.T, uc *appdepletion.RecordUsageUseCase, productID string) (*dto.RecordUsageResponse, error) {
	t.Helper()
	return uc.RecordUsage(context.Background(), appdepletion.RecordUsageInput{
		StoreID:   testStoreID,
		ProductID: productID,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Camino feliz
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordUsage_DescuentaYRegistraEvento(t *testing.T) {
	store := newFakeStore(testProduct(10))
	now := t0.AddDate(0, 0, 5)
	uc := buildUseCase(store, now)

	out, err := uc.RecordUsage(context.Background(), appdepletion.RecordUsageInput{
		StoreID:   testStoreID,
		ProductID: "prod-1",
		Note:      "manicure cliente frecuente",
	})
	require.NoError(t, err)

	assert.Equal(t, 9, out.Product.Quantity)
	assert.Equal(t, 1, out.Product.UsageCount)
	require.NotNil(t, out.Product.LastUsed)
	assert.True(t, out.Product.LastUsed.Equal(now))

	assert.NotEmpty(t, out.Event.ID)
	assert.Equal(t, "prod-1", out.Event.ProductID)
	assert.True(t, out.Event.Date.Equal(now))
	require.NotNil(t, out.Event.Note)
	assert.Equal(t, "manicure cliente frecuente", *out.Event.Note)

	// Menos de un mes de antigüedad: denominador 1 mes → 1 uso/mes.
	assert.InDelta(t, 1.0, out.Product.AverageUsesPerMonth, 1e-9)
	// 9 / (1/30) = 270 días
	assert.Equal(t, 270, out.Product.EstimatedDaysLeft)

	// Estado persistido consistente con la respuesta.
	persisted := store.product("prod-1")
	assert.Equal(t, 9, persisted.Quantity)
	assert.Equal(t, 1, persisted.UsageCount)
	assert.Equal(t, 1, store.eventCount("prod-1"))
}

func TestRecordUsage_SinNota_NoPersisteNotaVacia(t *testing.T) {
	store := newFakeStore(testProduct(3))
	uc := buildUseCase(store, t0.AddDate(0, 0, 1))

	out, err := record(t, uc, "prod-1")
	require.NoError(t, err)
	assert.Nil(t, out.Event.Note)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores terminales
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordUsage_ProductoInexistente_NotFound(t *testing.T) {
	store := newFakeStore()
	uc := buildUseCase(store, t0)

	_, err := record(t, uc, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un producto de otra tienda responde igual que uno inexistente: el tenant no
// puede distinguir "ajeno" de "ausente".
func TestRecordUsage_ProductoDeOtraTienda_NotFound(t *testing.T) {
	p := testProduct(10)
	p.StoreID = testOtherID
	store := newFakeStore(p)
	uc := buildUseCase(store, t0)

	_, err := record(t, uc, "prod-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 10, store.product("prod-1").Quantity, "no debe haber escrituras")
	assert.Zero(t, store.eventCount("prod-1"))
}

func TestRecordUsage_SinStock_OutOfStock(t *testing.T) {
	store := newFakeStore(testProduct(0))
	uc := buildUseCase(store, t0)

	_, err := record(t, uc, "prod-1")
	assert.ErrorIs(t, err, domain.ErrOutOfStock)

	persisted := store.product("prod-1")
	assert.Equal(t, 0, persisted.Quantity, "quantity nunca baja de 0")
	assert.Zero(t, persisted.UsageCount)
	assert.Zero(t, store.eventCount("prod-1"), "rechazo sin escrituras: ningún evento")
}

func TestRecordUsage_InputVacio_InvalidInput(t *testing.T) {
	store := newFakeStore(testProduct(1))
	uc := buildUseCase(store, t0)

	_, err := uc.RecordUsage(context.Background(), appdepletion.RecordUsageInput{StoreID: testStoreID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RecordUsage(context.Background(), appdepletion.RecordUsageInput{ProductID: "prod-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades del motor
// ──────────────────────────────────────────────────────────────────────────────

// Agotamiento exacto: con M unidades, M usos tienen éxito y el M+1 falla con
// OUT_OF_STOCK dejando quantity en 0.
func TestRecordUsage_AgotamientoExacto(t *testing.T) {
	const m = 4
	store := newFakeStore(testProduct(m))
	uc := buildUseCase(store, t0.AddDate(0, 0, 10))

	for i := 0; i < m; i++ {
		_, err := record(t, uc, "prod-1")
		require.NoError(t, err, "uso %d debe tener éxito", i+1)
	}
	_, err := record(t, uc, "prod-1")
	assert.ErrorIs(t, err, domain.ErrOutOfStock)

	persisted := store.product("prod-1")
	assert.Equal(t, 0, persisted.Quantity)
	assert.Equal(t, m, persisted.UsageCount)
	assert.Equal(t, m, store.eventCount("prod-1"))
}

// Consistencia de contadores: tras N usos exitosos, UsageCount == N == eventos
// y Quantity bajó exactamente N.
func TestRecordUsage_ContadoresConsistentes(t *testing.T) {
	const n = 7
	store := newFakeStore(testProduct(20))
	uc := buildUseCase(store, t0.AddDate(0, 1, 0))

	for i := 0; i < n; i++ {
		_, err := record(t, uc, "prod-1")
		require.NoError(t, err)
	}

	persisted := store.product("prod-1")
	assert.Equal(t, 20-n, persisted.Quantity)
	assert.Equal(t, n, persisted.UsageCount)
	assert.Equal(t, n, store.eventCount("prod-1"))
}

// Atomicidad: si la persistencia falla después de agregar el evento, la
// transacción revierte completa. Ni evento huérfano ni decremento fantasma.
func TestRecordUsage_FalloDePersistencia_RollbackCompleto(t *testing.T) {
	store := newFakeStore(testProduct(10))
	store.failUpdateUsage = true
	uc := buildUseCase(store, t0.AddDate(0, 0, 3))

	_, err := record(t, uc, "prod-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrOutOfStock)

	persisted := store.product("prod-1")
	assert.Equal(t, 10, persisted.Quantity, "el decremento debe revertirse")
	assert.Zero(t, persisted.UsageCount)
	assert.Zero(t, store.eventCount("prod-1"), "el evento debe revertirse")
}

// Concurrencia: K goroutines compiten por M unidades. Exactamente M ganan,
// el resto recibe OUT_OF_STOCK y quantity termina en 0, nunca negativo.
func TestRecordUsage_ConcurrenciaSerializada(t *testing.T) {
	const (
		k = 20
		m = 5
	)
	store := newFakeStore(testProduct(m))
	uc := buildUseCase(store, t0.AddDate(0, 0, 2))

	var wg sync.WaitGroup
	errs := make(chan error, k)
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := record(t, uc, "prod-1")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, outOfStock int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrOutOfStock):
			outOfStock++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, m, ok, "exactamente M usos deben tener éxito")
	assert.Equal(t, k-m, outOfStock)

	persisted := store.product("prod-1")
	assert.Equal(t, 0, persisted.Quantity)
	assert.Equal(t, m, persisted.UsageCount)
	assert.Equal(t, m, store.eventCount("prod-1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario punta a punta
// ──────────────────────────────────────────────────────────────────────────────

// Producto creado en t0 con 10 unidades y umbral 5: tras 5 usos en 5 días la
// quinta respuesta ya reporta stock bajo (quantity == umbral).
func TestRecordUsage_EscenarioCincoDias(t *testing.T) {
	store := newFakeStore(testProduct(10))

	var last *dto.RecordUsageResponse
	for day := 1; day <= 5; day++ {
		uc := buildUseCase(store, t0.AddDate(0, 0, day))
		out, err := record(t, uc, "prod-1")
		require.NoError(t, err)
		last = out
	}

	assert.Equal(t, 5, last.Product.Quantity)
	assert.Equal(t, 5, last.Product.UsageCount)
	// 5 usos, menos de un mes de antigüedad → 5 usos/mes.
	assert.InDelta(t, 5.0, last.Product.AverageUsesPerMonth, 1e-9)
	// 5 / (5/30) = 30 días
	assert.Equal(t, 30, last.Product.EstimatedDaysLeft)

	assert.True(t, last.AlertStatus.IsLowStock, "quantity == umbral dispara la alerta")
	assert.Equal(t, 5, last.AlertStatus.LowStockThreshold)
	assert.Equal(t, 30, last.AlertStatus.EstimatedDaysLeft)
}
