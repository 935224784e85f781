package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ventas-service/internal/application/dto"
	"github.com/tu-usuario/ventas-service/internal/application/sales"
	"github.com/tu-usuario/ventas-service/internal/domain"
	"github.com/tu-usuario/ventas-service/internal/domain/entity"
	httpiface "github.com/tu-usuario/ventas-service/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para armar el caso de uso detrás de los handlers
// ──────────────────────────────────────────────────────────────────────────────

type memSaleRepo struct {
	mu    sync.Mutex
	sales map[string]*entity.Sale
	next  int
}

func (r *memSaleRepo) Create(s *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		r.next++
		s.ID = "s" + strconv.Itoa(r.next)
	}
	c := *s
	r.sales[s.ID] = &c
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (r *memSaleRepo) Update(s *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *s
	r.sales[s.ID] = &c
	return nil
}

func (r *memSaleRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sales, id)
	return nil
}

func (r *memSaleRepo) List() ([]*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.sales {
		c := *s
		out = append(out, &c)
	}
	return out, nil
}

func (r *memSaleRepo) ListByRUC(ruc string) ([]*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.sales {
		if s.RUC == ruc {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memSaleRepo) ListByName(name string) ([]*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.sales {
		if s.Name == name {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memSaleRepo) ListBySaleDateBetween(from, to time.Time) ([]*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.sales {
		if !s.SaleDate.Before(from) && !s.SaleDate.After(to) {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

type memDetailRepo struct {
	mu      sync.Mutex
	details []*entity.SaleDetail
	next    int
}

func (r *memDetailRepo) Create(d *entity.SaleDetail) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == "" {
		r.next++
		d.ID = "d" + strconv.Itoa(r.next)
	}
	c := *d
	r.details = append(r.details, &c)
	return nil
}

func (r *memDetailRepo) ListBySaleID(saleID string) ([]*entity.SaleDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.SaleDetail
	for _, d := range r.details {
		if d.SaleID == saleID {
			c := *d
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memDetailRepo) DeleteBySaleID(saleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*entity.SaleDetail
	for _, d := range r.details {
		if d.SaleID != saleID {
			kept = append(kept, d)
		}
	}
	r.details = kept
	return nil
}

type memGateway struct {
	mu       sync.Mutex
	products map[int64]*entity.Product
}

func (g *memGateway) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	c := *p
	return &c, nil
}

func (g *memGateway) ReduceStock(_ context.Context, _ int64, _ int) error { return nil }

func newTestApp() (*fiber.App, *memSaleRepo, *memDetailRepo, *memGateway) {
	saleRepo := &memSaleRepo{sales: make(map[string]*entity.Sale)}
	detailRepo := &memDetailRepo{}
	gateway := &memGateway{products: map[int64]*entity.Product{
		7: {ID: 7, PackageWeight: decimal.RequireFromString("2.5"), Stock: 50},
	}}
	app := fiber.New()
	httpiface.Router(app, httpiface.RouterDeps{
		SaleUC: sales.NewUseCase(saleRepo, detailRepo, gateway),
	})
	return app, saleRepo, detailRepo, gateway
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeSale(t *testing.T, resp *http.Response) dto.SaleResponse {
	t.Helper()
	var out dto.SaleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func saleBody() dto.SaleRequest {
	return dto.SaleRequest{
		SaleDate: "2024-01-10",
		Name:     "A",
		RUC:      "123",
		Address:  "Av. Principal 100",
		Details: []dto.SaleDetailRequest{
			{ProductID: 7, Packages: 3, PricePerKg: decimal.RequireFromString("5.00")},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /sales
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_Devuelve201ConTotalesCalculados(t *testing.T) {
	app, _, _, _ := newTestApp()

	resp := doJSON(t, app, fiber.MethodPost, "/sales/", saleBody())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	out := decodeSale(t, resp)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "2024-01-10", out.SaleDate)
	require.Len(t, out.Details, 1)
	assert.True(t, out.Details[0].TotalWeight.Equal(decimal.RequireFromString("7.5")))
	assert.True(t, out.Details[0].TotalPrice.Equal(decimal.RequireFromString("37.50")))
}

func TestCreate_CuerpoInvalido_400(t *testing.T) {
	app, _, _, _ := newTestApp()

	req := httptest.NewRequest(fiber.MethodPost, "/sales/", bytes.NewReader([]byte("{no-json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Code)
}

func TestCreate_ValidacionFallida_400(t *testing.T) {
	app, _, _, _ := newTestApp()
	body := saleBody()
	body.Name = ""

	resp := doJSON(t, app, fiber.MethodPost, "/sales/", body)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
}

func TestCreate_ProductoInexistente_404(t *testing.T) {
	app, _, _, _ := newTestApp()
	body := saleBody()
	body.Details[0].ProductID = 99

	resp := doJSON(t, app, fiber.MethodPost, "/sales/", body)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "PRODUCT_NOT_FOUND", decodeError(t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /sales, GET /sales/:id
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_Devuelve200ConDetalles(t *testing.T) {
	app, _, _, _ := newTestApp()
	created := decodeSale(t, doJSON(t, app, fiber.MethodPost, "/sales/", saleBody()))

	resp := doJSON(t, app, fiber.MethodGet, "/sales/"+created.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decodeSale(t, resp)
	assert.Equal(t, created.ID, out.ID)
	require.Len(t, out.Details, 1)
}

func TestGetByID_Inexistente_404(t *testing.T) {
	app, _, _, _ := newTestApp()

	resp := doJSON(t, app, fiber.MethodGet, "/sales/no-existe", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}

func TestFindAll_Devuelve200(t *testing.T) {
	app, _, _, _ := newTestApp()
	doJSON(t, app, fiber.MethodPost, "/sales/", saleBody())

	resp := doJSON(t, app, fiber.MethodGet, "/sales/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out []dto.SaleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsquedas ligeras
// ──────────────────────────────────────────────────────────────────────────────

func TestFindByRUC_SoloCabeceras(t *testing.T) {
	app, _, _, _ := newTestApp()
	doJSON(t, app, fiber.MethodPost, "/sales/", saleBody())

	resp := doJSON(t, app, fiber.MethodGet, "/sales/doc/123", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out []dto.SaleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, "123", out[0].RUC)
	assert.Empty(t, out[0].Details, "la búsqueda por documento omite los detalles")
}

func TestFindByName_SoloCabeceras(t *testing.T) {
	app, _, _, _ := newTestApp()
	doJSON(t, app, fiber.MethodPost, "/sales/", saleBody())

	resp := doJSON(t, app, fiber.MethodGet, "/sales/name/A", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out []dto.SaleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].Name)
	assert.Empty(t, out[0].Details)
}

func TestFindByDateRange_ParametrosInvalidos_400(t *testing.T) {
	app, _, _, _ := newTestApp()

	resp := doJSON(t, app, fiber.MethodGet, "/sales/range?from=ayer&to=hoy", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
}

func TestFindByDateRange_Devuelve200(t *testing.T) {
	app, _, _, _ := newTestApp()
	doJSON(t, app, fiber.MethodPost, "/sales/", saleBody())

	resp := doJSON(t, app, fiber.MethodGet, "/sales/range?from=2024-01-01&to=2024-01-31", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out []dto.SaleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// PUT /sales/:id, DELETE /sales/:id
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_Inexistente_404(t *testing.T) {
	app, _, _, _ := newTestApp()

	resp := doJSON(t, app, fiber.MethodPut, "/sales/no-existe", saleBody())
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}

func TestUpdate_Devuelve200ConLineasReemplazadas(t *testing.T) {
	app, _, detailRepo, _ := newTestApp()
	created := decodeSale(t, doJSON(t, app, fiber.MethodPost, "/sales/", saleBody()))

	body := saleBody()
	body.Name = "A Actualizado"
	body.Details = []dto.SaleDetailRequest{{
		ProductID:   40,
		Weight:      decimal.RequireFromString("9.9"),
		Packages:    5,
		TotalWeight: decimal.RequireFromString("49.5"),
		PricePerKg:  decimal.RequireFromString("2.00"),
		TotalPrice:  decimal.RequireFromString("99.00"),
	}}
	resp := doJSON(t, app, fiber.MethodPut, "/sales/"+created.ID, body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decodeSale(t, resp)
	assert.Equal(t, "A Actualizado", out.Name)

	stored, _ := detailRepo.ListBySaleID(created.ID)
	require.Len(t, stored, 1)
	assert.Equal(t, int64(40), stored[0].ProductID)
}

func TestDelete_Devuelve204(t *testing.T) {
	app, _, _, _ := newTestApp()
	created := decodeSale(t, doJSON(t, app, fiber.MethodPost, "/sales/", saleBody()))

	resp := doJSON(t, app, fiber.MethodDelete, "/sales/"+created.ID, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/sales/"+created.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
