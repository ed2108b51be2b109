//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - register cliente + producto, create factura, total computed by the store
//   - unresolved product name rejects the factura without writing anything
//   - listing with client-name substring filter, most recent first
//   - redis-cached price check endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/config"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/infra"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/router"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("facturacion_test"),
		tcPostgres.WithUsername("easyfact"),
		tcPostgres.WithPassword("easyfact"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:           8000,
		Env:            "test",
		DatabaseURL:    pgURL,
		RedisURL:       rdURL,
		WorkerPoolSize: 1,
		EmpresaNombre:  "EasyFact One",
		PDFStoragePath: t.TempDir(),
	}

	// NewDatabase applies the idempotent schema on connect.
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	srv := httptest.NewServer(router.New(cfg, db, rdb))
	t.Cleanup(srv.Close)

	return &testEnv{server: srv}
}

func crearCliente(t *testing.T, env *testEnv, nombre string) {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/clientes",
		jsonBody(t, map[string]any{"nombre": nombre, "documento": "1098765432"}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func crearProducto(t *testing.T, env *testEnv, nombre, precio string, stock int) {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/productos",
		jsonBody(t, map[string]any{"nombre": nombre, "precio": precio, "stock": stock}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_CicloFacturacionCompleto(t *testing.T) {
	env := setupTestEnv(t)

	crearCliente(t, env, "Ana Gómez")
	crearProducto(t, env, "Laptop", "1200.00", 10)

	facturaResp := do(t, env.server, "POST", "/v1/facturas",
		jsonBody(t, map[string]any{
			"cliente": "Ana Gómez",
			"items":   []map[string]any{{"producto": "Laptop", "cantidad": 2}},
		}))
	require.Equal(t, http.StatusCreated, facturaResp.StatusCode)

	var factura struct {
		ID      uint            `json:"id_factura"`
		Cliente string          `json:"cliente"`
		Total   decimal.Decimal `json:"total"`
		Items   []struct {
			Producto string          `json:"producto"`
			Cantidad int             `json:"cantidad"`
			Subtotal decimal.Decimal `json:"subtotal"`
		} `json:"items"`
	}
	decodeJSON(t, facturaResp, &factura)

	assert.NotZero(t, factura.ID)
	assert.Equal(t, "Ana Gómez", factura.Cliente)
	// 2 × 1200.00, subtotal generated and total summed in the database
	assert.True(t, factura.Total.Equal(decimal.RequireFromString("2400.00")),
		"total %s, expected 2400.00", factura.Total)
	require.Len(t, factura.Items, 1)
	assert.True(t, factura.Items[0].Subtotal.Equal(decimal.RequireFromString("2400.00")))

	listResp := do(t, env.server, "GET", "/v1/facturas", nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var lista []struct {
		ID      uint            `json:"id_factura"`
		Cliente string          `json:"cliente"`
		Total   decimal.Decimal `json:"total"`
	}
	decodeJSON(t, listResp, &lista)
	require.Len(t, lista, 1)
	assert.Equal(t, factura.ID, lista[0].ID)
	assert.Equal(t, "Ana Gómez", lista[0].Cliente)
}

func TestE2E_ProductoNoResueltoNoEscribe(t *testing.T) {
	env := setupTestEnv(t)

	crearCliente(t, env, "Ana Gómez")
	crearProducto(t, env, "Laptop", "1200.00", 10)

	resp := do(t, env.server, "POST", "/v1/facturas",
		jsonBody(t, map[string]any{
			"cliente": "Ana Gómez",
			"items":   []map[string]any{{"producto": "Impresora", "cantidad": 1}},
		}))
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var apiErr struct {
		Detail string `json:"detail"`
	}
	decodeJSON(t, resp, &apiErr)
	assert.Contains(t, apiErr.Detail, "Impresora")

	// The store must hold zero invoices: nothing was written.
	listResp := do(t, env.server, "GET", "/v1/facturas", nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var lista []json.RawMessage
	decodeJSON(t, listResp, &lista)
	assert.Empty(t, lista)
}

func TestE2E_ListadoFiltradoPorCliente(t *testing.T) {
	env := setupTestEnv(t)

	crearCliente(t, env, "Laura Gomez")
	crearCliente(t, env, "Carlos Ruiz")
	crearProducto(t, env, "Mouse", "35.50", 50)

	for _, cliente := range []string{"Laura Gomez", "Carlos Ruiz"} {
		resp := do(t, env.server, "POST", "/v1/facturas",
			jsonBody(t, map[string]any{
				"cliente": cliente,
				"items":   []map[string]any{{"producto": "Mouse", "cantidad": 1}},
			}))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	// Case-insensitive substring on the client name, via ILIKE.
	resp := do(t, env.server, "GET", "/v1/facturas?cliente=GOM", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lista []struct {
		Cliente string `json:"cliente"`
	}
	decodeJSON(t, resp, &lista)
	require.Len(t, lista, 1)
	assert.Equal(t, "Laura Gomez", lista[0].Cliente)

	// No restriction: both rows, most recent first.
	resp = do(t, env.server, "GET", "/v1/facturas", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &lista)
	require.Len(t, lista, 2)
	assert.Equal(t, "Carlos Ruiz", lista[0].Cliente)
}

func TestE2E_ConsultaPrecio(t *testing.T) {
	env := setupTestEnv(t)

	crearProducto(t, env, "Teclado", "89.90", 25)

	// First hit: DB read, cached in redis afterwards.
	for i := 0; i < 2; i++ {
		resp := do(t, env.server, "GET", "/v1/precio/Teclado", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var precio struct {
			Nombre string          `json:"nombre"`
			Precio decimal.Decimal `json:"precio"`
		}
		decodeJSON(t, resp, &precio)
		assert.Equal(t, "Teclado", precio.Nombre)
		assert.True(t, precio.Precio.Equal(decimal.RequireFromString("89.90")))
	}

	resp := do(t, env.server, "GET", "/v1/precio/Inexistente", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestE2E_Health(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		OK    bool   `json:"ok"`
		DB    string `json:"db"`
		Redis string `json:"redis"`
	}
	decodeJSON(t, resp, &body)
	assert.True(t, body.OK)
	assert.Equal(t, "connected", body.DB)
	assert.Equal(t, "connected", body.Redis)
}
