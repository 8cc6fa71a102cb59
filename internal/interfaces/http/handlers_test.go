package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/jhoicas/warehouse-feeds/docs"
	"github.com/jhoicas/warehouse-feeds/internal/application/dto"
	"github.com/jhoicas/warehouse-feeds/internal/application/importer"
	"github.com/jhoicas/warehouse-feeds/internal/domain"
	"github.com/jhoicas/warehouse-feeds/internal/domain/feed"
	"github.com/jhoicas/warehouse-feeds/internal/infrastructure/fetcher"
	apphttp "github.com/jhoicas/warehouse-feeds/internal/interfaces/http"
)

type fakeImporter struct {
	summary *importer.Summary
	err     error
	running bool
	got     importer.FeedURLs
}

func (f *fakeImporter) Import(_ context.Context, urls importer.FeedURLs) (*importer.Summary, error) {
	f.got = urls
	return f.summary, f.err
}

func (f *fakeImporter) Running() bool { return f.running }

type fakeFiles struct {
	files []fetcher.File
	err   error
}

func (f *fakeFiles) ListFiles() ([]fetcher.File, error) { return f.files, f.err }

type fakeProducts struct {
	bySKU map[string]*dto.ProductDetailsResponse
}

func (f *fakeProducts) GetBySKU(_ context.Context, sku string) (*dto.ProductDetailsResponse, error) {
	if strings.TrimSpace(sku) == "" {
		return nil, domain.ErrInvalidInput
	}
	p, ok := f.bySKU[sku]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func buildTestApp(imp *fakeImporter, files *fakeFiles, products *fakeProducts) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	apphttp.Router(app, apphttp.RouterDeps{
		Importer: imp,
		Files:    files,
		Products: products,
	})
	return app
}

func postImport(t *testing.T, app *fiber.App, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dataprocessing/import", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

const validBody = `{"productsUrl":"https://feeds.test/p.csv","inventoryUrl":"https://feeds.test/i.csv","pricesUrl":"https://feeds.test/c.csv"}`

func TestImport_OK(t *testing.T) {
	imp := &fakeImporter{summary: &importer.Summary{
		RunID:            "run-1",
		FastShippingSKUs: 2,
		Feeds:            map[feed.Kind]importer.FeedStats{feed.KindProducts: {Read: 3, Admitted: 1, Persisted: 1}},
	}}
	app := buildTestApp(imp, &fakeFiles{}, &fakeProducts{})

	resp, raw := postImport(t, app, validBody)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.ImportResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, out.Success)
	require.NotNil(t, out.Summary)
	assert.Equal(t, "run-1", out.Summary.RunID)
	assert.Equal(t, 1, out.Summary.Feeds[feed.KindProducts].Persisted)
	assert.False(t, out.Timestamp.IsZero())

	assert.Equal(t, "https://feeds.test/p.csv", imp.got.Products)
	assert.Equal(t, "https://feeds.test/i.csv", imp.got.Inventory)
	assert.Equal(t, "https://feeds.test/c.csv", imp.got.Prices)
}

func TestImport_CuerpoInvalido_400(t *testing.T) {
	app := buildTestApp(&fakeImporter{}, &fakeFiles{}, &fakeProducts{})

	resp, raw := postImport(t, app, `{"productsUrl":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "INVALID_BODY")
}

func TestImport_MapeoDeErrores(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validacion", fmt.Errorf("%w: productsUrl vacía", domain.ErrInvalidInput), fiber.StatusBadRequest, "VALIDATION"},
		{"en curso", domain.ErrImportInProgress, fiber.StatusConflict, "IMPORT_IN_PROGRESS"},
		{"fallo de etapa", &importer.ImportError{Stage: importer.StageFetch, Err: domain.ErrFetch}, fiber.StatusUnprocessableEntity, ""},
		{"fallo de almacen", &importer.ImportError{Stage: importer.StagePrices, Err: domain.ErrPersistence}, fiber.StatusUnprocessableEntity, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := buildTestApp(&fakeImporter{err: tc.err}, &fakeFiles{}, &fakeProducts{})

			resp, raw := postImport(t, app, validBody)
			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.code != "" {
				assert.Contains(t, string(raw), tc.code)
				return
			}
			var out dto.ImportResponse
			require.NoError(t, json.Unmarshal(raw, &out))
			assert.False(t, out.Success)
			assert.Nil(t, out.Summary)
			assert.Contains(t, out.Message, "importación fallida")
		})
	}
}

func TestListFiles(t *testing.T) {
	mod := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	files := &fakeFiles{files: []fetcher.File{
		{Name: "inventory.csv", Path: "/data/inventory.csv", Size: 120, ModTime: mod},
		{Name: "products.csv", Path: "/data/products.csv", Size: 80, ModTime: mod},
	}}
	app := buildTestApp(&fakeImporter{}, files, &fakeProducts{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dataprocessing/files", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.FileListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Items, 2)
	assert.Equal(t, "inventory.csv", out.Items[0].Name)
	assert.Equal(t, int64(120), out.Items[0].Size)
	assert.True(t, mod.Equal(out.Items[0].ModifiedAt))
}

func TestListFiles_Vacio(t *testing.T) {
	app := buildTestApp(&fakeImporter{}, &fakeFiles{}, &fakeProducts{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dataprocessing/files", nil), -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"items":[]}`, string(raw))
}

func TestListFiles_Error_500(t *testing.T) {
	app := buildTestApp(&fakeImporter{}, &fakeFiles{err: errors.New("disco")}, &fakeProducts{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dataprocessing/files", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestGetProduct(t *testing.T) {
	net := decimal.RequireFromString("12.5")
	products := &fakeProducts{bySKU: map[string]*dto.ProductDetailsResponse{
		"A-1": {SKU: "A-1", Name: "Cable", NetPrice: &net},
	}}
	app := buildTestApp(&fakeImporter{}, &fakeFiles{}, products)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products/A-1", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.ProductDetailsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Cable", out.Name)
	require.NotNil(t, out.NetPrice)
	assert.True(t, out.NetPrice.Equal(net))
	assert.Nil(t, out.StockQuantity, "sin inventario el campo es null")
}

func TestGetProduct_NoExiste_404(t *testing.T) {
	app := buildTestApp(&fakeImporter{}, &fakeFiles{}, &fakeProducts{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products/ZZZ", nil), -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(raw), "NOT_FOUND")
}

func TestHealth(t *testing.T) {
	app := buildTestApp(&fakeImporter{running: true}, &fakeFiles{}, &fakeProducts{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ok", out.Status)
	assert.True(t, out.ImportInProgress)
}

func TestOpenAPIDoc(t *testing.T) {
	app := buildTestApp(&fakeImporter{}, &fakeFiles{}, &fakeProducts{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs/doc.json", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/api/v1/dataprocessing/import")
	assert.Contains(t, paths, "/api/v1/products/{sku}")
}
