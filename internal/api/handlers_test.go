package api

import (
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/engine"
	"backend/internal/models"
	"backend/internal/platform/logger"
	"backend/internal/state"
)

type testServer struct {
	e     *echo.Echo
	coord *engine.Coordinator
}

func newTestServer(t *testing.T, initialRows int) *testServer {
	t.Helper()

	lg := logger.NewNop()
	store := state.NewStore(filepath.Join(t.TempDir(), "table_state.json"), models.Columns(), lg)
	coord := engine.NewCoordinator(store, lg)
	producer := engine.NewProducer(models.DefaultTemplate(), rand.New(rand.NewSource(1)), lg)

	if initialRows > 0 {
		batch, err := producer.Initial(initialRows)
		require.NoError(t, err)
		coord.Append(batch)
	}

	e := echo.New()
	e.JSONSerializer = JSONSerializer{}
	NewHandler(coord, producer, 20, 7, lg).RegisterRoutes(e)
	return &testServer{e: e, coord: coord}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGetProductsBeforeDataIsReady(t *testing.T) {
	s := newTestServer(t, 0)
	rec := s.do(t, http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetProductsPagination(t *testing.T) {
	s := newTestServer(t, 25)

	rec := s.do(t, http.MethodGet, "/api/products?limit=10&offset=20", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, float64(25), body["total"])
	assert.Equal(t, float64(25), body["matched"])
	assert.Len(t, body["data"], 5)
}

func TestSortFilterFlow(t *testing.T) {
	s := newTestServer(t, 25)

	rec := s.do(t, http.MethodPost, "/api/view/sort", `{"field":"price"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode(t, rec)
	assert.Equal(t, "price", st["sortField"])
	assert.Equal(t, float64(1), st["sortOrder"])

	rec = s.do(t, http.MethodPost, "/api/view/filter",
		`{"field":"inventoryStatus","value":"LOWSTOCK","matchMode":"equals"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	for _, row := range body["data"].([]any) {
		assert.Equal(t, "LOWSTOCK", row.(map[string]any)["inventoryStatus"])
	}

	rec = s.do(t, http.MethodPost, "/api/view/filters/clear", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/products", "")
	body = decode(t, rec)
	assert.Equal(t, float64(25), body["matched"])
}

func TestIntentValidation(t *testing.T) {
	s := newTestServer(t, 5)

	rec := s.do(t, http.MethodPost, "/api/view/sort", `{"field":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/view/size", `{"size":"gigantic"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/view/filter", `{"field":"bogus","value":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateMore(t *testing.T) {
	s := newTestServer(t, 25)

	// Handler wired with total=20, chunk=7: 7+7+6.
	rec := s.do(t, http.MethodPost, "/api/products/generate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(20), body["generated"])
	assert.Equal(t, float64(45), body["total"])
	assert.Equal(t, 45, s.coord.Len())
}

func TestFreezeEndpoints(t *testing.T) {
	s := newTestServer(t, 5)

	rec := s.do(t, http.MethodPost, "/api/view/freeze", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["freezeFirstRow"])

	rec = s.do(t, http.MethodPost, "/api/products/3/freeze", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["frozen"])

	rec = s.do(t, http.MethodGet, "/api/products", "")
	body := decode(t, rec)
	assert.Len(t, body["frozen"], 2)

	rec = s.do(t, http.MethodDelete, "/api/products/3/freeze", "")
	assert.Equal(t, true, decode(t, rec)["unfrozen"])

	rec = s.do(t, http.MethodPost, "/api/products/abc/freeze", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportCSV(t *testing.T) {
	s := newTestServer(t, 5)

	rec := s.do(t, http.MethodGet, "/api/products/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 6) // header + 5 rows
	assert.True(t, strings.HasPrefix(lines[0], "id,code,name"))
}

func TestGetStats(t *testing.T) {
	s := newTestServer(t, 5)

	rec := s.do(t, http.MethodGet, "/api/products/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(5), body["rows"])
	assert.Equal(t, float64(5), body["lastId"])

	pr := body["priceRange"].(map[string]any)
	label := pr["label"].(string)
	assert.True(t, strings.HasPrefix(label, "$"))
	assert.Contains(t, label, " - $")
}

func TestGetView(t *testing.T) {
	s := newTestServer(t, 5)

	rec := s.do(t, http.MethodGet, "/api/view", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["freezeFirstRow"])
	assert.Equal(t, false, body["hasFilters"])
	assert.Len(t, body["columns"], 45)

	st := body["state"].(map[string]any)
	assert.Equal(t, "normal", st["size"])
	assert.Len(t, st["visibleColumns"], 45)
}
