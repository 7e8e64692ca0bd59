package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/sathishthangasamy/healthcare-product-selector/config"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/domain"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/infrastructure/cache"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/infrastructure/catalog"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

var repositorySources = catalog.Sources{
	Products:  catalog.EmbeddedProducts,
	Plans:     "../../../data/dummy_insurance_plans.csv",
	PlanTypes: "../../../data/plan_type_definitions.csv",
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"chrome-extension://*", "http://localhost:3000"},
		},
		Selection: config.SelectionConfig{PlanLimit: 5},
	}
}

// setupTestRouter creates a test router over the repository catalogs
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return setupRouterWithSources(t, repositorySources)
}

func setupRouterWithSources(t *testing.T, sources catalog.Sources) *gin.Engine {
	t.Helper()

	store := catalog.Load(context.Background(), catalog.NewReader(nil), sources, nil)
	products := usecase.NewProductService(store, usecase.ProductServiceConfig{}, nil)
	plans := usecase.NewPlanService(store, usecase.PlanServiceConfig{ResultLimit: 5}, nil)

	handler := NewHandler(products, plans, store, nil)
	router := SetupRouter(testConfig(), handler, nil, nil)
	require.NotNil(t, router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type searchResponse struct {
	Count  int              `json:"count"`
	Total  int              `json:"total"`
	Items  []map[string]any `json:"items"`
	Notice string           `json:"notice"`
}

func decodeSearch(t *testing.T, w *httptest.ResponseRecorder) searchResponse {
	t.Helper()
	var resp searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func names(items []map[string]any, key string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i], _ = item[key].(string)
	}
	return out
}

// TestHealthCheckEndpoint tests the health check endpoint
func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		w := doJSON(t, setupTestRouter(t), http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

		assert.Equal(t, "healthy", response["status"])
		assert.Equal(t, "healthcare-product-selector", response["service"])
		assert.NotEmpty(t, response["version"])
		assert.Equal(t, map[string]any{"products": true, "plans": true, "plan_types": true}, response["catalogs"])
	})

	t.Run("reports degraded catalogs", func(t *testing.T) {
		router := setupRouterWithSources(t, catalog.Sources{
			Products:  catalog.EmbeddedProducts,
			Plans:     "missing-plans.csv",
			PlanTypes: "missing-types.csv",
		})

		w := doJSON(t, router, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "degraded", response["status"])
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		router := setupTestRouter(t)

		for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
			w := doJSON(t, router, method, "/health", "")
			assert.Equal(t, http.StatusNotFound, w.Code, "method %s", method)
		}
	})
}

func TestProductEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("lists the catalog", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/products", "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeSearch(t, w)
		assert.Equal(t, 8, resp.Count)
		assert.Equal(t, "P001", resp.Items[0]["productId"])
	})

	t.Run("searches by symptom", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/products/search", `{"symptom":"FEVER"}`)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeSearch(t, w)
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, []string{"P001", "P002"}, names(resp.Items, "productId"))
		assert.Empty(t, resp.Notice)
	})

	t.Run("child filter empties medical devices", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/products/search",
			`{"category":"Medical Device","ageGroup":"Child"}`)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeSearch(t, w)
		assert.Zero(t, resp.Count)
		assert.Empty(t, resp.Items)
		assert.Equal(t, domain.NoticeNoProducts, resp.Notice)
	})

	t.Run("applies limit", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/products/search", `{"limit":3}`)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeSearch(t, w)
		assert.Equal(t, 3, resp.Count)
		assert.Equal(t, 8, resp.Total)
	})

	t.Run("empty body is an empty query", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/products/search", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 8, decodeSearch(t, w).Total)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/products/search", `{"symptom":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects negative limit", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/products/search", `{"limit":-1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("lists categories", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/products/categories", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			All        string   `json:"all"`
			Categories []string `json:"categories"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, domain.CategoryAll, resp.All)
		assert.Contains(t, resp.Categories, "Medical Device")
	})
}

func TestPlanEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("lists the catalog", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/plans", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 6, decodeSearch(t, w).Count)
	})

	t.Run("ranks by premium and keeps the top five", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/plans/search",
			`{"priorities":["Low Monthly Premium"]}`)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeSearch(t, w)
		assert.Equal(t, 6, resp.Total)
		assert.Equal(t, 5, resp.Count)
		assert.Equal(t, []string{
			"Evergreen Saver HDHP",
			"BlueCare Basic HMO",
			"Summit Value HMO",
			"Evergreen EPO",
			"Summit Family POS",
		}, names(resp.Items, "planName"))
	})

	t.Run("filters by type", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/plans/search", `{"preferredType":"HMO"}`)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeSearch(t, w)
		assert.Equal(t, []string{"BlueCare Basic HMO", "Summit Value HMO"}, names(resp.Items, "planName"))
	})

	t.Run("filters by conditions", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/plans/search", `{"conditions":"pregnancy, DIABETES"}`)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeSearch(t, w)
		assert.Equal(t, []string{"BlueCare Select PPO", "Summit Family POS"}, names(resp.Items, "planName"))
	})

	t.Run("no match yields notice", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/plans/search", `{"conditions":"gout"}`)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeSearch(t, w)
		assert.Empty(t, resp.Items)
		assert.Equal(t, domain.NoticeNoPlans, resp.Notice)
	})

	t.Run("lists priorities", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/plans/priorities", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Priorities []string `json:"priorities"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Priorities, len(domain.Priorities))
	})

	t.Run("returns plan type details", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/plan-types/HMO", "")
		require.Equal(t, http.StatusOK, w.Code)

		var def domain.PlanTypeDefinition
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &def))
		assert.Equal(t, "Health Maintenance Organization", def.FullName)
	})

	t.Run("unknown plan type is not found", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/plan-types/XYZ", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUnavailableCatalogs(t *testing.T) {
	router := setupRouterWithSources(t, catalog.Sources{
		Products:  "embedded:nothing",
		Plans:     "missing-plans.csv",
		PlanTypes: "missing-types.csv",
	})

	for _, tc := range []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/v1/products", ""},
		{http.MethodPost, "/api/v1/products/search", `{"symptom":"fever"}`},
		{http.MethodGet, "/api/v1/plans", ""},
		{http.MethodPost, "/api/v1/plans/search", `{"preferredType":"PPO"}`},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := doJSON(t, router, tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusOK, w.Code)

			resp := decodeSearch(t, w)
			assert.Empty(t, resp.Items)
			assert.Equal(t, domain.NoticeCatalogUnavailable, resp.Notice)
		})
	}

	t.Run("plan type lookup is unavailable", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/plan-types/HMO", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

// TestCORSIntegration tests CORS headers work end-to-end with full router
func TestCORSIntegration(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	req.Header.Set("Origin", "chrome-extension://abcdefghijklmnop")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "chrome-extension://abcdefghijklmnop", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/plans/search", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

// TestRecoveryMiddleware tests panic recovery
func TestRecoveryMiddleware(t *testing.T) {
	router := setupTestRouter(t)
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := doJSON(t, router, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestIDIntegration(t *testing.T) {
	w := doJSON(t, setupTestRouter(t), http.MethodGet, "/health", "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	router := setupTestRouter(t)
	doJSON(t, router, http.MethodPost, "/api/v1/plans/search", `{}`)

	w := doJSON(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "selector_http_requests_total")
	assert.Contains(t, w.Body.String(), "selector_selections_total")
}

func TestRateLimitIntegration(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{PerIP: 1, Burst: 2, IdleTTL: time.Minute}

	limiters := cache.NewMemoryCache[*rate.Limiter](time.Minute)
	t.Cleanup(limiters.Close)

	store := catalog.NewStore(nil, nil, nil)
	handler := NewHandler(
		usecase.NewProductService(store, usecase.ProductServiceConfig{}, nil),
		usecase.NewPlanService(store, usecase.PlanServiceConfig{}, nil),
		store, nil,
	)
	router := SetupRouter(cfg, handler, nil, limiters)

	codes := make([]int, 0, 3)
	for range 3 {
		codes = append(codes, doJSON(t, router, http.MethodGet, "/api/v1/plans", "").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// health is outside the limited group
	assert.Equal(t, http.StatusOK, doJSON(t, router, http.MethodGet, "/health", "").Code)
}

// TestJSONResponses tests that all responses are valid JSON
func TestJSONResponses(t *testing.T) {
	endpoints := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/api/v1/products"},
		{"POST", "/api/v1/products/search"},
		{"GET", "/api/v1/plans"},
		{"POST", "/api/v1/plans/search"},
		{"GET", "/api/v1/plan-types/XYZ"},
	}

	router := setupTestRouter(t)
	for _, endpoint := range endpoints {
		t.Run(endpoint.method+" "+endpoint.path, func(t *testing.T) {
			w := doJSON(t, router, endpoint.method, endpoint.path, "")

			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

			var response map[string]any
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		})
	}
}
