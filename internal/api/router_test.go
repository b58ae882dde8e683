package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouterConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Debug:   true,
			Version: "test",
			Env:     "test",
		},
		Server:      config.ServerConfig{Port: 8080},
		Search:      config.SearchConfig{MaxResults: 15},
		DedupWindow: time.Second,
	}
}

func doGet(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestProbesNotDeduplicated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := SetupRouter(testRouterConfig(), nil)
	require.NoError(t, err)

	// 探針端點在去重窗口內重複命中必須全數通過
	for _, target := range []string{"/health", "/ready", "/live"} {
		first := doGet(router, target)
		second := doGet(router, target)
		assert.Equal(t, http.StatusOK, first.Code, "target: %s", target)
		assert.Equal(t, http.StatusOK, second.Code, "target: %s", target)
	}
}

func TestBusinessRoutesDeduplicated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := SetupRouter(testRouterConfig(), nil)
	require.NoError(t, err)

	first := doGet(router, "/api/v1/emergency")
	second := doGet(router, "/api/v1/emergency")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestContextMiddlewareTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testRouterConfig()
	orchestrator := recipe.NewOrchestrator(nil, recipe.NewLocalTable())

	router := gin.New()
	router.Use(contextMiddleware(cfg, orchestrator, 10*time.Millisecond))
	router.GET("/slow", func(c *gin.Context) {
		// 超過期限且沒有寫出任何回應
		time.Sleep(30 * time.Millisecond)
	})

	w := doGet(router, "/slow")
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "REQUEST_TIMEOUT", body["code"])
}

func TestContextMiddlewareKeepsWrittenResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testRouterConfig()
	orchestrator := recipe.NewOrchestrator(nil, recipe.NewLocalTable())

	router := gin.New()
	router.Use(contextMiddleware(cfg, orchestrator, 10*time.Millisecond))
	router.GET("/absorbed", func(c *gin.Context) {
		// 退避鏈吸收了超時並照常回應
		time.Sleep(30 * time.Millisecond)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := doGet(router, "/absorbed")
	assert.Equal(t, http.StatusOK, w.Code)

	// 回應體只有處理器寫出的一份 JSON，不得附加 504 信封
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
}
