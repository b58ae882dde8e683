package search

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"recipe-finder/internal/core/cache"
	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 支援的篩選條件
var validFilters = map[string]struct{}{
	"quick":      {},
	"healthy":    {},
	"vegetarian": {},
}

// Suggester 食材自動補全能力，由結構化供應商提供
type Suggester interface {
	Configured() bool
	SuggestIngredients(ctx context.Context, query string, number int) ([]string, error)
}

// Handler 搜尋處理程序
type Handler struct {
	orchestrator *recipe.Orchestrator
	table        *recipe.LocalTable
	suggester    Suggester
	store        cache.Store
	maxResults   int
}

// NewHandler 創建新的搜尋處理程序。store 可為 nil（快取停用）
func NewHandler(orchestrator *recipe.Orchestrator, table *recipe.LocalTable, suggester Suggester, store cache.Store, maxResults int) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		table:        table,
		suggester:    suggester,
		store:        store,
		maxResults:   maxResults,
	}
}

// HandleSearch 以食材搜尋食譜，執行完整退避鏈
func (h *Handler) HandleSearch(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	ingredients := splitIngredients(c.Query("ingredients"))
	if len(ingredients) == 0 {
		common.LogWarn("搜尋請求未提供食材",
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "At least one ingredient is required",
			"code":    common.ErrCodeNoIngredients,
		})
		return
	}

	filter := c.Query("filter")
	if _, ok := validFilters[filter]; !ok {
		// 未知篩選條件視為未指定
		filter = ""
	}

	number := h.maxResults
	if raw := c.Query("number"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			number = n
		}
	}
	if number > 15 {
		number = 15
	}

	common.LogInfo("開始處理食譜搜尋請求",
		zap.String("request_id", requestID),
		zap.Strings("ingredients", ingredients),
		zap.String("filter", filter),
		zap.Int("number", number),
	)

	result, err := h.orchestrator.Search(c.Request.Context(), ingredients, filter, number)
	if err != nil {
		if err == common.ErrNoIngredients {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "At least one ingredient is required",
				"code":    common.ErrCodeNoIngredients,
			})
			return
		}
		// 協調器合約上不會走到這裡，保底回傳緊急端點提示
		common.LogError("搜尋處理失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "Search failed",
			"code":      common.ErrCodeInternalError,
			"emergency": "/api/v1/emergency",
		})
		return
	}

	common.LogInfo("食譜搜尋完成",
		zap.String("request_id", requestID),
		zap.String("source", result.Source),
		zap.Int("fallback_level", result.FallbackLevel),
		zap.Int("count", result.Count),
	)

	c.JSON(http.StatusOK, result)
}

// HandleEmergency 回傳固定的緊急食譜，永遠成功
func (h *Handler) HandleEmergency(c *gin.Context) {
	emergency := recipe.EmergencyRecipe()
	c.JSON(http.StatusOK, recipe.SearchResult{
		Success:       true,
		Count:         1,
		Source:        recipe.SourceEmergency,
		UsingFallback: true,
		FallbackLevel: 9,
		Recipes:       []recipe.Candidate{emergency},
		Message:       recipe.MessageForSource(recipe.SourceEmergency),
	})
}

// HandleFallbackStatus 回傳退避鏈各層的設定狀態
func (h *Handler) HandleFallbackStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"providers": h.orchestrator.Status(),
		"tiers": []string{
			recipe.SourceSpoonacular,
			recipe.SourceGemini,
			recipe.SourceGroq,
			recipe.SourceHuggingFace,
			recipe.SourceLocal,
			recipe.SourceGenerated,
			recipe.SourceEmergency,
		},
	})
}

// splitIngredients 拆解逗號分隔的食材參數，去除空項
func splitIngredients(raw string) []string {
	var result []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
