package search

import (
	"net/http"
	"strings"

	"recipe-finder/internal/core/cache"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// suggestLimit 單次建議的數量上限
const suggestLimit = 10

// popularIngredients 固定的常用食材列表，
// 結構化供應商不可用時的建議來源
var popularIngredients = []string{
	"chicken", "beef", "pork", "salmon", "shrimp",
	"egg", "tofu", "rice", "pasta", "noodles",
	"potato", "tomato", "onion", "garlic", "ginger",
	"carrot", "broccoli", "spinach", "mushroom", "bell pepper",
	"cheese", "butter", "milk", "yogurt", "cream",
	"bread", "flour", "oats", "banana", "lemon",
}

// suggestResponse 建議端點回應
type suggestResponse struct {
	Success     bool     `json:"success"`
	Suggestions []string `json:"suggestions"`
}

// HandleSuggest 食材自動補全。
// 優先委派給結構化供應商，失敗或未設定時過濾固定的常用食材列表
func (h *Handler) HandleSuggest(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	// 檢查緩存
	cacheKey := cache.SuggestKey(query)
	if h.store != nil {
		if cached, err := h.store.Get(c.Request.Context(), cacheKey); err == nil && cached != "" {
			var resp suggestResponse
			if err := common.ParseJSON(cached, &resp); err == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	var suggestions []string
	if h.suggester != nil && h.suggester.Configured() && query != "" {
		fetched, err := h.suggester.SuggestIngredients(c.Request.Context(), query, suggestLimit)
		if err != nil {
			common.LogWarn("自動補全供應商失敗，改用常用食材列表",
				zap.Error(err),
				zap.String("query", query),
			)
		} else {
			suggestions = fetched
		}
	}

	if suggestions == nil {
		suggestions = filterPopular(query)
	}

	resp := suggestResponse{
		Success:     true,
		Suggestions: suggestions,
	}

	// 寫入緩存
	if h.store != nil {
		if encoded, err := common.ToJSON(resp); err == nil {
			_ = h.store.Set(c.Request.Context(), cacheKey, encoded)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// filterPopular 以子串過濾常用食材列表，空查詢回傳整個列表
func filterPopular(query string) []string {
	if query == "" {
		if len(popularIngredients) > suggestLimit {
			return popularIngredients[:suggestLimit]
		}
		return popularIngredients
	}

	var matched []string
	for _, ing := range popularIngredients {
		if strings.Contains(ing, query) {
			matched = append(matched, ing)
			if len(matched) >= suggestLimit {
				break
			}
		}
	}
	if matched == nil {
		matched = []string{}
	}
	return matched
}
