package search

import (
	"net/http"
	"strconv"

	"recipe-finder/internal/core/cache"
	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// detailResponse 詳情端點回應
type detailResponse struct {
	Success bool             `json:"success"`
	Recipe  recipe.Candidate `json:"recipe"`
}

// HandleDetail 依 ID 回傳食譜詳情。
// ID 區間決定解析方式：1000–1999 查本地表、3000–3002 為生成式固定詳情、
// 其餘一律合成通用詳情，任何 ID 都不會回 404
func (h *Handler) HandleDetail(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil || id < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "無效的食譜 ID",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	rawQuery := c.Query("ingredients")
	rawIngredients := splitIngredients(rawQuery)

	// 檢查緩存
	cacheKey := cache.DetailKey(id, rawQuery)
	if h.store != nil {
		if cached, err := h.store.Get(c.Request.Context(), cacheKey); err == nil && cached != "" {
			var resp detailResponse
			if err := common.ParseJSON(cached, &resp); err == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	candidate := h.resolveDetail(id, rawIngredients)

	resp := detailResponse{
		Success: true,
		Recipe:  candidate,
	}

	// 寫入緩存
	if h.store != nil {
		if encoded, err := common.ToJSON(resp); err == nil {
			_ = h.store.Set(c.Request.Context(), cacheKey, encoded)
		}
	}

	common.LogInfo("食譜詳情解析完成",
		zap.Int("recipe_id", id),
		zap.String("source", candidate.Source),
	)

	c.JSON(http.StatusOK, resp)
}

// resolveDetail 依 ID 區間解析詳情，找不到時落到通用合成詳情
func (h *Handler) resolveDetail(id int, rawIngredients []string) recipe.Candidate {
	if id >= recipe.LocalIDBase && id < recipe.LocalIDBase+1000 {
		if candidate, ok := h.table.ByID(id); ok {
			return candidate
		}
		return recipe.GenericDetail(id, rawIngredients)
	}

	if candidate, ok := recipe.GenerativeDetail(id); ok {
		return candidate
	}

	if id == recipe.EmergencyID {
		return recipe.EmergencyRecipe()
	}

	return recipe.GenericDetail(id, rawIngredients)
}
