package spoonacular

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"recipe-finder/internal/core/match"
	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client Spoonacular 結構化搜尋客戶端
type Client struct {
	cfg    config.ProviderConfig
	client *resty.Client
}

// NewClient 創建 Spoonacular 客戶端
func NewClient(cfg config.ProviderConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)

	return &Client{
		cfg:    cfg,
		client: client,
	}
}

// Name 回傳來源標籤
func (c *Client) Name() string {
	return recipe.SourceSpoonacular
}

// Configured 啟動時的可用性判斷
func (c *Client) Configured() bool {
	return c.cfg.Configured()
}

// searchResponse complexSearch 回應結構
type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	ID                   int                  `json:"id"`
	Title                string               `json:"title"`
	Image                string               `json:"image"`
	ReadyInMinutes       int                  `json:"readyInMinutes"`
	Servings             int                  `json:"servings"`
	UsedIngredients      []ingredientInfo     `json:"usedIngredients"`
	MissedIngredients    []ingredientInfo     `json:"missedIngredients"`
	AnalyzedInstructions []instructionSection `json:"analyzedInstructions"`
}

type ingredientInfo struct {
	Name string `json:"name"`
}

type instructionSection struct {
	Steps []instructionStep `json:"steps"`
}

type instructionStep struct {
	Step string `json:"step"`
}

// FetchRecipes 以食材搜尋食譜。
// 篩選條件映射：quick → maxReadyTime、healthy → maxCalories、
// vegetarian → diet。非 2xx、超時或空結果都視為不可用
func (c *Client) FetchRecipes(ctx context.Context, ingredients []string, filter string, number int) ([]recipe.Candidate, error) {
	if !c.Configured() {
		return nil, common.ErrProviderNotConfigured
	}

	params := map[string]string{
		"apiKey":               c.cfg.APIKey,
		"includeIngredients":   strings.Join(ingredients, ","),
		"number":               strconv.Itoa(number),
		"addRecipeInformation": "true",
		"fillIngredients":      "true",
		"sort":                 "max-used-ingredients",
	}

	// 篩選條件映射到供應商查詢參數
	switch filter {
	case "quick":
		params["maxReadyTime"] = "30"
	case "healthy":
		params["maxCalories"] = "500"
	case "vegetarian":
		params["diet"] = "vegetarian"
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/recipes/complexSearch")

	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrProviderCallFailed, err)
	}
	if resp.StatusCode() != http.StatusOK {
		common.LogWarn("Spoonacular returned error status",
			zap.Int("status_code", resp.StatusCode()),
		)
		return nil, fmt.Errorf("%w: status %d", common.ErrProviderCallFailed, resp.StatusCode())
	}

	var parsed searchResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrProviderCallFailed, err)
	}
	if len(parsed.Results) == 0 {
		return nil, fmt.Errorf("%w: empty result set", common.ErrProviderCallFailed)
	}

	candidates := make([]recipe.Candidate, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		// 匹配度以已用與缺少食材的聯集計算
		recipeIngredients := make([]string, 0, len(r.UsedIngredients)+len(r.MissedIngredients))
		for _, ing := range r.UsedIngredients {
			recipeIngredients = append(recipeIngredients, ing.Name)
		}
		for _, ing := range r.MissedIngredients {
			recipeIngredients = append(recipeIngredients, ing.Name)
		}

		var instructions []string
		for _, section := range r.AnalyzedInstructions {
			for _, step := range section.Steps {
				instructions = append(instructions, step.Step)
			}
		}

		candidates = append(candidates, recipe.Candidate{
			ID:              r.ID,
			Title:           r.Title,
			Image:           r.Image,
			ReadyInMinutes:  r.ReadyInMinutes,
			Servings:        r.Servings,
			Ingredients:     recipeIngredients,
			Instructions:    instructions,
			Source:          recipe.SourceSpoonacular,
			MatchPercentage: match.Score(ingredients, recipeIngredients),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchPercentage > candidates[j].MatchPercentage
	})

	return candidates, nil
}

// autocompleteEntry 自動補全回應項目
type autocompleteEntry struct {
	Name string `json:"name"`
}

// SuggestIngredients 食材自動補全，供建議端點使用
func (c *Client) SuggestIngredients(ctx context.Context, query string, number int) ([]string, error) {
	if !c.Configured() {
		return nil, common.ErrProviderNotConfigured
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apiKey": c.cfg.APIKey,
			"query":  query,
			"number": strconv.Itoa(number),
		}).
		Get("/food/ingredients/autocomplete")

	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrProviderCallFailed, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", common.ErrProviderCallFailed, resp.StatusCode())
	}

	var entries []autocompleteEntry
	if err := json.Unmarshal(resp.Body(), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrProviderCallFailed, err)
	}

	suggestions := make([]string, 0, len(entries))
	for _, e := range entries {
		suggestions = append(suggestions, e.Name)
	}
	return suggestions, nil
}
