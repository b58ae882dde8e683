package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"recipe-finder/internal/core/provider"
	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// candidateModels 依序嘗試的模型，任一調用失敗立即換下一個
var candidateModels = []string{
	"gemini-1.5-flash",
	"gemini-1.5-flash-8b",
	"gemini-pro",
}

// Client Google Gemini 生成式客戶端
type Client struct {
	cfg    config.ProviderConfig
	client *resty.Client
}

// NewClient 創建 Gemini 客戶端
func NewClient(cfg config.ProviderConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		cfg:    cfg,
		client: client,
	}
}

// Name 回傳來源標籤
func (c *Client) Name() string {
	return recipe.SourceGemini
}

// Configured 啟動時的可用性判斷
func (c *Client) Configured() bool {
	return c.cfg.Configured()
}

// generateResponse generateContent 回應結構
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// FetchRecipes 以提示詞生成單一食譜並包裝為候選列表。
// 模型有回應但無法解析時回退到合成食譜而非回傳錯誤
func (c *Client) FetchRecipes(ctx context.Context, ingredients []string, filter string, number int) ([]recipe.Candidate, error) {
	if !c.Configured() {
		return nil, common.ErrProviderNotConfigured
	}

	prompt := provider.BuildRecipePrompt(ingredients, filter)

	var lastErr error
	for _, model := range candidateModels {
		content, err := c.generate(ctx, model, prompt)
		if err != nil {
			common.LogWarn("Gemini model attempt failed",
				zap.String("model", model),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		generated, parseErr := provider.ParseGenerated(content)
		if parseErr != nil {
			// 模型已回應，改用合成食譜，不再嘗試其他模型
			common.LogWarn("Gemini 回應無法解析，改用合成食譜",
				zap.String("model", model),
				zap.Error(parseErr),
			)
			generated = provider.FallbackFromIngredients(ingredients)
		}

		candidate := provider.ToCandidate(generated, recipe.GeneratedIDBase, recipe.SourceGemini, ingredients)
		return []recipe.Candidate{candidate}, nil
	}

	return nil, fmt.Errorf("%w: all models failed: %v", common.ErrProviderCallFailed, lastErr)
}

// generate 調用單一模型
func (c *Client) generate(ctx context.Context, model, prompt string) (string, error) {
	body := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     0.7,
			"maxOutputTokens": 1024,
		},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.cfg.APIKey).
		SetBody(body).
		Post(fmt.Sprintf("/models/%s:generateContent", model))

	if err != nil {
		return "", fmt.Errorf("failed to send request to Gemini: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("Gemini API returned status %d", resp.StatusCode())
	}

	var parsed generateResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", fmt.Errorf("failed to parse Gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidates in Gemini response")
	}

	content := parsed.Candidates[0].Content.Parts[0].Text
	if content == "" {
		return "", fmt.Errorf("empty content in Gemini response")
	}
	return content, nil
}
