package groq

import (
	"context"
	"fmt"
	"net/http"

	"recipe-finder/internal/core/provider"
	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// candidateModels 依序嘗試的模型
var candidateModels = []string{
	"llama-3.3-70b-versatile",
	"llama-3.1-8b-instant",
	"gemma2-9b-it",
}

// Client Groq 生成式客戶端（OpenAI 相容 API）
type Client struct {
	cfg    config.ProviderConfig
	client *resty.Client
}

// NewClient 創建 Groq 客戶端
func NewClient(cfg config.ProviderConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json")

	return &Client{
		cfg:    cfg,
		client: client,
	}
}

// Name 回傳來源標籤
func (c *Client) Name() string {
	return recipe.SourceGroq
}

// Configured 啟動時的可用性判斷
func (c *Client) Configured() bool {
	return c.cfg.Configured()
}

// FetchRecipes 以提示詞生成單一食譜並包裝為候選列表
func (c *Client) FetchRecipes(ctx context.Context, ingredients []string, filter string, number int) ([]recipe.Candidate, error) {
	if !c.Configured() {
		return nil, common.ErrProviderNotConfigured
	}

	prompt := provider.BuildRecipePrompt(ingredients, filter)

	var lastErr error
	for _, model := range candidateModels {
		content, err := c.generate(ctx, model, prompt)
		if err != nil {
			common.LogWarn("Groq model attempt failed",
				zap.String("model", model),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		generated, parseErr := provider.ParseGenerated(content)
		if parseErr != nil {
			common.LogWarn("Groq 回應無法解析，改用合成食譜",
				zap.String("model", model),
				zap.Error(parseErr),
			)
			generated = provider.FallbackFromIngredients(ingredients)
		}

		candidate := provider.ToCandidate(generated, recipe.GeneratedIDBase+1, recipe.SourceGroq, ingredients)
		return []recipe.Candidate{candidate}, nil
	}

	return nil, fmt.Errorf("%w: all models failed: %v", common.ErrProviderCallFailed, lastErr)
}

// generate 調用單一模型
func (c *Client) generate(ctx context.Context, model, prompt string) (string, error) {
	body := map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"max_tokens":  1024,
		"temperature": 0.7,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")

	if err != nil {
		return "", fmt.Errorf("failed to send request to Groq: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("Groq API returned status %d", resp.StatusCode())
	}

	return provider.DecodeChatContent(resp.Body())
}
