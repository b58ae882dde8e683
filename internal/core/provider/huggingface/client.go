package huggingface

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"recipe-finder/internal/core/provider"
	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// candidateModels 依序嘗試的模型
var candidateModels = []string{
	"mistralai/Mistral-7B-Instruct-v0.3",
	"HuggingFaceH4/zephyr-7b-beta",
}

// Client Hugging Face Inference API 生成式客戶端
type Client struct {
	cfg    config.ProviderConfig
	client *resty.Client
}

// NewClient 創建 Hugging Face 客戶端
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
	return recipe.SourceHuggingFace
}

// Configured 啟動時的可用性判斷
func (c *Client) Configured() bool {
	return c.cfg.Configured()
}

// generatedText 推理 API 回應項目
type generatedText struct {
	GeneratedText string `json:"generated_text"`
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
			common.LogWarn("Hugging Face model attempt failed",
				zap.String("model", model),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		generated, parseErr := provider.ParseGenerated(content)
		if parseErr != nil {
			common.LogWarn("Hugging Face 回應無法解析，改用合成食譜",
				zap.String("model", model),
				zap.Error(parseErr),
			)
			generated = provider.FallbackFromIngredients(ingredients)
		}

		candidate := provider.ToCandidate(generated, recipe.GeneratedIDBase+2, recipe.SourceHuggingFace, ingredients)
		return []recipe.Candidate{candidate}, nil
	}

	return nil, fmt.Errorf("%w: all models failed: %v", common.ErrProviderCallFailed, lastErr)
}

// generate 調用單一模型
func (c *Client) generate(ctx context.Context, model, prompt string) (string, error) {
	body := map[string]interface{}{
		"inputs": prompt,
		"parameters": map[string]interface{}{
			"max_new_tokens":   1024,
			"temperature":      0.7,
			"return_full_text": false,
		},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(fmt.Sprintf("/models/%s", model))

	if err != nil {
		return "", fmt.Errorf("failed to send request to Hugging Face: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("Hugging Face API returned status %d", resp.StatusCode())
	}

	var parsed []generatedText
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", fmt.Errorf("failed to parse Hugging Face response: %w", err)
	}
	if len(parsed) == 0 || strings.TrimSpace(parsed[0].GeneratedText) == "" {
		return "", fmt.Errorf("empty generated text in Hugging Face response")
	}

	return parsed[0].GeneratedText, nil
}
