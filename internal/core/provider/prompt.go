package provider

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"recipe-finder/internal/core/match"
	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"
)

// GeneratedRecipe 生成式供應商回傳的固定 JSON 結構
type GeneratedRecipe struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	PrepTime     FlexInt  `json:"prepTime"`
	Servings     FlexInt  `json:"servings"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Tips         string   `json:"tips"`
}

// FlexInt 寬容的整數欄位。模型常把數字寫成 "30" 或 "30 minutes"，
// 只要前導部分是數字就接受
type FlexInt int

// UnmarshalJSON 實現 json.Unmarshaler
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}

	// 取前導數字部分
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		*f = 0
		return nil
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(n)
	return nil
}

// BuildRecipePrompt 組裝生成式供應商的提示詞。
// 要求模型只回傳固定結構的 JSON 物件
func BuildRecipePrompt(ingredients []string, filter string) string {
	var constraint string
	switch filter {
	case "quick":
		constraint = "The recipe must take 30 minutes or less to prepare."
	case "healthy":
		constraint = "The recipe must be healthy and under 500 calories per serving."
	case "vegetarian":
		constraint = "The recipe must be strictly vegetarian."
	}

	prompt := fmt.Sprintf(`You are a recipe assistant. Create one recipe using these ingredients: %s.
%s
Respond with ONLY a JSON object, no other text, no markdown fences, using exactly this schema:
{"title":"...","description":"...","prepTime":30,"servings":2,"ingredients":["..."],"instructions":["..."],"tips":"..."}
Rules:
1. prepTime is a plain integer number of minutes
2. servings is a plain integer
3. ingredients and instructions are arrays of strings
4. every key must be present and double-quoted
5. do not add any text before or after the JSON object`,
		strings.Join(ingredients, ", "), constraint)

	return prompt
}

// ParseGenerated 解析模型的自由文本回應。
// 擷取大括號包住的 JSON、修補未加引號的鍵後解析；
// 標題或食材為空視為解析失敗，由調用端回退到合成食譜
func ParseGenerated(content string) (*GeneratedRecipe, error) {
	extracted, err := common.ExtractJSONObject(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrResponseUnparseable, err)
	}

	var result GeneratedRecipe
	if err := common.ParseJSON(extracted, &result); err != nil {
		// 模型偶爾省略鍵的引號，修補後重試一次
		repaired := common.QuoteJSONKeys(extracted)
		if err2 := common.ParseJSON(repaired, &result); err2 != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrResponseUnparseable, err)
		}
	}

	if strings.TrimSpace(result.Title) == "" || len(result.Ingredients) == 0 {
		return nil, fmt.Errorf("%w: missing title or ingredients", common.ErrResponseUnparseable)
	}

	return &result, nil
}

// FallbackFromIngredients 模型有回應但內容無法解析時，
// 以輸入食材合成最小可用食譜。此路徑回傳較低品質的結果而非錯誤
func FallbackFromIngredients(ingredients []string) *GeneratedRecipe {
	main := "your ingredients"
	if len(ingredients) > 0 {
		main = strings.Join(ingredients, ", ")
	}

	return &GeneratedRecipe{
		Title:       fmt.Sprintf("Improvised Dish with %s", main),
		Description: fmt.Sprintf("A simple dish that makes the most of %s.", main),
		PrepTime:    25,
		Servings:    2,
		Ingredients: append(append([]string{}, ingredients...), "salt", "oil"),
		Instructions: []string{
			"Prepare and chop all ingredients.",
			"Cook everything in a pan over medium heat, firmest ingredients first.",
			"Season with salt and serve.",
		},
		Tips: "Taste as you go and adjust the seasoning.",
	}
}

// ToCandidate 將生成結果轉為候選食譜並補齊缺漏欄位
func ToCandidate(g *GeneratedRecipe, id int, source string, userIngredients []string) recipe.Candidate {
	// 檢查並補充空值
	if strings.TrimSpace(g.Title) == "" {
		g.Title = "Chef's Special"
	}
	if g.PrepTime <= 0 {
		g.PrepTime = 30
	}
	if g.Servings <= 0 {
		g.Servings = 2
	}
	if len(g.Instructions) == 0 {
		g.Instructions = []string{"Combine the ingredients and cook until done."}
	}

	return recipe.Candidate{
		ID:              id,
		Title:           g.Title,
		Image:           fmt.Sprintf("https://img.recipe-finder.dev/generated/%d.jpg", id),
		Description:     g.Description,
		ReadyInMinutes:  int(g.PrepTime),
		Servings:        int(g.Servings),
		Ingredients:     g.Ingredients,
		Instructions:    g.Instructions,
		Tips:            g.Tips,
		Source:          source,
		MatchPercentage: match.Score(userIngredients, g.Ingredients),
	}
}

// DecodeChatContent 解析 OpenAI 相容回應中第一個 choice 的內容
func DecodeChatContent(body []byte) (string, error) {
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in chat response")
	}
	if result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty content in chat response")
	}
	return result.Choices[0].Message.Content, nil
}
