package match

import (
	"math"
	"strings"

	"recipe-finder/internal/core/ingredient"
)

const (
	// 分數上下限
	minScore = 15
	maxScore = 98

	// 退化輸入的固定回傳值
	emptyRecipeScore = 10
	noUserScore      = 0

	exactWeight   = 1.0
	partialWeight = 0.6

	// 食材數量不超過此值的食譜獲得簡單食譜加成
	smallRecipeSize  = 3
	smallRecipeBonus = 1.2
)

// Score 計算食譜與用戶食材的匹配百分比。
// 每個食譜食材正規化後與用戶食材比對：完全相同計 1.0，
// 其一包含另一（取第一個符合者，不重複計分）計 0.6，否則 0。
// 總分除以食譜食材數再乘 100；食材數 ≤3 的食譜乘 1.2 加成；
// 最後夾在 [15, 98]。食譜無食材回傳 10，用戶無食材回傳 0。
func Score(userIngredients []string, recipeIngredients []string) int {
	if len(userIngredients) == 0 {
		return noUserScore
	}
	if len(recipeIngredients) == 0 {
		return emptyRecipeScore
	}

	normalized := ingredient.NormalizeAll(userIngredients)
	if len(normalized) == 0 {
		return noUserScore
	}

	var total float64
	for _, raw := range recipeIngredients {
		token := ingredient.Normalize(raw)
		if token == "" {
			continue
		}
		total += scoreOne(token, normalized)
	}

	percentage := total / float64(len(recipeIngredients)) * 100
	if len(recipeIngredients) <= smallRecipeSize {
		percentage *= smallRecipeBonus
	}

	// 浮點運算會讓整除的結果差一（2/3*100*1.2 算出 79.999…），四捨五入後再夾限
	return clamp(int(math.Round(percentage)))
}

// scoreOne 對單一食譜食材計分
func scoreOne(token string, userIngredients []string) float64 {
	for _, user := range userIngredients {
		if token == user {
			return exactWeight
		}
	}
	for _, user := range userIngredients {
		if strings.Contains(token, user) || strings.Contains(user, token) {
			return partialWeight
		}
	}
	return 0
}

func clamp(score int) int {
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
