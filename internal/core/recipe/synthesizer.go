package recipe

import (
	"fmt"
	"strings"

	"recipe-finder/internal/core/ingredient"
)

// SynthesizeFromIngredients 為每個輸入食材合成一份簡單食譜。
// 本地食譜表也無匹配時的最後一般層級，永遠回傳非空結果
func SynthesizeFromIngredients(rawIngredients []string) []Candidate {
	normalized := ingredient.NormalizeAll(rawIngredients)

	results := make([]Candidate, 0, len(normalized))
	for i, ing := range normalized {
		title := fmt.Sprintf("Simple %s Bowl", titleCase(ing))
		results = append(results, Candidate{
			ID:             SynthesizedBase + i,
			Title:          title,
			Image:          "https://img.recipe-finder.dev/generated/bowl.jpg",
			Description:    fmt.Sprintf("A quick improvised dish built around %s.", ing),
			ReadyInMinutes: 20,
			Servings:       2,
			Ingredients:    []string{ing, "salt", "oil"},
			Instructions: []string{
				fmt.Sprintf("Prepare the %s: wash, trim and cut into bite-sized pieces.", ing),
				"Heat a little oil in a pan over medium heat.",
				fmt.Sprintf("Cook the %s until tender, seasoning with salt to taste.", ing),
				"Serve warm.",
			},
			Tips:            "Add any herbs or spices you have on hand.",
			Source:          SourceGenerated,
			MatchPercentage: 98,
		})
	}
	return results
}

// EmergencyRecipe 固定的緊急食譜，所有層級都失敗時的最後手段
func EmergencyRecipe() Candidate {
	return Candidate{
		ID:             EmergencyID,
		Title:          "Pantry Rescue Stir-Fry",
		Image:          "https://img.recipe-finder.dev/emergency/9999.jpg",
		Description:    "Works with almost anything in your kitchen.",
		ReadyInMinutes: 20,
		Servings:       2,
		Ingredients:    []string{"any vegetables", "any protein", "oil", "salt", "pepper"},
		Instructions: []string{
			"Chop whatever vegetables and protein you have into even pieces.",
			"Heat oil in your largest pan over high heat.",
			"Cook the protein first, then add the vegetables.",
			"Season with salt and pepper and serve over rice or bread.",
		},
		Tips:            "A splash of soy sauce or a squeeze of lemon lifts the whole dish.",
		Source:          SourceEmergency,
		MatchPercentage: 50,
	}
}

// GenerativeDetail 生成式層級的固定詳情，ID 3000–3002
func GenerativeDetail(id int) (Candidate, bool) {
	details := map[int]Candidate{
		GeneratedIDBase: {
			ID:             GeneratedIDBase,
			Title:          "Gemini Garden Medley",
			Image:          "https://img.recipe-finder.dev/generated/3000.jpg",
			Description:    "A balanced one-pan dinner suggested by our first AI assistant.",
			ReadyInMinutes: 30,
			Servings:       2,
			Ingredients:    []string{"seasonal vegetables", "rice", "garlic", "olive oil"},
			Instructions: []string{
				"Cook the rice according to package directions.",
				"Saute garlic and vegetables until just tender.",
				"Serve the vegetables over the rice.",
			},
			Source:          SourceGemini,
			MatchPercentage: 75,
		},
		GeneratedIDBase + 1: {
			ID:             GeneratedIDBase + 1,
			Title:          "Groq Quick Skillet",
			Image:          "https://img.recipe-finder.dev/generated/3001.jpg",
			Description:    "A fifteen-minute skillet meal from our second AI assistant.",
			ReadyInMinutes: 15,
			Servings:       2,
			Ingredients:    []string{"eggs", "leftover vegetables", "cheese"},
			Instructions: []string{
				"Whisk the eggs with a pinch of salt.",
				"Pour over warmed vegetables in a nonstick skillet.",
				"Top with cheese, cover, and cook until set.",
			},
			Source:          SourceGroq,
			MatchPercentage: 75,
		},
		GeneratedIDBase + 2: {
			ID:             GeneratedIDBase + 2,
			Title:          "Open Model Comfort Soup",
			Image:          "https://img.recipe-finder.dev/generated/3002.jpg",
			Description:    "A forgiving soup from our community-model assistant.",
			ReadyInMinutes: 40,
			Servings:       4,
			Ingredients:    []string{"onion", "any vegetables", "stock", "noodles"},
			Instructions: []string{
				"Soften the onion in a soup pot.",
				"Add vegetables and stock, simmer 20 minutes.",
				"Add noodles and cook until tender.",
			},
			Source:          SourceHuggingFace,
			MatchPercentage: 75,
		},
	}

	detail, ok := details[id]
	return detail, ok
}

// GenericDetail 為未知 ID 合成通用詳情
func GenericDetail(id int, rawIngredients []string) Candidate {
	normalized := ingredient.NormalizeAll(rawIngredients)
	main := "your ingredients"
	if len(normalized) > 0 {
		main = strings.Join(normalized, ", ")
	}

	ingredients := append([]string{}, normalized...)
	ingredients = append(ingredients, "salt", "oil")

	return Candidate{
		ID:             id,
		Title:          fmt.Sprintf("Custom Recipe #%d", id),
		Image:          "https://img.recipe-finder.dev/generated/custom.jpg",
		Description:    fmt.Sprintf("An improvised recipe using %s.", main),
		ReadyInMinutes: 25,
		Servings:       2,
		Ingredients:    ingredients,
		Instructions: []string{
			"Prepare and chop all ingredients.",
			"Cook the firmest ingredients first, then the rest.",
			"Season to taste and serve.",
		},
		Source:          SourceGenerated,
		MatchPercentage: 80,
	}
}

// titleCase 首字母大寫，僅用於合成標題
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
