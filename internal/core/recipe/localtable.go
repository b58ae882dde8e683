package recipe

import (
	"sort"
	"strings"

	"recipe-finder/internal/core/ingredient"
)

// partialMatchThreshold 部分匹配的最低比例
const partialMatchThreshold = 0.5

// LocalTable 手工整理的本地食譜表。
// 鍵為排序後逗號連接的正規化食材組合，啟動時建立後只讀
type LocalTable struct {
	entries map[string][]Candidate
}

// NewLocalTable 建立內建的本地食譜表
func NewLocalTable() *LocalTable {
	return &LocalTable{entries: builtinEntries()}
}

// Lookup 查找符合用戶食材的本地食譜。
// 先做標準鍵的精確匹配；否則對每個鍵計算
// 「有多少用戶食材子串匹配到鍵中任一食材」的比例，
// 比例 ≥ 0.5 的鍵其食譜以比例×100 作為匹配分數納入結果
func (t *LocalTable) Lookup(userIngredients []string) []Candidate {
	normalized := ingredient.NormalizeAll(userIngredients)
	if len(normalized) == 0 {
		return nil
	}

	// 精確匹配
	key := ingredient.CanonicalKey(normalized)
	if recipes, ok := t.entries[key]; ok {
		results := make([]Candidate, len(recipes))
		copy(results, recipes)
		for i := range results {
			results[i].MatchPercentage = 100
		}
		return results
	}

	// 部分匹配
	var results []Candidate
	for entryKey, recipes := range t.entries {
		keyIngredients := strings.Split(entryKey, ",")

		matches := 0
		for _, user := range normalized {
			for _, keyIng := range keyIngredients {
				if strings.Contains(keyIng, user) || strings.Contains(user, keyIng) {
					matches++
					break
				}
			}
		}

		ratio := float64(matches) / float64(len(normalized))
		if ratio < partialMatchThreshold {
			continue
		}

		for _, r := range recipes {
			r.MatchPercentage = int(ratio * 100)
			results = append(results, r)
		}
	}

	// 排名交由調用端，這裡僅確保輸出順序穩定
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ID < results[j].ID
	})
	return results
}

// ByID 依 ID 查找本地食譜，供詳情端點使用
func (t *LocalTable) ByID(id int) (Candidate, bool) {
	for _, recipes := range t.entries {
		for _, r := range recipes {
			if r.ID == id {
				return r, true
			}
		}
	}
	return Candidate{}, false
}

// builtinEntries 內建食譜資料
func builtinEntries() map[string][]Candidate {
	return map[string][]Candidate{
		"chicken,rice": {
			{
				ID:             1001,
				Title:          "One-Pan Chicken Fried Rice",
				Image:          "https://img.recipe-finder.dev/local/1001.jpg",
				Description:    "Weeknight fried rice with tender chicken pieces.",
				ReadyInMinutes: 25,
				Servings:       2,
				Ingredients:    []string{"chicken", "rice", "soy sauce", "oil"},
				Instructions: []string{
					"Dice the chicken and season with a pinch of salt.",
					"Stir-fry the chicken in a hot pan until golden.",
					"Add cooked rice and toss over high heat for 3 minutes.",
					"Season with soy sauce and serve hot.",
				},
				Source: SourceLocal,
			},
		},
		"egg,tomato": {
			{
				ID:             1002,
				Title:          "Tomato and Egg Stir-Fry",
				Image:          "https://img.recipe-finder.dev/local/1002.jpg",
				Description:    "A five-ingredient classic, soft eggs in tomato sauce.",
				ReadyInMinutes: 15,
				Servings:       2,
				Ingredients:    []string{"egg", "tomato", "sugar", "oil"},
				Instructions: []string{
					"Beat the eggs and scramble them until just set, then remove.",
					"Cook chopped tomatoes until they release their juice.",
					"Return the eggs, add a pinch of sugar, and fold together.",
				},
				Source: SourceLocal,
			},
		},
		"pasta,tomato": {
			{
				ID:             1003,
				Title:          "Simple Tomato Pasta",
				Image:          "https://img.recipe-finder.dev/local/1003.jpg",
				Description:    "Pantry pasta with a quick tomato sauce.",
				ReadyInMinutes: 20,
				Servings:       2,
				Ingredients:    []string{"pasta", "tomato", "garlic", "olive oil"},
				Instructions: []string{
					"Boil the pasta in salted water until al dente.",
					"Soften garlic in olive oil, add chopped tomatoes, simmer 8 minutes.",
					"Toss the pasta through the sauce with a splash of pasta water.",
				},
				Source: SourceLocal,
			},
		},
		"onion,potato": {
			{
				ID:             1004,
				Title:          "Crispy Potato and Onion Hash",
				Image:          "https://img.recipe-finder.dev/local/1004.jpg",
				Description:    "Golden pan-fried potatoes with sweet onions.",
				ReadyInMinutes: 30,
				Servings:       2,
				Ingredients:    []string{"potato", "onion", "butter", "salt"},
				Instructions: []string{
					"Cube the potatoes and parboil for 5 minutes.",
					"Fry potatoes and sliced onion in butter until crisp.",
					"Season generously and serve.",
				},
				Source: SourceLocal,
			},
		},
		"bread,cheese": {
			{
				ID:             1005,
				Title:          "Classic Grilled Cheese",
				Image:          "https://img.recipe-finder.dev/local/1005.jpg",
				Description:    "Buttery toasted bread with melted cheese.",
				ReadyInMinutes: 10,
				Servings:       1,
				Ingredients:    []string{"bread", "cheese", "butter"},
				Instructions: []string{
					"Butter the outside of two bread slices.",
					"Fill with cheese and toast in a pan until golden on both sides.",
				},
				Source: SourceLocal,
			},
		},
		"chicken,garlic,lemon": {
			{
				ID:             1006,
				Title:          "Lemon Garlic Chicken",
				Image:          "https://img.recipe-finder.dev/local/1006.jpg",
				Description:    "Juicy chicken thighs in a bright lemon garlic pan sauce.",
				ReadyInMinutes: 35,
				Servings:       4,
				Ingredients:    []string{"chicken", "garlic", "lemon", "olive oil", "salt"},
				Instructions: []string{
					"Season the chicken and sear skin-side down until browned.",
					"Add crushed garlic and cook for one minute.",
					"Squeeze in lemon juice, cover, and cook through on low heat.",
				},
				Source: SourceLocal,
			},
		},
		"banana,oats": {
			{
				ID:             1007,
				Title:          "Two-Ingredient Banana Oatmeal",
				Image:          "https://img.recipe-finder.dev/local/1007.jpg",
				Description:    "Naturally sweet breakfast oats, no added sugar.",
				ReadyInMinutes: 10,
				Servings:       1,
				Ingredients:    []string{"banana", "oats", "water"},
				Instructions: []string{
					"Mash the banana in a small pot.",
					"Add oats and water, simmer 5 minutes while stirring.",
				},
				Source: SourceLocal,
			},
		},
	}
}
