package provider

import (
	"encoding/json"
	"testing"

	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"純數字", `30`, 30},
		{"引號包住的數字", `"45"`, 45},
		{"帶單位字串", `"30 minutes"`, 30},
		{"null", `null`, 0},
		{"空字串", `""`, 0},
		{"非數字", `"about half an hour"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexInt
			require.NoError(t, json.Unmarshal([]byte(tt.input), &f))
			assert.Equal(t, tt.expected, int(f))
		})
	}
}

func TestBuildRecipePrompt(t *testing.T) {
	prompt := BuildRecipePrompt([]string{"chicken", "rice"}, "quick")
	assert.Contains(t, prompt, "chicken, rice")
	assert.Contains(t, prompt, "30 minutes or less")
	assert.Contains(t, prompt, "ONLY a JSON object")

	// 未知篩選條件不加入任何限制句
	plain := BuildRecipePrompt([]string{"egg"}, "")
	assert.NotContains(t, plain, "30 minutes or less")
	assert.NotContains(t, plain, "vegetarian")
}

func TestParseGenerated(t *testing.T) {
	content := "Here you go:\n" +
		`{"title":"Chicken Rice Bowl","description":"Easy bowl.","prepTime":"25 minutes","servings":2,` +
		`"ingredients":["chicken","rice"],"instructions":["Cook rice.","Cook chicken."],"tips":"Rest the chicken."}` +
		"\nEnjoy!"

	result, err := ParseGenerated(content)
	require.NoError(t, err)
	assert.Equal(t, "Chicken Rice Bowl", result.Title)
	assert.Equal(t, FlexInt(25), result.PrepTime)
	assert.Equal(t, []string{"chicken", "rice"}, result.Ingredients)
}

func TestParseGeneratedRepairsUnquotedKeys(t *testing.T) {
	content := `{title: "Chicken Rice Bowl", servings: 2, ingredients: ["chicken"], instructions: ["Cook."]}`

	result, err := ParseGenerated(content)
	require.NoError(t, err)
	assert.Equal(t, "Chicken Rice Bowl", result.Title)
}

func TestParseGeneratedFailures(t *testing.T) {
	cases := []string{
		"I'm sorry, I can't produce a recipe right now.",
		`{"description":"no title here","ingredients":["x"]}`,
		`{"title":"No Ingredients"}`,
		"",
	}

	for _, content := range cases {
		_, err := ParseGenerated(content)
		assert.ErrorIs(t, err, common.ErrResponseUnparseable, "content: %q", content)
	}
}

func TestFallbackFromIngredients(t *testing.T) {
	g := FallbackFromIngredients([]string{"chicken", "rice"})
	assert.Contains(t, g.Title, "chicken, rice")
	assert.Len(t, g.Ingredients, 4)
	assert.NotEmpty(t, g.Instructions)

	// 空輸入仍產出可用結構
	empty := FallbackFromIngredients(nil)
	assert.NotEmpty(t, empty.Title)
	assert.NotEmpty(t, empty.Instructions)
}

func TestToCandidateFillsDefaults(t *testing.T) {
	g := &GeneratedRecipe{
		Title:       "  ",
		Ingredients: []string{"chicken"},
	}

	c := ToCandidate(g, recipe.GeneratedIDBase, recipe.SourceGemini, []string{"chicken"})
	assert.Equal(t, recipe.GeneratedIDBase, c.ID)
	assert.Equal(t, "Chef's Special", c.Title)
	assert.Equal(t, 30, c.ReadyInMinutes)
	assert.Equal(t, 2, c.Servings)
	assert.NotEmpty(t, c.Instructions)
	assert.Equal(t, recipe.SourceGemini, c.Source)
	assert.GreaterOrEqual(t, c.MatchPercentage, 15)
	assert.LessOrEqual(t, c.MatchPercentage, 98)
}

func TestDecodeChatContent(t *testing.T) {
	body := []byte(`{"choices":[{"message":{"content":"hello"}}]}`)
	content, err := DecodeChatContent(body)
	require.NoError(t, err)
	assert.Equal(t, "hello", content)

	_, err = DecodeChatContent([]byte(`{"choices":[]}`))
	assert.Error(t, err)

	_, err = DecodeChatContent([]byte(`{"choices":[{"message":{"content":""}}]}`))
	assert.Error(t, err)

	_, err = DecodeChatContent([]byte(`not json`))
	assert.Error(t, err)
}
