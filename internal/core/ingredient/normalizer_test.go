package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"描述詞與大小寫", "Chopped Fresh Tomatoes", "tomatoes"},
		{"標點移除", "bell-pepper!", "bellpepper"},
		{"多餘空白壓縮", "  diced   onion  ", "onion"},
		{"全部都是描述詞", "fresh chopped", ""},
		{"空字串", "", ""},
		{"已正規化輸入不變", "chicken breast", "chicken breast"},
		{"描述詞僅整詞移除", "groundnut", "groundnut"},
		{"數字保留", "7 grain bread", "7 grain bread"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Chopped Fresh Tomatoes",
		"Minced GARLIC cloves",
		"dried oregano leaves",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		assert.Equal(t, once, twice, "input: %s", input)
	}
}

func TestNormalizeAll(t *testing.T) {
	result := NormalizeAll([]string{"Fresh Tomato", "", "   ", "chopped", "Onion"})
	assert.Equal(t, []string{"tomato", "onion"}, result)
}

func TestCanonicalKey(t *testing.T) {
	// 排序後逗號連接，與輸入順序無關
	assert.Equal(t, "chicken,rice", CanonicalKey([]string{"Rice", "Chicken"}))
	assert.Equal(t, "chicken,rice", CanonicalKey([]string{"chicken", "rice"}))
	assert.Equal(t, "", CanonicalKey(nil))
}
