package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "純 JSON",
			input:    `{"title":"Stir Fry"}`,
			expected: `{"title":"Stir Fry"}`,
		},
		{
			name:     "前後夾帶說明文字",
			input:    "Sure! Here is your recipe:\n{\"title\":\"Stir Fry\"}\nEnjoy!",
			expected: `{"title":"Stir Fry"}`,
		},
		{
			name:     "markdown fence",
			input:    "```json\n{\"title\":\"Stir Fry\"}\n```",
			expected: `{"title":"Stir Fry"}`,
		},
		{
			name:     "巢狀物件取最外層",
			input:    `prefix {"a":{"b":1}} suffix`,
			expected: `{"a":{"b":1}}`,
		},
		{
			name:    "沒有大括號",
			input:   "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "只有結尾括號",
			input:   "broken }",
			wantErr: true,
		},
		{
			name:    "括號順序顛倒",
			input:   "} {",
			wantErr: true,
		},
		{
			name:    "空字串",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExtractJSONObject(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestQuoteJSONKeys(t *testing.T) {
	input := `{title: "Stir Fry", servings: 2, meta: {prepTime: 20}}`
	repaired := QuoteJSONKeys(input)

	var parsed map[string]interface{}
	require.NoError(t, ParseJSON(repaired, &parsed))
	assert.Equal(t, "Stir Fry", parsed["title"])
}

func TestQuoteJSONKeysLeavesValidJSONAlone(t *testing.T) {
	input := `{"title": "Stir Fry", "servings": 2}`
	assert.Equal(t, input, QuoteJSONKeys(input))
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	err := ParseJSON(`{"a":1} {"b":2}`, &v)
	assert.Error(t, err)
}

func TestParseJSONStrict(t *testing.T) {
	type target struct {
		Title string `json:"title"`
	}

	var v target
	assert.NoError(t, ParseJSON(`{"title":"x","extra":1}`, &v))
	assert.Error(t, ParseJSONStrict(`{"title":"x","extra":1}`, &v))
}
