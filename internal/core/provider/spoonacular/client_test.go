package spoonacular

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key-12345"

func testConfig(baseURL string) config.ProviderConfig {
	return config.ProviderConfig{
		APIKey:  testAPIKey,
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	}
}

func TestConfigured(t *testing.T) {
	assert.True(t, NewClient(testConfig("http://example.com")).Configured())
	assert.False(t, NewClient(config.ProviderConfig{APIKey: "short"}).Configured())
	assert.False(t, NewClient(config.ProviderConfig{}).Configured())
}

func TestFetchRecipes(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/complexSearch", r.URL.Path)
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"id":641803,"title":"Easy Chicken Fried Rice","image":"https://img.example.com/641803.jpg",
			 "readyInMinutes":25,"servings":2,
			 "usedIngredients":[{"name":"chicken"},{"name":"rice"}],
			 "missedIngredients":[{"name":"soy sauce"}],
			 "analyzedInstructions":[{"steps":[{"step":"Cook the rice."},{"step":"Fry everything."}]}]}
		]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	candidates, err := client.FetchRecipes(context.Background(), []string{"chicken", "rice"}, "quick", 5)
	require.NoError(t, err)

	// 查詢參數映射
	assert.Equal(t, testAPIKey, gotQuery["apiKey"])
	assert.Equal(t, "chicken,rice", gotQuery["includeIngredients"])
	assert.Equal(t, "5", gotQuery["number"])
	assert.Equal(t, "30", gotQuery["maxReadyTime"])
	assert.Equal(t, "max-used-ingredients", gotQuery["sort"])

	require.Len(t, candidates, 1)
	c := candidates[0]
	assert.Equal(t, 641803, c.ID)
	assert.Equal(t, "Easy Chicken Fried Rice", c.Title)
	assert.Equal(t, "spoonacular", c.Source)
	assert.Equal(t, []string{"chicken", "rice", "soy sauce"}, c.Ingredients)
	assert.Equal(t, []string{"Cook the rice.", "Fry everything."}, c.Instructions)
	assert.GreaterOrEqual(t, c.MatchPercentage, 15)
	assert.LessOrEqual(t, c.MatchPercentage, 98)
}

func TestFetchRecipesFilterMapping(t *testing.T) {
	tests := []struct {
		filter string
		param  string
		value  string
	}{
		{"quick", "maxReadyTime", "30"},
		{"healthy", "maxCalories", "500"},
		{"vegetarian", "diet", "vegetarian"},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			var got string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.URL.Query().Get(tt.param)
				w.Write([]byte(`{"results":[{"id":1,"title":"x"}]}`))
			}))
			defer server.Close()

			client := NewClient(testConfig(server.URL))
			_, err := client.FetchRecipes(context.Background(), []string{"egg"}, tt.filter, 5)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestFetchRecipesErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.FetchRecipes(context.Background(), []string{"egg"}, "", 5)
	assert.ErrorIs(t, err, common.ErrProviderCallFailed)
}

func TestFetchRecipesEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.FetchRecipes(context.Background(), []string{"egg"}, "", 5)
	assert.ErrorIs(t, err, common.ErrProviderCallFailed)
}

func TestFetchRecipesNotConfigured(t *testing.T) {
	client := NewClient(config.ProviderConfig{})
	_, err := client.FetchRecipes(context.Background(), []string{"egg"}, "", 5)
	assert.ErrorIs(t, err, common.ErrProviderNotConfigured)
}

func TestSuggestIngredients(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/food/ingredients/autocomplete", r.URL.Path)
		assert.Equal(t, "chick", r.URL.Query().Get("query"))
		w.Write([]byte(`[{"name":"chicken"},{"name":"chickpeas"}]`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	suggestions, err := client.SuggestIngredients(context.Background(), "chick", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"chicken", "chickpeas"}, suggestions)
}
