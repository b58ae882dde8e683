package recipe

// 食譜來源標籤，同時作為回應中的 source 欄位
const (
	SourceSpoonacular = "spoonacular"
	SourceGemini      = "gemini"
	SourceGroq        = "groq"
	SourceHuggingFace = "huggingface"
	SourceLocal       = "local"
	SourceGenerated   = "generated"
	SourceEmergency   = "emergency"
)

// 固定 ID 區間：1000–1999 本地食譜表、3000–3002 生成式層級的固定詳情、
// 5000 起為合成食譜、9999 為緊急食譜
const (
	LocalIDBase     = 1000
	GeneratedIDBase = 3000
	SynthesizedBase = 5000
	EmergencyID     = 9999
)

// Candidate 單一候選食譜，每次請求重新產生，不做持久化
type Candidate struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Image           string   `json:"image"`
	Description     string   `json:"description,omitempty"`
	ReadyInMinutes  int      `json:"readyInMinutes"`
	Servings        int      `json:"servings"`
	Ingredients     []string `json:"ingredients"`
	Instructions    []string `json:"instructions"`
	Tips            string   `json:"tips,omitempty"`
	Source          string   `json:"source"`
	MatchPercentage int      `json:"matchPercentage"`
}

// SearchResult 搜尋結果信封。無論哪一層供應商成功，
// 信封都會標注來源與 fallback 層級
type SearchResult struct {
	Success       bool        `json:"success"`
	Count         int         `json:"count"`
	Source        string      `json:"source"`
	UsingFallback bool        `json:"usingFallback"`
	FallbackLevel int         `json:"fallbackLevel"`
	Recipes       []Candidate `json:"recipes"`
	Message       string      `json:"message"`
}

// sourceMessages 依來源標籤產生的提示訊息
var sourceMessages = map[string]string{
	SourceSpoonacular: "Recipes matched from the recipe database",
	SourceGemini:      "AI-generated recipe (Gemini)",
	SourceGroq:        "AI-generated recipe (Groq)",
	SourceHuggingFace: "AI-generated recipe (Hugging Face)",
	SourceLocal:       "Matched from our curated recipe collection",
	SourceGenerated:   "Simple recipes created from your ingredients",
	SourceEmergency:   "Emergency recipe: external services unavailable",
}

// MessageForSource 取得來源對應的提示訊息
func MessageForSource(source string) string {
	if msg, ok := sourceMessages[source]; ok {
		return msg
	}
	return "Recipes ready"
}
