package ingredient

import (
	"sort"
	"strings"
	"unicode"
)

// stopWords 食材描述詞，正規化時整詞移除
var stopWords = map[string]struct{}{
	"chopped":  {},
	"diced":    {},
	"sliced":   {},
	"minced":   {},
	"grated":   {},
	"fresh":    {},
	"dried":    {},
	"ground":   {},
	"powdered": {},
}

// Normalize 正規化單一食材字串：轉小寫、去標點、移除描述詞、壓縮空白。
// 冪等：對已正規化的輸入再跑一次結果不變。空字串輸入回傳空字串。
func Normalize(raw string) string {
	lowered := strings.ToLower(raw)

	// 去除標點，只保留字母、數字與空白
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	// 整詞過濾描述詞，同時壓縮內部空白
	var kept []string
	for _, word := range strings.Fields(b.String()) {
		if _, skip := stopWords[word]; skip {
			continue
		}
		kept = append(kept, word)
	}

	return strings.Join(kept, " ")
}

// NormalizeAll 正規化食材列表，空結果會被略過
func NormalizeAll(raw []string) []string {
	normalized := make([]string, 0, len(raw))
	for _, item := range raw {
		if token := Normalize(item); token != "" {
			normalized = append(normalized, token)
		}
	}
	return normalized
}

// CanonicalKey 將食材列表轉為排序後逗號連接的標準鍵，
// 與本地食譜表的鍵格式一致
func CanonicalKey(ingredients []string) string {
	normalized := NormalizeAll(ingredients)
	sort.Strings(normalized)
	return strings.Join(normalized, ",")
}
