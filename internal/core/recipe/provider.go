package recipe

import (
	"context"
)

// Provider 定義外部食譜供應商介面。
// 結構化搜尋與生成式供應商實作同一介面，
// 由協調器依固定優先序迭代，增減或調序層級不需改動協調邏輯
type Provider interface {
	// Name 回傳來源標籤
	Name() string

	// Configured 啟動時的可用性判斷，請求處理期間不再重查
	Configured() bool

	// FetchRecipes 取得候選食譜。任何失敗（網路錯誤、超時、
	// 非 2xx、空結果）都以錯誤回傳，由協調器轉入下一層
	FetchRecipes(ctx context.Context, ingredients []string, filter string, number int) ([]Candidate, error)
}
