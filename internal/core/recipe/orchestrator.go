package recipe

import (
	"context"
	"sort"
	"time"

	"recipe-finder/internal/core/ingredient"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// fallback 層級序數。供應商層每層佔兩個序數：
// 偶數表示先前各層皆為已設定但調用失敗，
// 奇數表示至少有一層因未設定而被跳過
const (
	localFallbackLevel     = 8
	generatedFallbackLevel = 8
	emergencyFallbackLevel = 9
)

// Orchestrator 多層退避協調器。
// 依序嘗試各供應商，在第一個非空結果處停止；
// 供應商全數失敗時依次退至本地食譜表、合成食譜、緊急食譜。
// 各層獨立無狀態，每次請求從頭執行整條鏈，層與層之間不合併結果
type Orchestrator struct {
	providers []Provider
	table     *LocalTable
}

// NewOrchestrator 創建退避協調器。
// providers 的順序即嘗試順序，可用性以各自的 Configured 為準
func NewOrchestrator(providers []Provider, table *LocalTable) *Orchestrator {
	return &Orchestrator{
		providers: providers,
		table:     table,
	}
}

// Search 執行完整退避鏈並回傳結果信封
func (o *Orchestrator) Search(ctx context.Context, rawIngredients []string, filter string, number int) (*SearchResult, error) {
	normalized := ingredient.NormalizeAll(rawIngredients)
	if len(normalized) == 0 {
		return nil, common.ErrNoIngredients
	}

	skippedUnconfigured := false

	for i, p := range o.providers {
		if !p.Configured() {
			// 未設定與調用失敗對鏈而言等價，只在日誌中區分
			common.LogInfo("供應商未設定，跳過",
				zap.String("provider", p.Name()),
				zap.Int("tier", i),
			)
			skippedUnconfigured = true
			continue
		}

		start := time.Now()
		candidates, err := p.FetchRecipes(ctx, normalized, filter, number)
		common.LogProviderCall(p.Name(), time.Since(start), err)

		if err != nil || len(candidates) == 0 {
			continue
		}

		level := 2 * i
		if skippedUnconfigured {
			level++
		}
		return o.buildResult(candidates, p.Name(), level, number), nil
	}

	// 本地食譜表
	if local := o.table.Lookup(normalized); len(local) > 0 {
		common.LogInfo("使用本地食譜表",
			zap.Int("count", len(local)),
		)
		return o.buildResult(local, SourceLocal, localFallbackLevel, number), nil
	}

	// 依輸入食材合成
	if generated := SynthesizeFromIngredients(normalized); len(generated) > 0 {
		common.LogWarn("所有供應商皆不可用，改用合成食譜",
			zap.Int("count", len(generated)),
		)
		return o.buildResult(generated, SourceGenerated, generatedFallbackLevel, number), nil
	}

	// 理論上到不了這裡（合成層對非空輸入必有結果），保底緊急食譜
	common.LogError("退避鏈全數失敗，回傳緊急食譜")
	return o.buildResult([]Candidate{EmergencyRecipe()}, SourceEmergency, emergencyFallbackLevel, number), nil
}

// ProviderStatus 單一供應商的啟動時狀態
type ProviderStatus struct {
	Name       string `json:"name"`
	Tier       int    `json:"tier"`
	Configured bool   `json:"configured"`
}

// Status 回傳各層供應商的設定狀態，供診斷端點使用
func (o *Orchestrator) Status() []ProviderStatus {
	statuses := make([]ProviderStatus, len(o.providers))
	for i, p := range o.providers {
		statuses[i] = ProviderStatus{
			Name:       p.Name(),
			Tier:       i,
			Configured: p.Configured(),
		}
	}
	return statuses
}

// buildResult 組裝結果信封：按匹配度排序、截斷數量、附加來源訊息
func (o *Orchestrator) buildResult(candidates []Candidate, source string, level int, number int) *SearchResult {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchPercentage > candidates[j].MatchPercentage
	})

	if number > 0 && len(candidates) > number {
		candidates = candidates[:number]
	}

	return &SearchResult{
		Success:       true,
		Count:         len(candidates),
		Source:        source,
		UsingFallback: level > 0,
		FallbackLevel: level,
		Recipes:       candidates,
		Message:       MessageForSource(source),
	}
}
