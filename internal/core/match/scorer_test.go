package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreDegenerateInputs(t *testing.T) {
	// 用戶無食材
	assert.Equal(t, 0, Score(nil, []string{"chicken"}))
	assert.Equal(t, 0, Score([]string{}, []string{"chicken"}))

	// 用戶食材正規化後為空
	assert.Equal(t, 0, Score([]string{"fresh", "chopped"}, []string{"chicken"}))

	// 食譜無食材
	assert.Equal(t, 10, Score([]string{"chicken"}, nil))
	assert.Equal(t, 10, Score([]string{"chicken"}, []string{}))
}

func TestScoreFullMatchClampedToMax(t *testing.T) {
	// 全部精確匹配加上簡單食譜加成會超過 100，夾到上限 98
	score := Score([]string{"chicken", "rice"}, []string{"chicken", "rice"})
	assert.Equal(t, 98, score)
}

func TestScoreNoOverlapClampedToMin(t *testing.T) {
	score := Score([]string{"banana"}, []string{"beef", "potato", "carrot", "celery"})
	assert.Equal(t, 15, score)
}

func TestScorePartialMatch(t *testing.T) {
	// "chicken" 是 "chicken breast" 的子串，計部分匹配 0.6
	// 0.6/5*100 = 12，夾到下限 15
	score := Score(
		[]string{"chicken"},
		[]string{"chicken breast", "salt", "pepper", "oil", "butter"},
	)
	assert.Equal(t, 15, score)
}

func TestScoreSmallRecipeBonus(t *testing.T) {
	// 四個食材中兩個精確匹配：2/4*100 = 50，無加成
	large := Score(
		[]string{"egg", "tomato"},
		[]string{"egg", "tomato", "flour", "sugar"},
	)
	assert.Equal(t, 50, large)

	// 三個食材中兩個精確匹配：2/3*100*1.2 = 80
	small := Score(
		[]string{"egg", "tomato"},
		[]string{"egg", "tomato", "sugar"},
	)
	assert.Equal(t, 80, small)
}

func TestScoreRoundsFractionalPercentage(t *testing.T) {
	// 2/3*100*1.2 在浮點下是 79.999…，必須取整為 80 而非截斷成 79
	score := Score(
		[]string{"egg", "tomato"},
		[]string{"egg", "tomato", "basil"},
	)
	assert.Equal(t, 80, score)

	// 一個精確加一個部分匹配：1.6/6*100 = 26.67，四捨五入為 27
	unbonused := Score(
		[]string{"egg", "tomato"},
		[]string{"egg", "tomato paste", "flour", "sugar", "salt", "butter"},
	)
	assert.Equal(t, 27, unbonused)
}

func TestScoreRange(t *testing.T) {
	// 非退化輸入的分數必落在 [15, 98]
	cases := [][2][]string{
		{{"chicken"}, {"chicken"}},
		{{"chicken", "rice", "egg"}, {"beef", "noodles"}},
		{{"tomato"}, {"tomato sauce", "basil", "mozzarella"}},
		{{"a", "b", "c", "d"}, {"e", "f", "g", "h", "i", "j"}},
	}

	for _, c := range cases {
		score := Score(c[0], c[1])
		assert.GreaterOrEqual(t, score, 15)
		assert.LessOrEqual(t, score, 98)
	}
}
