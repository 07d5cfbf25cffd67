package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const richFrontendAnswer = "I used React hooks to manage component state in my project. " +
	"The reason we migrated was because class lifecycles were hard to follow. " +
	"The difference is much cleaner code. For example, our form component dropped half its lines."

func TestExtractSignalsEmptyAnswer(t *testing.T) {
	for _, answer := range []string{"", "   ", "\n\t", NotAnsweredSentinel, "no answer"} {
		s := ExtractSignals(answer, "What is React?", "frontend")
		assert.Equal(t, Signals{}, s, "answer %q should short-circuit to zero signals", answer)
	}
}

func TestExtractSignalsRichAnswer(t *testing.T) {
	s := ExtractSignals(richFrontendAnswer, "Why did you adopt hooks?", "frontend")

	assert.True(t, s.HasExamples)
	assert.True(t, s.HasCausalExplain)
	assert.True(t, s.HasComparison)
	assert.True(t, s.IsStructured)
	assert.GreaterOrEqual(t, s.TermHits, 2)
	assert.Equal(t, 90, s.Percentage)
	assert.True(t, s.IsDetailed)
	assert.True(t, s.IsGood)
	assert.True(t, s.IsBasic)
}

func TestExtractSignalsQuantizationStability(t *testing.T) {
	// Filler words change neither term hits nor detected patterns, so the
	// snapped percentage must not move.
	withFiller := strings.ReplaceAll(richFrontendAnswer, "I used", "Well, basically I used")

	a := ExtractSignals(richFrontendAnswer, "q", "frontend")
	b := ExtractSignals(withFiller, "q", "frontend")
	assert.Equal(t, a.Percentage, b.Percentage)
}

func TestExtractSignalsTermRepetitionCapped(t *testing.T) {
	spam := strings.Repeat("react ", 30)
	spammed := ExtractSignals(spam, "q", "frontend")

	// 30 hits, but the term contribution is capped: length points (30) plus
	// the cap (20) is all this answer can earn.
	assert.GreaterOrEqual(t, spammed.TermHits, 20)
	assert.LessOrEqual(t, spammed.Percentage, 50)
}

func TestExtractSignalsUnknownSpecialtyFallsBackToGenericTerms(t *testing.T) {
	s := ExtractSignals("We improved system performance through testing and optimization.", "q", "underwater-basket-weaving")
	assert.Greater(t, s.TermHits, 0)
}

func TestExtractSignalsShortAnswer(t *testing.T) {
	s := ExtractSignals("React.", "q", "frontend")

	require.False(t, s.IsDetailed)
	require.False(t, s.IsGood)
	assert.False(t, s.IsStructured)
}

func TestSnapToLadder(t *testing.T) {
	cases := map[int]int{
		95: 90,
		90: 90,
		89: 80,
		61: 60,
		35: 30,
		9:  0,
		0:  0,
	}
	for raw, want := range cases {
		assert.Equal(t, want, snapToLadder(raw), "raw %d", raw)
	}
}
