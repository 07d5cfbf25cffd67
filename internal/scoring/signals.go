// Package scoring implements the deterministic assessment fallback: per-answer
// content signals, the session-level heuristic scorer, and the per-question
// feedback tiers. Nothing here performs I/O; every function is a pure function
// of its inputs so repeated runs over the same session are bit-identical.
package scoring

import "strings"

// NotAnsweredSentinel marks a question the candidate skipped. The transcription
// layer and the frontend both use this exact value.
const NotAnsweredSentinel = "No answer"

// Signals is the quality-signal bundle derived from a single answer.
type Signals struct {
	Percentage       int
	IsDetailed       bool
	IsGood           bool
	IsBasic          bool
	TermHits         int
	HasExamples      bool
	HasCausalExplain bool
	HasComparison    bool
	IsStructured     bool
}

// percentageLadder quantizes raw percentages so near-identical answers render
// the same score. Snapping is always downward.
var percentageLadder = []int{90, 80, 70, 60, 50, 40, 30, 20, 10, 0}

// Term hit contribution is capped so a long answer can't inflate its score by
// repeating the same keyword.
const (
	termHitPoints   = 5
	termPointsCap   = 20
	examplesBonus   = 15
	causalBonus     = 12
	comparisonBonus = 8
	structureBonus  = 5
)

var specialtyTerms = map[string][]string{
	"frontend": {
		"react", "vue", "angular", "dom", "component", "hook", "state",
		"props", "css", "javascript", "typescript", "render", "bundle",
		"webpack", "vite", "accessibility", "responsive",
	},
	"backend": {
		"api", "database", "sql", "index", "cache", "queue", "transaction",
		"microservice", "rest", "grpc", "authentication", "scaling",
		"latency", "migration", "orm", "redis", "postgres",
	},
	"fullstack": {
		"api", "react", "database", "component", "rest", "sql", "frontend",
		"backend", "deployment", "cache", "authentication", "typescript",
	},
	"devops": {
		"docker", "kubernetes", "ci", "cd", "pipeline", "terraform",
		"ansible", "monitoring", "prometheus", "deployment", "container",
		"infrastructure", "rollback", "helm", "cloud",
	},
	"data": {
		"sql", "pandas", "model", "dataset", "pipeline", "etl", "metric",
		"regression", "feature", "training", "spark", "warehouse",
		"hypothesis", "visualization",
	},
	"mobile": {
		"ios", "android", "swift", "kotlin", "flutter", "react native",
		"lifecycle", "push", "offline", "store", "widget", "navigation",
	},
	"qa": {
		"test", "automation", "selenium", "regression", "coverage",
		"bug", "scenario", "assertion", "ci", "smoke", "integration",
		"boundary", "mock",
	},
	"design": {
		"figma", "prototype", "wireframe", "usability", "layout", "grid",
		"typography", "accessibility", "user flow", "research", "persona",
	},
	"product": {
		"roadmap", "backlog", "metric", "stakeholder", "mvp", "hypothesis",
		"retention", "churn", "a/b", "priorit", "discovery", "user story",
	},
}

// genericTerms is used when the specialty key is unknown.
var genericTerms = []string{
	"algorithm", "architecture", "framework", "database", "optimization",
	"testing", "process", "experience", "project", "technology", "system",
	"performance", "solution",
}

var examplePhrases = []string{
	"for example", "for instance", "i used", "i built", "i worked",
	"in my project", "project", "experience", "in practice",
}

var causalPhrases = []string{
	"because", "the reason", "this is due", "that's why", "which means",
	"the mechanism", "as a result", "therefore",
}

var comparisonPhrases = []string{
	"the difference", "better than", "worse than", "compared to",
	"advantage", "disadvantage", "in contrast", "unlike", "whereas",
	"trade-off", "tradeoff",
}

// ExtractSignals derives the quality-signal bundle for one answer. An empty or
// not-answered response short-circuits to all-zero signals.
func ExtractSignals(answer, question, specialty string) Signals {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" || strings.EqualFold(trimmed, NotAnsweredSentinel) {
		return Signals{}
	}

	lower := strings.ToLower(trimmed)

	terms, ok := specialtyTerms[normalizeSpecialty(specialty)]
	if !ok {
		terms = genericTerms
	}

	hits := 0
	for _, term := range terms {
		hits += strings.Count(lower, term)
	}

	s := Signals{
		TermHits:         hits,
		HasExamples:      containsAny(lower, examplePhrases),
		HasCausalExplain: containsAny(lower, causalPhrases),
		HasComparison:    containsAny(lower, comparisonPhrases),
		IsStructured:     sentenceCount(trimmed) >= 3,
	}

	raw := 0
	if len(trimmed) > 10 {
		raw += 10
	}
	if len(trimmed) > 50 {
		raw += 10
	}
	if len(trimmed) > 100 {
		raw += 10
	}

	termPoints := hits * termHitPoints
	if termPoints > termPointsCap {
		termPoints = termPointsCap
	}
	raw += termPoints

	if s.HasExamples {
		raw += examplesBonus
	}
	if s.HasCausalExplain {
		raw += causalBonus
	}
	if s.HasComparison {
		raw += comparisonBonus
	}
	if s.IsStructured {
		raw += structureBonus
	}

	s.Percentage = snapToLadder(raw)
	s.IsDetailed = s.Percentage >= 80
	s.IsGood = s.Percentage >= 60
	s.IsBasic = s.Percentage >= 30

	return s
}

func normalizeSpecialty(specialty string) string {
	return strings.ToLower(strings.TrimSpace(specialty))
}

func containsAny(haystack string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(haystack, p) {
			return true
		}
	}
	return false
}

func sentenceCount(text string) int {
	count := 0
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			count++
		}
	}
	if count == 0 && len(strings.TrimSpace(text)) > 0 {
		count = 1
	}
	return count
}

func snapToLadder(raw int) int {
	for _, step := range percentageLadder {
		if raw >= step {
			return step
		}
	}
	return 0
}
