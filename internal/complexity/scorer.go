// Package complexity scores work items for structural complexity and decides
// how far they should be decomposed. The scorer is a deterministic pure
// function of the item text and an injected vocabulary table; richer
// external analysis, when available as a complexity report, takes precedence
// over the heuristic.
package complexity

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/Interstellar-code/taskmaster/internal/task"
)

// Breakdown holds the per-component scores (each 0-100) behind a result.
type Breakdown struct {
	Length    int `json:"length"`
	Keywords  int `json:"keywords"`
	Structure int `json:"structure"`
	Technical int `json:"technical"`
	Scope     int `json:"scope"`
}

// Result is the heuristic assessment of a single item on the 0-100 scale.
type Result struct {
	Score               int       `json:"score"`
	Breakdown           Breakdown `json:"breakdown"`
	Reasons             []string  `json:"reasons"`
	Complex             bool      `json:"complex"`
	RecommendedSubtasks int       `json:"recommendedSubtasks"`
}

// Scorer evaluates items against a fixed vocabulary. Safe for concurrent use.
type Scorer struct {
	cfg       Config
	tiers     []compiledTier
	technical []*regexp.Regexp
	scope     []*regexp.Regexp

	bulletLine   *regexp.Regexp
	numberedLine *regexp.Regexp
	sentenceEnd  *regexp.Regexp
}

type compiledTier struct {
	name     string
	weight   int
	terms    []string
	matchers []*regexp.Regexp
}

// NewScorer validates the configuration and precompiles its vocabulary.
func NewScorer(cfg Config) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scorer{
		cfg:          cfg,
		bulletLine:   regexp.MustCompile(`(?m)^\s*[-*•]\s+`),
		numberedLine: regexp.MustCompile(`(?m)^\s*\d+[.)]\s+`),
		sentenceEnd:  regexp.MustCompile(`[.!?]+`),
	}

	for _, tier := range cfg.KeywordTiers {
		compiled := compiledTier{name: tier.Name, weight: tier.Weight, terms: tier.Terms}
		for _, term := range tier.Terms {
			compiled.matchers = append(compiled.matchers, wordMatcher(term))
		}
		s.tiers = append(s.tiers, compiled)
	}
	for _, term := range cfg.TechnicalTerms {
		s.technical = append(s.technical, wordMatcher(term))
	}
	for _, phrase := range cfg.ScopePhrases {
		s.scope = append(s.scope, wordMatcher(phrase))
	}

	return s, nil
}

// wordMatcher compiles a case-insensitive whole-word matcher for a term.
func wordMatcher(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
}

// Score maps the item's text to a 0-100 complexity score with a component
// breakdown and human-readable reasons. Deterministic and side-effect-free.
func (s *Scorer) Score(item *task.WorkItem) Result {
	text := item.Text()

	var breakdown Breakdown
	var reasons []string

	breakdown.Length = s.lengthScore(text, &reasons)
	breakdown.Keywords = s.keywordScore(text, &reasons)
	breakdown.Structure = s.structureScore(text, &reasons)
	breakdown.Technical = s.technicalScore(text, &reasons)
	breakdown.Scope = s.scopeScore(text, &reasons)

	weighted := breakdown.Length*s.cfg.Weights.Length +
		breakdown.Keywords*s.cfg.Weights.Keywords +
		breakdown.Structure*s.cfg.Weights.Structure +
		breakdown.Technical*s.cfg.Weights.Technical +
		breakdown.Scope*s.cfg.Weights.Scope
	score := int(math.Round(float64(weighted) / 100))

	return Result{
		Score:               score,
		Breakdown:           breakdown,
		Reasons:             reasons,
		Complex:             score >= s.cfg.Threshold,
		RecommendedSubtasks: RecommendedSubtasks(score),
	}
}

// RecommendedSubtasks is the monotone fan-out step function over the
// heuristic 0-100 score.
func RecommendedSubtasks(score int) int {
	switch {
	case score >= 90:
		return 6
	case score >= 80:
		return 5
	case score >= 70:
		return 4
	default:
		return 3
	}
}

func (s *Scorer) lengthScore(text string, reasons *[]string) int {
	chars := len(strings.TrimSpace(text))
	for _, bucket := range s.cfg.LengthBuckets {
		if bucket.MaxChars == 0 || chars < bucket.MaxChars {
			if bucket.Points >= 70 {
				*reasons = append(*reasons,
					fmt.Sprintf("Substantial description (%d characters)", chars))
			}
			return bucket.Points
		}
	}
	return 0
}

func (s *Scorer) keywordScore(text string, reasons *[]string) int {
	total := 0
	for _, tier := range s.tiers {
		count := 0
		var matched []string
		for i, re := range tier.matchers {
			if n := len(re.FindAllStringIndex(text, -1)); n > 0 {
				count += n
				matched = append(matched, tier.terms[i])
			}
		}
		if count == 0 {
			continue
		}
		total += count * tier.weight * 10
		*reasons = append(*reasons,
			fmt.Sprintf("Matched %d %s-class keyword(s): %s",
				count, tier.name, strings.Join(matched, ", ")))
	}
	return capScore(total)
}

func (s *Scorer) structureScore(text string, reasons *[]string) int {
	sentences := 0
	for _, fragment := range s.sentenceEnd.Split(text, -1) {
		if strings.TrimSpace(fragment) != "" {
			sentences++
		}
	}
	bullets := len(s.bulletLine.FindAllStringIndex(text, -1))
	numbered := len(s.numberedLine.FindAllStringIndex(text, -1))

	if sentences > 1 {
		*reasons = append(*reasons, fmt.Sprintf("Contains %d sentences", sentences))
	}
	if bullets > 0 {
		*reasons = append(*reasons, fmt.Sprintf("Contains %d bullet point(s)", bullets))
	}
	if numbered > 0 {
		*reasons = append(*reasons, fmt.Sprintf("Contains %d numbered step(s)", numbered))
	}

	return capScore(sentences*15 + bullets*20 + numbered*20)
}

func (s *Scorer) technicalScore(text string, reasons *[]string) int {
	var matched []string
	for i, re := range s.technical {
		if re.MatchString(text) {
			matched = append(matched, s.cfg.TechnicalTerms[i])
		}
	}
	if len(matched) > 0 {
		*reasons = append(*reasons,
			fmt.Sprintf("References technical domains: %s", strings.Join(matched, ", ")))
	}
	return capScore(len(matched) * 25)
}

func (s *Scorer) scopeScore(text string, reasons *[]string) int {
	count := 0
	for _, re := range s.scope {
		count += len(re.FindAllStringIndex(text, -1))
	}
	if count > 0 {
		*reasons = append(*reasons,
			fmt.Sprintf("Broad scope: %d connective phrase(s) suggest multiple requirements", count))
	}
	return capScore(count * 20)
}

func capScore(n int) int {
	if n > 100 {
		return 100
	}
	return n
}
