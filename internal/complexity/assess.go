package complexity

import (
	"strings"

	"github.com/Interstellar-code/taskmaster/internal/domain"
	"github.com/Interstellar-code/taskmaster/internal/task"
)

// Method records which scoring path produced an assessment.
type Method string

const (
	// MethodAnalysis means a rich external complexity report was used.
	MethodAnalysis Method = "analysis"
	// MethodHeuristic means the built-in fallback scorer was used.
	MethodHeuristic Method = "heuristic"
)

// Assessment is the unified verdict on one item, normalized to the rich
// 0-10 scale regardless of which method produced it.
type Assessment struct {
	ItemID              domain.ItemID
	Score               float64
	RecommendedSubtasks int
	Reasoning           string
	Method              Method
	Complex             bool
}

// Assess evaluates the item, preferring a fresh complexity report entry over
// the fallback heuristic. A stale or missing entry degrades silently to the
// heuristic path.
func (s *Scorer) Assess(item *task.WorkItem, report *task.ComplexityReport) Assessment {
	if report != nil {
		if entry := report.FreshEntry(item); entry != nil {
			recommended := entry.RecommendedSubtasks
			if recommended <= 0 {
				recommended = RecommendedSubtasks(int(entry.ComplexityScore * 10))
			}
			return Assessment{
				ItemID:              item.ID,
				Score:               entry.ComplexityScore,
				RecommendedSubtasks: recommended,
				Reasoning:           entry.Reasoning,
				Method:              MethodAnalysis,
				Complex:             entry.ComplexityScore >= s.cfg.ReportThreshold,
			}
		}
	}

	result := s.Score(item)
	return Assessment{
		ItemID:              item.ID,
		Score:               float64(result.Score) / 10,
		RecommendedSubtasks: result.RecommendedSubtasks,
		Reasoning:           strings.Join(result.Reasons, "; "),
		Method:              MethodHeuristic,
		Complex:             result.Complex,
	}
}
