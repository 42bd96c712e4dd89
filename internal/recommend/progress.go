package recommend

// Phase identifies a stage of the recommendation pipeline. Phases
// advance strictly forward; a run never revisits an earlier phase.
type Phase int

const (
	// PhaseInit covers deck analysis before any sourcing starts.
	PhaseInit Phase = iota
	// PhaseStaples is format-staple sourcing.
	PhaseStaples
	// PhaseArchetype is archetype-fit sourcing.
	PhaseArchetype
	// PhaseSynergy is thematic synergy sourcing.
	PhaseSynergy
	// PhaseCurve is curve-gap sourcing.
	PhaseCurve
	// PhaseFinalize covers dedup, ranking and ownership annotation.
	PhaseFinalize
	// PhaseDone means the result is complete.
	PhaseDone
)

// Label returns the user-facing description of a phase.
func (p Phase) Label() string {
	switch p {
	case PhaseInit:
		return "Analyzing deck"
	case PhaseStaples:
		return "Finding format staples"
	case PhaseArchetype:
		return "Matching archetype"
	case PhaseSynergy:
		return "Detecting synergies"
	case PhaseCurve:
		return "Filling curve gaps"
	case PhaseFinalize:
		return "Ranking results"
	case PhaseDone:
		return "Done"
	default:
		return "Working"
	}
}

// ProgressFunc receives pipeline progress: the phase label, how many
// candidates have been gathered so far out of the total the sourcing
// strategies are expected to yield, and a snapshot of the partial
// results. The snapshot is a copy; callers may retain it.
type ProgressFunc func(label string, count, total int, partial []SmartRecommendation)

// progressReporter tracks the current phase and guards against
// out-of-order reporting. A nil callback disables reporting entirely.
type progressReporter struct {
	fn        ProgressFunc
	phase     Phase
	total     int
	lastCount int
}

func newProgressReporter(fn ProgressFunc, total int) *progressReporter {
	return &progressReporter{fn: fn, phase: PhaseInit, total: total}
}

// advance moves to the given phase and reports it. Requests to move
// backwards are ignored, and reported counts never decrease, so
// callbacks always observe monotonic progress even after dedup shrinks
// the candidate list.
func (r *progressReporter) advance(phase Phase, partial []SmartRecommendation) {
	if phase < r.phase {
		return
	}
	r.phase = phase
	if r.fn == nil {
		return
	}

	count := len(partial)
	if count > r.total {
		count = r.total
	}
	if count < r.lastCount {
		count = r.lastCount
	}
	r.lastCount = count

	snapshot := make([]SmartRecommendation, len(partial))
	copy(snapshot, partial)
	r.fn(phase.Label(), count, r.total, snapshot)
}
