package domain

// Ingestion phases reported through progress callbacks.
const (
	PhaseExtraction = "extraction"
	PhaseEmbedding  = "embedding"
)

// Progress is a snapshot of ingestion progress. The caller decides how to
// render it; the pipeline only reports.
type Progress struct {
	Phase      string
	Current    int
	Total      int
	Percentage float64
	Message    string
}

// ProgressFunc receives progress snapshots during ingestion. May be nil.
type ProgressFunc func(Progress)

// Report invokes the callback if set, computing the percentage.
func (f ProgressFunc) Report(phase string, current, total int, message string) {
	if f == nil {
		return
	}
	pct := 0.0
	if total > 0 {
		pct = float64(current) / float64(total) * 100
	}
	f(Progress{Phase: phase, Current: current, Total: total, Percentage: pct, Message: message})
}
