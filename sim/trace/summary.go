package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents     int            `json:"total_events"`
	Dropped         int            `json:"dropped"`
	KindCounts      map[string]int `json:"kind_counts"` // event kind → count
	FirstClock      float64        `json:"first_clock"`
	LastClock       float64        `json:"last_clock"`
	MeanInterval    float64        `json:"mean_interval"` // mean gap between consecutive recorded events
	BusiestParticle int            `json:"busiest_particle"`
	BusiestCount    int            `json:"busiest_count"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields, BusiestParticle -1).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		KindCounts:      make(map[string]int),
		BusiestParticle: -1,
	}
	if st == nil {
		return summary
	}

	summary.TotalEvents = len(st.Events)
	summary.Dropped = st.Dropped
	if len(st.Events) == 0 {
		return summary
	}

	perParticle := make(map[int]int)
	for _, r := range st.Events {
		summary.KindCounts[r.Kind]++
		for _, id := range r.Particles {
			perParticle[id]++
		}
	}
	for id, n := range perParticle {
		// lowest index wins ties so the summary is deterministic
		if n > summary.BusiestCount || (n == summary.BusiestCount && id < summary.BusiestParticle) {
			summary.BusiestParticle, summary.BusiestCount = id, n
		}
	}

	summary.FirstClock = st.Events[0].Clock
	summary.LastClock = st.Events[len(st.Events)-1].Clock
	if len(st.Events) > 1 {
		summary.MeanInterval = (summary.LastClock - summary.FirstClock) / float64(len(st.Events)-1)
	}
	return summary
}
