package script

// summarize derives run-level metrics from a trace.
func summarize(snaps []Snapshot, arrays, reallocations, diagnostics int) map[string]float64 {
	peak := 0
	for _, s := range snaps {
		peak = max(peak, s.Capacity)
	}

	m := map[string]float64{
		"steps":         float64(len(snaps)),
		"arrays":        float64(arrays),
		"reallocations": float64(reallocations),
		"peak_capacity": float64(peak),
		"diagnostics":   float64(diagnostics),
	}
	if n := len(snaps); n > 0 && snaps[n-1].Capacity > 0 {
		m["final_utilization"] = float64(snaps[n-1].NumUsed) / float64(snaps[n-1].Capacity)
	}
	return m
}
