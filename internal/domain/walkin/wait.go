package walkin

import "math"

// DefaultServiceMinutes is used when none of the requested services resolve.
const DefaultServiceMinutes = 30

// AverageDuration is the mean of the given service durations, or the
// fallback when there are none.
func AverageDuration(durations []int, fallback int) float64 {
	if len(durations) == 0 {
		return float64(fallback)
	}
	total := 0
	for _, d := range durations {
		total += d
	}
	return float64(total) / float64(len(durations))
}

// EstimateWait spreads the work of the customers ahead across the available
// stylists. With no stylists the whole backlog is the wait.
func EstimateWait(waitingAhead int, avgServiceMinutes float64, availableStylists int) int {
	if waitingAhead <= 0 {
		return 0
	}
	work := float64(waitingAhead) * avgServiceMinutes
	if availableStylists <= 0 {
		return int(math.Ceil(work))
	}
	return int(math.Ceil(work / float64(availableStylists)))
}
