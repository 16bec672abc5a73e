package synth

import "math"

const (
	baseProcessingMinutes = 15.0
	doctorThroughput      = 3
	staffThroughput       = 2

	// MinWaitMinutes and MaxWaitMinutes bound every estimate.
	MinWaitMinutes = 5
	MaxWaitMinutes = 180
)

// TimeOfDayFactor scales the base processing time by how busy the hour
// usually is: morning and afternoon peaks are slower, small hours faster.
func TimeOfDayFactor(hour int) float64 {
	switch {
	case hour >= 8 && hour <= 11:
		return 1.5
	case hour >= 14 && hour <= 17:
		return 1.3
	case hour >= 0 && hour <= 5:
		return 0.7
	}
	return 1.0
}

// EstimateWaitTime returns the expected wait in minutes for a patient arriving
// at hour when sameHourCount patients already arrived in that hour. Capacity
// is three patients per doctor and two per staff member.
func EstimateWaitTime(hour, sameHourCount, doctorCount, staffCount int) int {
	capacity := doctorCount*doctorThroughput + staffCount*staffThroughput
	if capacity <= 0 {
		// Nobody on shift: any queue saturates, an empty one does not.
		if sameHourCount > 0 {
			return MaxWaitMinutes
		}
		return MinWaitMinutes
	}
	load := float64(sameHourCount) / float64(capacity)
	wait := int(math.Round(baseProcessingMinutes * load * TimeOfDayFactor(hour)))
	return clamp(wait, MinWaitMinutes, MaxWaitMinutes)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
