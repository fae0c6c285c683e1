package availability

import "github.com/BruksfildServices01/salon-scheduler/internal/timeutil"

const (
	DefaultSlotStep        = 15
	DefaultServiceDuration = 30
)

type SlotQuery struct {
	TenantID  string
	BranchID  string
	StylistID string
	Date      string
	Time      string
	Duration  int
}

type SlotsInput struct {
	TenantID         string
	BranchID         string
	Date             string
	ServiceIDs       []string
	StylistID        string
	GenderPreference string
}

type TimeSlot struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	StylistID string `json:"stylist_id"`
}

type SlotsResult struct {
	Date     string     `json:"date"`
	Duration int        `json:"duration"`
	Slots    []TimeSlot `json:"slots"`
}

// NormalizeGender maps "any" and blanks to no preference.
func NormalizeGender(g string) string {
	switch g {
	case "", "any", "no_preference":
		return ""
	}
	return g
}

func ToTimeSlots(candidates []timeutil.CandidateSlot, duration int) []TimeSlot {
	out := make([]TimeSlot, 0, len(candidates))
	for _, c := range candidates {
		end, _ := timeutil.AddMinutes(c.Time, duration)
		out = append(out, TimeSlot{Start: c.Time, End: end, StylistID: c.StylistID})
	}
	return out
}

// StylistQuery asks which stylists are free for one slot.
type StylistQuery struct {
	TenantID         string
	BranchID         string
	Date             string
	Time             string
	Duration         int
	GenderPreference string
}
