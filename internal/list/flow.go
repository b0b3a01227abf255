package list

import (
	"fmt"
	"time"

	"github.com/easyshopbd/easyshop/internal/model"
)

// TimeOfDay is minutes since local midnight.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" (24-hour).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Window is an inclusive [Start, End] time-of-day interval. A window with
// Start > End (crossing midnight) never matches; overnight semantics are
// pending product clarification.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (w Window) Contains(t TimeOfDay) bool {
	return w.Start <= t && t <= w.End
}

// Tag returns the status text of the first rule, in the given order,
// whose window contains createdAt's time-of-day in loc. Windows may
// overlap or leave gaps; first match wins, no match means no tag. Rules
// with malformed times are skipped.
func Tag(createdAt time.Time, loc *time.Location, rules []model.DeliveryFlow) (string, bool) {
	local := createdAt.In(loc)
	tod := TimeOfDay(local.Hour()*60 + local.Minute())
	for _, rule := range rules {
		start, err := ParseTimeOfDay(rule.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseTimeOfDay(rule.EndTime)
		if err != nil {
			continue
		}
		if (Window{start, end}).Contains(tod) {
			return rule.StatusText, true
		}
	}
	return "", false
}
