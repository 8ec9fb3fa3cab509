package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// WorkBreak is a sub-interval of a working day that is excluded from
// bookability (lunch, cleaning, etc.).
type WorkBreak struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// WorkDay is one recurring weekly availability window. DayOfWeek follows
// time.Weekday numbering (0 = Sunday). Times are specialist-local wall-clock
// "HH:MM" strings.
type WorkDay struct {
	DayOfWeek int         `json:"dayOfWeek"`
	StartTime string      `json:"startTime"`
	EndTime   string      `json:"endTime"`
	Breaks    []WorkBreak `json:"breaks"`
}

// WorkSchedule holds at most one WorkDay per day of week.
type WorkSchedule []WorkDay

// ForWeekday returns the WorkDay covering the given weekday, if any.
func (s WorkSchedule) ForWeekday(day int) (WorkDay, bool) {
	for _, wd := range s {
		if wd.DayOfWeek == day {
			return wd, true
		}
	}
	return WorkDay{}, false
}

// MinuteOfDay converts a wall-clock "HH:MM" string to minutes since
// midnight. A trailing seconds component ("HH:MM:SS", as some upstream
// sources store it) is accepted and ignored.
func MinuteOfDay(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	if hours < 0 || hours > 23 || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("time %q out of range", t)
	}
	return hours*60 + mins, nil
}

// FormatMinute converts minutes since midnight back to "HH:MM".
func FormatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
