package ctdf

// Calendar exception types as defined by GTFS calendar_dates.txt
const (
	ExceptionTypeAdded   = 1
	ExceptionTypeRemoved = 2
)

// ServiceCalendar maps service id -> date (YYYY-MM-DD) -> exception type
type ServiceCalendar map[string]map[string]int

func (c ServiceCalendar) RunsOn(serviceID string, date string) bool {
	dates, exists := c[serviceID]
	if !exists {
		return false
	}

	return dates[date] == ExceptionTypeAdded
}
