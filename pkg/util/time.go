package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const ServiceDateFormat = "2006-01-02"

// ParseClockMinutes converts a HH:MM or HH:MM:SS clock string into minutes since midnight.
// Seconds are floored. Hours past 24 are accepted as GTFS timetables use them for trips
// running after midnight.
func ParseClockMinutes(clock string) (int, bool) {
	seconds, ok := ParseClockSeconds(clock)
	if !ok {
		return 0, false
	}

	return seconds / 60, true
}

// ParseClockSeconds converts a HH:MM or HH:MM:SS clock string into seconds since midnight
func ParseClockSeconds(clock string) (int, bool) {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return 0, false
	}

	parts := strings.Split(clock, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 {
		return 0, false
	}
	seconds := 0
	if len(parts) == 3 {
		seconds, err = strconv.Atoi(parts[2])
		if err != nil || seconds < 0 {
			return 0, false
		}
	}

	return hours*3600 + minutes*60 + seconds, true
}

func FormatClockMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormaliseServiceDate accepts YYYY-MM-DD or the GTFS YYYYMMDD form and returns YYYY-MM-DD
func NormaliseServiceDate(date string) (string, error) {
	date = strings.TrimSpace(date)

	if parsed, err := time.Parse(ServiceDateFormat, date); err == nil {
		return parsed.Format(ServiceDateFormat), nil
	}

	parsed, err := time.Parse("20060102", date)
	if err != nil {
		return "", fmt.Errorf("invalid service date %q", date)
	}

	return parsed.Format(ServiceDateFormat), nil
}
