package model

import "time"

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// TimeLayout is the wire and storage format for times of day.
const TimeLayout = "15:04"

// ValidDate reports whether s is a well-formed calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidTimeOfDay reports whether s is a well-formed HH:MM time.
func ValidTimeOfDay(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// Today returns the current calendar date in wire format.
func Today() string {
	return time.Now().Format(DateLayout)
}
