package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type OwnerType string

const (
	OwnerBusiness OwnerType = "business"
	OwnerEmployee OwnerType = "employee"
)

// DayOfWeek is stored by name ("Monday" .. "Sunday").
type DayOfWeek string

// DayOfWeekFor returns the weekday of t in t's own location.
func DayOfWeekFor(t time.Time) DayOfWeek {
	return DayOfWeek(t.Weekday().String())
}

// ParseDayOfWeek accepts a weekday name in any letter case.
func ParseDayOfWeek(s string) (DayOfWeek, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(s)) {
			return DayOfWeek(d.String()), true
		}
	}
	return "", false
}

// WorkingHours is one opening window of a business or an employee on a weekday.
type WorkingHours struct {
	ID        string    `bson:"id" json:"id"`
	OwnerType OwnerType `bson:"owner_type" json:"ownerType"`
	OwnerID   string    `bson:"owner_id" json:"ownerId"`
	DayOfWeek DayOfWeek `bson:"day_of_week" json:"dayOfWeek"`
	Start     int       `bson:"start" json:"-"` // minutes from midnight
	End       int       `bson:"end" json:"-"`   // minutes from midnight, exclusive
}

func (w WorkingHours) MarshalJSON() ([]byte, error) {
	type alias WorkingHours
	return json.Marshal(struct {
		alias
		Start string `json:"start"`
		End   string `json:"end"`
	}{alias(w), FormatClock(w.Start), FormatClock(w.End)})
}

// Window anchors the record on the calendar date of day as wall-clock times in day's location.
func (w WorkingHours) Window(day time.Time) (open, close time.Time) {
	y, m, d := day.Date()
	loc := day.Location()
	return time.Date(y, m, d, 0, w.Start, 0, 0, loc), time.Date(y, m, d, 0, w.End, 0, 0, loc)
}

type WorkingHoursInput struct {
	DayOfWeek string `json:"dayOfWeek" binding:"required"`
	Start     string `json:"start" binding:"required"`
	End       string `json:"end" binding:"required"`
}

type SetWorkingHoursRequest struct {
	WorkingHours []WorkingHoursInput `json:"workingHours" binding:"dive"`
}

// ParseClock parses exactly "HH:MM" into minutes from midnight. "24:00" is accepted as end of day.
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "24:00" {
		return 24 * 60, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != len("15:04") {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
