// Package ics renders canonical course events as an iCalendar feed.
package ics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"github.com/coursetrack/syllabus-tracker/internal/entity"
)

const (
	prodID     = "-//Course Track//Assignment Extractor//EN"
	dateLayout = "20060102"
)

// FromEvents converts events into an ICS calendar string. Events without a
// due date are skipped. Dates are shifted forward one day to compensate for
// the LMS timezone/display offset observed with eClass exports.
func FromEvents(events []entity.CourseEvent, courseName string) (string, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, prodID)
	cal.Props.SetText(ical.PropVersion, "2.0")
	calName := ical.NewProp("X-WR-CALNAME")
	calName.Value = courseName
	cal.Props.Set(calName)
	cal.Props.SetText("X-WR-TIMEZONE", "UTC")

	for _, e := range events {
		if e.DueDate == nil {
			continue
		}
		due, err := time.ParseInLocation("2006-01-02", *e.DueDate, time.UTC)
		if err != nil {
			continue
		}
		shifted := due.AddDate(0, 0, 1)

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%s@coursetrack", e.Title, *e.DueDate))
		event.Props.SetText(ical.PropSummary, e.Title)
		event.Props.SetText(ical.PropDescription, "Assignment due: "+e.Title)
		event.Props.SetText(ical.PropStatus, "CONFIRMED")
		event.Props.SetText(ical.PropCategories, "Assignment")
		event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
		event.Props.Set(allDayProp(ical.PropDateTimeStart, shifted))
		event.Props.Set(allDayProp(ical.PropDateTimeEnd, shifted))

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("encode calendar: %w", err)
	}
	return buf.String(), nil
}

// allDayProp builds a VALUE=DATE property for all-day events.
func allDayProp(name string, t time.Time) *ical.Prop {
	p := ical.NewProp(name)
	p.SetValueType(ical.ValueDate)
	p.Value = t.Format(dateLayout)
	return p
}
