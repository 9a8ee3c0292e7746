package calendar

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/tartampluch/go-phonebook/internal/contact"
)

// ErrInvalidTrigger reports a reminder trigger that is not an ISO 8601 duration.
var ErrInvalidTrigger = errors.New(config.ErrInvalidTrigger)

// ParseTrigger validates an alarm trigger such as "-P1D" or "-PT15M" and
// returns it in canonical upper case.
func ParseTrigger(raw string) (string, error) {
	prop := ical.NewProp(config.PropTrigger)
	prop.Value = strings.ToUpper(strings.TrimSpace(raw))
	if _, err := prop.Duration(); err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidTrigger, raw, err)
	}
	return prop.Value, nil
}

// Generator renders the birthdays of a set of Records as an iCalendar feed.
type Generator struct {
	Clock contact.Clock // Interface for time mocking.

	// FormatSummary lets the shell inject localized event titles.
	FormatSummary func(name string, age int) string
}

// Generate builds a VCALENDAR holding three yearly events (previous, current
// and next year) per contact with a birthday. A non-empty reminderTrigger
// (ISO 8601 duration such as "-P1D") adds a DISPLAY alarm to each event.
// It returns the encoded calendar and the number of birthdays today.
func (g *Generator) Generate(ctx context.Context, records []*contact.Record, reminderTrigger string) ([]byte, int, error) {
	start := time.Now()

	if reminderTrigger != "" {
		trigger, err := ParseTrigger(reminderTrigger)
		if err != nil {
			return nil, 0, err
		}
		reminderTrigger = trigger
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: Suggest a refresh interval
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Birthdays follow the local calendar date; only DTSTAMP is UTC.
	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	stats := struct{ processed, withBday, today int }{}

	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		stats.processed++

		bday, ok := r.Birthday()
		if !ok {
			continue
		}
		stats.withBday++

		name := r.Name().String()
		birthDate := bday.Date()

		// Deterministic UID generation for stability across exports
		input := fmt.Sprintf(config.FormatHashInput, name, birthDate.Format(time.RFC3339), config.UIDSalt)
		hash := sha256.Sum256([]byte(input))
		uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

		events, isToday := g.createEvents(name, birthDate, reminderTrigger, now, uidBase)
		if isToday {
			stats.today++
			slog.Info(config.MsgBdayToday,
				config.LogKeyComponent, config.CompCalendar,
				config.LogKeyName, name,
				config.LogKeyDOB, birthDate.Format(config.DateFormatFullDash))
		}

		for _, e := range events {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	// An empty VCALENDAR is still a valid feed.
	if len(cal.Children) == 0 {
		g.logSuccess(stats, start)
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	g.logSuccess(stats, start)
	return buf.Bytes(), stats.today, nil
}

// logSuccess logs the final statistics of the generation process.
func (g *Generator) logSuccess(stats struct{ processed, withBday, today int }, start time.Time) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompCalendar,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyCount, stats.processed),
			slog.Int(config.LogKeyFound, stats.withBday),
			slog.Int(config.LogKeyToday, stats.today),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
}

// createEvents generates calendar events for CurrentYear-1, CurrentYear and CurrentYear+1.
// No event is created for a year before the person was born.
func (g *Generator) createEvents(name string, birthDate time.Time, reminderTrigger string, now time.Time, uidBase string) ([]*ical.Event, bool) {
	currentYear := now.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}
	loc := now.Location()

	var events []*ical.Event
	isToday := false

	todayYear, todayMonth, todayDay := now.Date()

	for _, y := range targetYears {
		if y < birthDate.Year() {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))

		age := y - birthDate.Year()

		summary := defaultSummary(name, age)
		if g.FormatSummary != nil {
			summary = g.FormatSummary(name, age)
		}
		event.Props.SetText(config.PropSummary, summary)

		// time.Date moves Feb 29 to March 1st in non-leap years.
		eventDate := time.Date(y, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)

		if y == todayYear && eventDate.Month() == todayMonth && eventDate.Day() == todayDay {
			isToday = true
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		if reminderTrigger != "" {
			addAlarm(event, reminderTrigger, summary)
		}

		events = append(events, event)
	}
	return events, isToday
}

func defaultSummary(name string, age int) string {
	if age == 0 {
		return fmt.Sprintf(config.FallbackSummaryBirth, name)
	}
	return fmt.Sprintf(config.FallbackSummaryAge, name, age)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
