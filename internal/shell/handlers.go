package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tartampluch/go-phonebook/internal/calendar"
	"github.com/tartampluch/go-phonebook/internal/card"
	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/tartampluch/go-phonebook/internal/contact"
)

var errInvalidDays = errors.New("invalid number of days")

type handlerFunc func(ctx context.Context, s *Session, args []string) (string, error)

type route struct {
	handle    handlerFunc
	needsName bool
}

var routes = map[string]route{
	config.CmdHello:          {handle: hello},
	config.CmdHelp:           {handle: help},
	config.CmdAdd:            {handle: addContact, needsName: true},
	config.CmdAddPhone:       {handle: addPhone, needsName: true},
	config.CmdChangePhone:    {handle: changePhone, needsName: true},
	config.CmdRemovePhone:    {handle: removePhone, needsName: true},
	config.CmdPhone:          {handle: listPhones, needsName: true},
	config.CmdBirthday:       {handle: setBirthday, needsName: true},
	config.CmdDaysToBirthday: {handle: daysToBirthday, needsName: true},
	config.CmdEmail:          {handle: setEmail, needsName: true},
	config.CmdAddress:        {handle: setAddress, needsName: true},
	config.CmdShow:           {handle: showContact, needsName: true},
	config.CmdShowAll:        {handle: showAll},
	config.CmdDelete:         {handle: deleteContact, needsName: true},
	config.CmdBirthdays:      {handle: upcomingBirthdays},
	config.CmdSearch:         {handle: search, needsName: true},
	config.CmdVCard:          {handle: exportVCard, needsName: true},
	config.CmdImport:         {handle: importVCard, needsName: true},
	config.CmdCalendar:       {handle: exportCalendar},
	config.CmdExit:           {handle: farewell},
	config.CmdClose:          {handle: farewell},
	config.CmdGoodBye:        {handle: farewell},
}

// invalidFormatKeys names the message shown when a command's input fails validation.
var invalidFormatKeys = map[string]string{
	config.CmdAdd:         config.TKeyErrInvalidName,
	config.CmdAddPhone:    config.TKeyErrInvalidPhone,
	config.CmdChangePhone: config.TKeyErrInvalidPhone,
	config.CmdBirthday:    config.TKeyErrInvalidBirthday,
	config.CmdEmail:       config.TKeyErrInvalidEmail,
	config.CmdAddress:     config.TKeyErrInvalidAddress,
}

func nameOf(args []string) string { return strings.Join(args, " ") }

func hello(_ context.Context, s *Session, _ []string) (string, error) {
	return s.msg(config.TKeyGreeting, nil), nil
}

func help(_ context.Context, s *Session, _ []string) (string, error) {
	return s.msg(config.TKeyHelp, nil), nil
}

func farewell(_ context.Context, s *Session, _ []string) (string, error) {
	s.done = true
	return s.msg(config.TKeyFarewell, nil), nil
}

// addContact handles "add NAME [PHONE]". A trailing argument that parses as
// a phone number is taken as the initial phone, the rest is the name.
func addContact(_ context.Context, s *Session, args []string) (string, error) {
	name, phone := nameOf(args), ""
	if len(args) > 1 {
		if _, err := contact.NewPhone(args[len(args)-1]); err == nil {
			name, phone = nameOf(args[:len(args)-1]), args[len(args)-1]
		}
	}

	if s.Book.Has(name) {
		return s.msg(config.TKeyContactExists, map[string]any{"Name": name}), nil
	}

	rec, err := contact.NewRecord(name, contact.WithPhone(phone))
	if err != nil {
		return "", err
	}
	s.Book.Insert(rec)
	return s.msg(config.TKeyContactAdded, map[string]any{"Name": rec.Name().String()}), nil
}

func addPhone(_ context.Context, s *Session, args []string) (string, error) {
	name := nameOf(args)
	rec, err := s.Book.Lookup(name)
	if err != nil {
		return "", err
	}

	raw, err := s.ask(config.TKeyPromptPhone)
	if err != nil {
		return "", err
	}
	phone, err := rec.AddPhone(raw)
	if err != nil {
		return "", err
	}
	return s.msg(config.TKeyPhoneAdded, map[string]any{"Name": name, "Phone": phone.String()}), nil
}

func changePhone(_ context.Context, s *Session, args []string) (string, error) {
	name := nameOf(args)
	rec, err := s.Book.Lookup(name)
	if err != nil {
		return "", err
	}
	if len(rec.Phones()) == 0 {
		return s.msg(config.TKeyPhoneListEmpty, map[string]any{"Name": name}), nil
	}

	raw, err := s.ask(config.TKeyPromptNewPhone)
	if err != nil {
		return "", err
	}
	// Fail before asking for an index the user would type for nothing.
	if _, err := contact.NewPhone(raw); err != nil {
		return "", err
	}

	for {
		index, cancelled, err := s.chooseIndex(name, rec, config.TKeyPromptReplace)
		if err != nil || cancelled {
			return s.cancelled(cancelled), err
		}

		old, repl, err := rec.ReplacePhone(index, raw)
		if errors.Is(err, contact.ErrIndexOutOfRange) {
			s.println(s.retryHint())
			continue
		}
		if err != nil {
			return "", err
		}
		return s.msg(config.TKeyPhoneReplaced, map[string]any{"Name": name, "Old": old.String(), "New": repl.String()}), nil
	}
}

func removePhone(_ context.Context, s *Session, args []string) (string, error) {
	name := nameOf(args)
	rec, err := s.Book.Lookup(name)
	if err != nil {
		return "", err
	}
	if len(rec.Phones()) == 0 {
		return s.msg(config.TKeyPhoneListEmpty, map[string]any{"Name": name}), nil
	}

	for {
		index, cancelled, err := s.chooseIndex(name, rec, config.TKeyPromptRemove)
		if err != nil || cancelled {
			return s.cancelled(cancelled), err
		}

		phone, err := rec.RemovePhone(index)
		if errors.Is(err, contact.ErrIndexOutOfRange) {
			s.println(s.retryHint())
			continue
		}
		if err != nil {
			return "", err
		}
		return s.msg(config.TKeyPhoneRemoved, map[string]any{"Name": name, "Phone": phone.String()}), nil
	}
}

// chooseIndex shows the phone list and asks for a 1-based index until the
// answer is a number. config.IndexCancel reports cancelled.
func (s *Session) chooseIndex(name string, rec *contact.Record, promptKey string) (int, bool, error) {
	for {
		s.println(s.phoneList(name, rec))

		raw, err := s.ask(promptKey)
		if err != nil {
			return 0, false, err
		}
		index, err := strconv.Atoi(raw)
		if err != nil {
			s.println(s.retryHint())
			continue
		}
		if index == config.IndexCancel {
			return 0, true, nil
		}
		return index, false, nil
	}
}

func (s *Session) retryHint() string {
	return "\n" + s.msg(config.TKeyChooseFromList, nil) + "\n" + s.msg(config.TKeyCancelHint, nil)
}

func (s *Session) cancelled(ok bool) string {
	if !ok {
		return ""
	}
	return s.msg(config.TKeyCancelled, nil)
}

func (s *Session) phoneList(name string, rec *contact.Record) string {
	phones := rec.Phones()
	if len(phones) == 0 {
		return s.msg(config.TKeyPhoneListEmpty, map[string]any{"Name": name})
	}

	var b strings.Builder
	b.WriteString(s.msg(config.TKeyPhoneList, map[string]any{"Name": name}))
	for i, p := range phones {
		b.WriteString("\n\t")
		fmt.Fprintf(&b, config.FormatPhoneEntry, i+1, p.String())
	}
	return b.String()
}

func listPhones(_ context.Context, s *Session, args []string) (string, error) {
	name := nameOf(args)
	rec, err := s.Book.Lookup(name)
	if err != nil {
		return "", err
	}
	return s.phoneList(name, rec), nil
}

func setBirthday(_ context.Context, s *Session, args []string) (string, error) {
	name := nameOf(args)
	rec, err := s.Book.Lookup(name)
	if err != nil {
		return "", err
	}

	raw, err := s.ask(config.TKeyPromptBirthday)
	if err != nil {
		return "", err
	}
	b, err := rec.ChangeBirthday(raw)
	if err != nil {
		return "", err
	}
	return s.msg(config.TKeyBirthdaySet, map[string]any{"Name": name, "Birthday": b.String()}), nil
}

func daysToBirthday(_ context.Context, s *Session, args []string) (string, error) {
	name := nameOf(args)
	rec, err := s.Book.Lookup(name)
	if err != nil {
		return "", err
	}

	days, ok := rec.DaysToBirthday(s.Clock.Now())
	switch {
	case !ok:
		return s.msg(config.TKeyNoBirthday, map[string]any{"Name": name}), nil
	case days == 0:
		return s.msg(config.TKeyBirthdayToday, map[string]any{"Name": name}), nil
	default:
		return s.plural(config.TKeyDaysToBirthday, days, map[string]any{"Name": name, "Count": days}), nil
	}
}

func setEmail(_ context.Context, s *Session, args []string) (string, error) {
	name := nameOf(args)
	rec, err := s.Book.Lookup(name)
	if err != nil {
		return "", err
	}

	raw, err := s.ask(config.TKeyPromptEmail)
	if err != nil {
		return "", err
	}
	e, err := rec.ChangeEmail(raw)
	if err != nil {
		return "", err
	}
	return s.msg(config.TKeyEmailSet, map[string]any{"Name": name, "Email": e.String()}), nil
}

func setAddress(_ context.Context, s *Session, args []string) (string, error) {
	name := nameOf(args)
	rec, err := s.Book.Lookup(name)
	if err != nil {
		return "", err
	}

	raw, err := s.ask(config.TKeyPromptAddress)
	if err != nil {
		return "", err
	}
	a, err := rec.ChangeAddress(raw)
	if err != nil {
		return "", err
	}
	return s.msg(config.TKeyAddressSet, map[string]any{"Name": name, "Address": a.String()}), nil
}

func showContact(_ context.Context, s *Session, args []string) (string, error) {
	rec, err := s.Book.Lookup(nameOf(args))
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(rec.Format(), "\n"), nil
}

func showAll(_ context.Context, s *Session, _ []string) (string, error) {
	if s.Book.Len() == 0 {
		return s.msg(config.TKeyDirectoryEmpty, nil), nil
	}

	var b strings.Builder
	for _, rec := range s.Book.Records() {
		b.WriteString(rec.Format())
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func deleteContact(_ context.Context, s *Session, args []string) (string, error) {
	rec, err := s.Book.Remove(nameOf(args))
	if err != nil {
		return "", err
	}
	return s.msg(config.TKeyContactDeleted, map[string]any{"Name": rec.Name().String()}), nil
}

func upcomingBirthdays(_ context.Context, s *Session, args []string) (string, error) {
	days := config.DefaultUpcomingDays
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return "", fmt.Errorf("%w: %q", errInvalidDays, args[0])
		}
		days = n
	}

	entries := s.Book.Upcoming(s.Clock.Now(), days)
	if len(entries) == 0 {
		return s.msg(config.TKeyNoUpcoming, map[string]any{"Days": days}), nil
	}

	var b strings.Builder
	b.WriteString(s.msg(config.TKeyUpcomingHeader, map[string]any{"Days": days}))
	for _, e := range entries {
		b.WriteString("\n\t")
		b.WriteString(s.msg(config.TKeyUpcomingEntry, map[string]any{
			"Name": e.Record.Name().String(),
			"Date": e.Next.Format(config.DateFormatDisplay),
			"Days": e.Days,
		}))
	}
	return b.String(), nil
}

func search(_ context.Context, s *Session, args []string) (string, error) {
	query := nameOf(args)
	found := s.Book.Search(query)
	if len(found) == 0 {
		return s.msg(config.TKeyNoMatches, map[string]any{"Query": query}), nil
	}

	var b strings.Builder
	for _, rec := range found {
		b.WriteString(rec.Format())
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func exportVCard(_ context.Context, s *Session, args []string) (string, error) {
	rec, err := s.Book.Lookup(nameOf(args))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := card.Encode(&buf, rec); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\r\n"), nil
}

// importVCard adds the contacts of a vCard file. Contacts whose name is
// already in the directory are left untouched and counted as skipped.
func importVCard(ctx context.Context, s *Session, args []string) (string, error) {
	path := nameOf(args)
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrVCardOpen, err)
	}
	defer func() { _ = f.Close() }()

	records, stats, err := card.Decode(ctx, f)
	if err != nil {
		return "", err
	}

	imported, skipped := 0, stats.Skipped
	for _, rec := range records {
		if s.Book.Has(rec.Name().String()) {
			skipped++
			continue
		}
		s.Book.Insert(rec)
		imported++
	}
	return s.plural(config.TKeyImported, imported, map[string]any{"Count": imported}) +
		", " + s.plural(config.TKeySkipped, skipped, map[string]any{"Count": skipped}), nil
}

// exportCalendar handles "calendar [TRIGGER]". The optional trigger adds a
// reminder to every event, e.g. "-P1D" for the day before.
func exportCalendar(ctx context.Context, s *Session, args []string) (string, error) {
	trigger := ""
	if len(args) > 0 {
		t, err := calendar.ParseTrigger(args[0])
		if err != nil {
			return "", err
		}
		trigger = t
	}

	ics, today, err := s.Calendar.Generate(ctx, s.Book.Records(), trigger)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(ics), "\r\n") + "\n" +
		s.plural(config.TKeyCalendarToday, today, map[string]any{"Count": today}), nil
}
