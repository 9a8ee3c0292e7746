package contact

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tartampluch/go-phonebook/internal/config"
)

// Name identifies a contact. It is the directory key and never changes.
type Name struct {
	value string
}

// NewName collapses every run of whitespace in raw to one space, trims the
// ends and rejects blank names.
func NewName(raw string) (Name, error) {
	v := NormalizeName(raw)
	if v == "" {
		return Name{}, fmt.Errorf("%w: %s", ErrInvalidFormat, config.ErrEmptyName)
	}
	return Name{value: v}, nil
}

func (n Name) String() string { return n.value }

// NormalizeName returns the canonical spelling NewName stores, so that
// lookups with differently spaced input find the same contact.
func NormalizeName(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// Phone is a normalized phone number: digits with an optional leading '+'.
// Two phones are equal when their normalized values are equal, so the
// struct can be compared with ==.
type Phone struct {
	value string
}

// NewPhone strips the separators listed in config.PhoneSeparators and
// requires between config.PhoneMinDigits and config.PhoneMaxDigits digits.
func NewPhone(raw string) (Phone, error) {
	s := strings.TrimSpace(raw)

	var b strings.Builder
	digits := 0
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			digits++
		case strings.ContainsRune(config.PhoneSeparators, r):
			continue
		case i == 0 && string(r) == config.PhonePlusPrefix:
			b.WriteRune(r)
		default:
			return Phone{}, fmt.Errorf("%w: %s %q in %q", ErrInvalidFormat, config.ErrPhoneCharacter, r, raw)
		}
	}

	if digits < config.PhoneMinDigits || digits > config.PhoneMaxDigits {
		return Phone{}, fmt.Errorf("%w: %s: %q", ErrInvalidFormat, config.ErrPhoneDigits, raw)
	}
	return Phone{value: b.String()}, nil
}

func (p Phone) String() string { return p.value }

// Birthday is a calendar date stored at midnight UTC.
type Birthday struct {
	date time.Time
}

// birthdayLayouts lists the formats a user may type.
var birthdayLayouts = []string{
	config.DateFormatFullDash,
	config.DateFormatFullDot,
	config.DateFormatFullBasic,
}

// NewBirthday parses raw using the accepted date layouts.
func NewBirthday(raw string) (Birthday, error) {
	v := strings.TrimSpace(raw)
	for _, layout := range birthdayLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return BirthdayFromDate(t), nil
		}
	}
	return Birthday{}, fmt.Errorf("%w: %s: %q", ErrInvalidFormat, config.ErrDateParse, raw)
}

// BirthdayFromDate keeps only the calendar date of t.
func BirthdayFromDate(t time.Time) Birthday {
	y, m, d := t.Date()
	return Birthday{date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Date returns the stored date at midnight UTC.
func (b Birthday) Date() time.Time { return b.date }

func (b Birthday) String() string { return b.date.Format(config.DateFormatDisplay) }

// NextOccurrence returns the first anniversary on or after the calendar day
// of now, expressed at midnight in now's location.
// Feb 29 falls on March 1st in non-leap years (time.Date normalization).
func (b Birthday) NextOccurrence(now time.Time) time.Time {
	loc := now.Location()
	year := now.Year()

	candidate := time.Date(year, b.date.Month(), b.date.Day(), 0, 0, 0, 0, loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	if candidate.Before(todayStart) {
		candidate = time.Date(year+1, b.date.Month(), b.date.Day(), 0, 0, 0, 0, loc)
	}
	return candidate
}

// DaysUntil counts calendar days from now's date to NextOccurrence.
// The count is done on UTC dates so DST transitions cannot skew it.
func (b Birthday) DaysUntil(now time.Time) int {
	next := b.NextOccurrence(now)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours()) / config.HoursPerDay
}

// Address is a free-form postal address.
type Address struct {
	value string
}

func NewAddress(raw string) (Address, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Address{}, fmt.Errorf("%w: %s", ErrInvalidFormat, config.ErrAddressEmpty)
	}
	if utf8.RuneCountInString(v) > config.MaxAddressLength {
		return Address{}, fmt.Errorf("%w: %s (max %d)", ErrInvalidFormat, config.ErrAddressLength, config.MaxAddressLength)
	}
	return Address{value: v}, nil
}

func (a Address) String() string { return a.value }

// Email is a bare RFC 5322 address such as "jane@example.com".
type Email struct {
	value string
}

// NewEmail rejects display names and anything net/mail cannot parse.
func NewEmail(raw string) (Email, error) {
	v := strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(v)
	if err != nil {
		return Email{}, fmt.Errorf("%w: %s: %q", ErrInvalidFormat, config.ErrEmailParse, raw)
	}
	if addr.Name != "" || addr.Address != v {
		return Email{}, fmt.Errorf("%w: %s: %q", ErrInvalidFormat, config.ErrEmailParse, raw)
	}
	return Email{value: v}, nil
}

func (e Email) String() string { return e.value }
