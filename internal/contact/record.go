package contact

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/tartampluch/go-phonebook/internal/config"
)

// Record holds everything stored for one named contact.
//
// Phones keep insertion order and are addressed by callers with 1-based
// indexes. Birthday, address and email are optional; a nil pointer means
// "not set". Every failing operation leaves the Record unchanged.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
	address  *Address
	email    *Email
}

// Option sets an initial field on a new Record.
type Option func(*Record) error

// WithPhone adds an initial phone. An empty raw value is ignored.
func WithPhone(raw string) Option {
	return func(r *Record) error {
		if raw == "" {
			return nil
		}
		_, err := r.AddPhone(raw)
		return err
	}
}

// WithBirthday sets an initial birthday. An empty raw value is ignored.
func WithBirthday(raw string) Option {
	return func(r *Record) error {
		if raw == "" {
			return nil
		}
		_, err := r.ChangeBirthday(raw)
		return err
	}
}

// WithAddress sets an initial address. An empty raw value is ignored.
func WithAddress(raw string) Option {
	return func(r *Record) error {
		if raw == "" {
			return nil
		}
		_, err := r.ChangeAddress(raw)
		return err
	}
}

// WithEmail sets an initial email. An empty raw value is ignored.
func WithEmail(raw string) Option {
	return func(r *Record) error {
		if raw == "" {
			return nil
		}
		_, err := r.ChangeEmail(raw)
		return err
	}
}

// NewRecord creates a Record for name and applies opts in order.
func NewRecord(name string, opts ...Option) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}

	r := &Record{name: n}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phone sequence in index order.
func (r *Record) Phones() []Phone { return slices.Clone(r.phones) }

func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

func (r *Record) Address() (Address, bool) {
	if r.address == nil {
		return Address{}, false
	}
	return *r.address, true
}

func (r *Record) Email() (Email, bool) {
	if r.email == nil {
		return Email{}, false
	}
	return *r.email, true
}

// AddPhone validates raw and appends it unless an equal phone is present.
func (r *Record) AddPhone(raw string) (Phone, error) {
	phone, err := NewPhone(raw)
	if err != nil {
		return Phone{}, err
	}
	if slices.Contains(r.phones, phone) {
		return Phone{}, fmt.Errorf("%w: %q", ErrDuplicatePhone, phone.value)
	}

	r.phones = append(r.phones, phone)
	return phone, nil
}

// ReplacePhone swaps the phone at the 1-based index for raw.
//
// The replacement is validated and checked against the other phones before
// anything changes. On success the old phone is removed and the new one is
// appended, so the replacement ends up last in the sequence.
func (r *Record) ReplacePhone(index int, raw string) (Phone, Phone, error) {
	i, err := r.slot(index)
	if err != nil {
		return Phone{}, Phone{}, err
	}

	candidate, err := NewPhone(raw)
	if err != nil {
		return Phone{}, Phone{}, err
	}
	for j, p := range r.phones {
		if j != i && p == candidate {
			return Phone{}, Phone{}, fmt.Errorf("%w: %q", ErrDuplicatePhone, candidate.value)
		}
	}

	old := r.phones[i]
	r.phones = slices.Delete(r.phones, i, i+1)
	r.phones = append(r.phones, candidate)
	return old, candidate, nil
}

// RemovePhone deletes and returns the phone at the 1-based index.
func (r *Record) RemovePhone(index int) (Phone, error) {
	i, err := r.slot(index)
	if err != nil {
		return Phone{}, err
	}

	old := r.phones[i]
	r.phones = slices.Delete(r.phones, i, i+1)
	return old, nil
}

// slot converts a 1-based index to a slice position.
// Bounds are checked first so an index of 0 never turns into -1.
func (r *Record) slot(index int) (int, error) {
	if index < 1 || index > len(r.phones) {
		return 0, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(r.phones))
	}
	return index - 1, nil
}

func (r *Record) ChangeBirthday(raw string) (Birthday, error) {
	b, err := NewBirthday(raw)
	if err != nil {
		return Birthday{}, err
	}
	r.birthday = &b
	return b, nil
}

func (r *Record) ChangeEmail(raw string) (Email, error) {
	e, err := NewEmail(raw)
	if err != nil {
		return Email{}, err
	}
	r.email = &e
	return e, nil
}

func (r *Record) ChangeAddress(raw string) (Address, error) {
	a, err := NewAddress(raw)
	if err != nil {
		return Address{}, err
	}
	r.address = &a
	return a, nil
}

// NextBirthday returns the next anniversary relative to now.
func (r *Record) NextBirthday(now time.Time) (time.Time, bool) {
	if r.birthday == nil {
		return time.Time{}, false
	}
	return r.birthday.NextOccurrence(now), true
}

// DaysToBirthday returns the number of days from now until the next
// birthday, 0 when it is today. ok is false when no birthday is set.
func (r *Record) DaysToBirthday(now time.Time) (days int, ok bool) {
	if r.birthday == nil {
		return 0, false
	}
	return r.birthday.DaysUntil(now), true
}

// Format renders the record as one fixed-width table row terminated by a
// newline. Unset fields show config.FieldPlaceholder.
func (r *Record) Format() string {
	phones := make([]string, len(r.phones))
	for i, p := range r.phones {
		phones[i] = p.value
	}

	email, birthday, address := config.FieldPlaceholder, config.FieldPlaceholder, config.FieldPlaceholder
	if r.email != nil {
		email = r.email.value
	}
	if r.birthday != nil {
		birthday = r.birthday.String()
	}
	if r.address != nil {
		address = r.address.value
	}

	cols := []string{
		center(r.name.value, config.ColWidthName),
		center(email, config.ColWidthEmail),
		center(birthday, config.ColWidthBirthday),
		center(strings.Join(phones, config.PhoneJoiner), config.ColWidthPhones),
		center(address, config.ColWidthAddress),
	}
	return config.RowPrefix + strings.Join(cols, config.ColumnSeparator) + config.RowSuffix
}

// center pads s to width display cells, putting the odd cell on the right.
// Values wider than width are not truncated.
func center(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}
