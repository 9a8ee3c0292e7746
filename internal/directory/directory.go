package directory

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/tartampluch/go-phonebook/internal/contact"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrContactNotFound is returned when no Record is stored under a name.
var ErrContactNotFound = errors.New(config.ErrContactNotFound)

// Directory is the name-keyed store of all Records of a session.
// It is not safe for concurrent use; its owner serializes access.
type Directory struct {
	records  map[string]*contact.Record
	collator *collate.Collator
}

// Option configures a Directory.
type Option func(*Directory)

// WithLanguage sets the collation used by Names, Records and Search.
func WithLanguage(tag language.Tag) Option {
	return func(d *Directory) {
		d.collator = collate.New(tag, collate.IgnoreCase)
	}
}

// New returns an empty Directory. Names sort with English collation
// unless WithLanguage says otherwise.
func New(opts ...Option) *Directory {
	d := &Directory{
		records:  make(map[string]*contact.Record),
		collator: collate.New(language.English, collate.IgnoreCase),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func key(name string) string { return contact.NormalizeName(name) }

// Lookup returns the stored Record itself, so mutations made through it are
// visible to later lookups.
func (d *Directory) Lookup(name string) (*contact.Record, error) {
	r, ok := d.records[key(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrContactNotFound, key(name))
	}
	return r, nil
}

// Has reports whether a Record is stored under name.
func (d *Directory) Has(name string) bool {
	_, ok := d.records[key(name)]
	return ok
}

// Insert stores r under its name, replacing any Record already there.
// Use Has first when an existing contact must be preserved.
func (d *Directory) Insert(r *contact.Record) {
	d.records[r.Name().String()] = r
}

// Remove deletes and returns the Record stored under name.
func (d *Directory) Remove(name string) (*contact.Record, error) {
	r, err := d.Lookup(name)
	if err != nil {
		return nil, err
	}
	delete(d.records, key(name))
	return r, nil
}

func (d *Directory) Len() int { return len(d.records) }

// Names returns every contact name in collation order.
func (d *Directory) Names() []string {
	names := make([]string, 0, len(d.records))
	for n := range d.records {
		names = append(names, n)
	}
	slices.SortFunc(names, func(a, b string) int {
		// Names equal under the collator (Bob, bob) still need a fixed order.
		if c := d.collator.CompareString(a, b); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return names
}

// Records returns every Record ordered by name.
func (d *Directory) Records() []*contact.Record {
	names := d.Names()
	out := make([]*contact.Record, len(names))
	for i, n := range names {
		out[i] = d.records[n]
	}
	return out
}

// Search returns the Records whose name, email or address contains query
// (case-insensitive), or whose phones contain the digits of query.
// Results are ordered by name; a blank query matches nothing.
func (d *Directory) Search(query string) []*contact.Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, q)

	var out []*contact.Record
	for _, r := range d.Records() {
		if matches(r, q, digits) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r *contact.Record, q, digits string) bool {
	if strings.Contains(strings.ToLower(r.Name().String()), q) {
		return true
	}
	if e, ok := r.Email(); ok && strings.Contains(strings.ToLower(e.String()), q) {
		return true
	}
	if a, ok := r.Address(); ok && strings.Contains(strings.ToLower(a.String()), q) {
		return true
	}
	if digits == "" {
		return false
	}
	for _, p := range r.Phones() {
		if strings.Contains(p.String(), digits) {
			return true
		}
	}
	return false
}

// Upcoming is one entry of the upcoming birthdays list.
type Upcoming struct {
	Record *contact.Record
	Next   time.Time
	Days   int
}

// Upcoming lists the contacts whose next birthday falls within days days of
// now (0 means today only), sorted by distance then by name.
func (d *Directory) Upcoming(now time.Time, days int) []Upcoming {
	var out []Upcoming
	for _, r := range d.Records() {
		left, ok := r.DaysToBirthday(now)
		if !ok || left > days {
			continue
		}
		next, _ := r.NextBirthday(now)
		out = append(out, Upcoming{Record: r, Next: next, Days: left})
	}

	// Records() is already in name order, a stable sort keeps it as tie-breaker.
	slices.SortStableFunc(out, func(a, b Upcoming) int { return a.Days - b.Days })
	return out
}
