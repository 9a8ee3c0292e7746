package contact_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-phonebook/internal/contact"
)

// phoneValues flattens a phone sequence for easy comparison.
func phoneValues(r *contact.Record) []string {
	out := []string{}
	for _, p := range r.Phones() {
		out = append(out, p.String())
	}
	return out
}

func newRecord(t *testing.T, name string, phones ...string) *contact.Record {
	t.Helper()
	r, err := contact.NewRecord(name)
	require.NoError(t, err)
	for _, p := range phones {
		_, err := r.AddPhone(p)
		require.NoError(t, err)
	}
	return r
}

func TestNewRecord_WithOptions(t *testing.T) {
	r, err := contact.NewRecord("Alice",
		contact.WithPhone("1234567890"),
		contact.WithBirthday("1990-10-25"),
		contact.WithAddress("Kyiv"),
		contact.WithEmail("alice@example.com"),
	)
	require.NoError(t, err)

	assert.Equal(t, "Alice", r.Name().String())
	assert.Equal(t, []string{"1234567890"}, phoneValues(r))

	b, ok := r.Birthday()
	assert.True(t, ok)
	assert.Equal(t, "1990-10-25", b.String())

	a, ok := r.Address()
	assert.True(t, ok)
	assert.Equal(t, "Kyiv", a.String())

	e, ok := r.Email()
	assert.True(t, ok)
	assert.Equal(t, "alice@example.com", e.String())
}

func TestNewRecord_EmptyOptionsLeaveFieldsUnset(t *testing.T) {
	r, err := contact.NewRecord("Bob", contact.WithPhone(""), contact.WithBirthday(""), contact.WithAddress(""), contact.WithEmail(""))
	require.NoError(t, err)

	assert.Empty(t, r.Phones())
	_, ok := r.Birthday()
	assert.False(t, ok)
	_, ok = r.Address()
	assert.False(t, ok)
	_, ok = r.Email()
	assert.False(t, ok)
}

func TestNewRecord_InvalidInput(t *testing.T) {
	_, err := contact.NewRecord(" ")
	assert.ErrorIs(t, err, contact.ErrInvalidFormat)

	_, err = contact.NewRecord("Bob", contact.WithPhone("abc"))
	assert.ErrorIs(t, err, contact.ErrInvalidFormat)
}

func TestAddPhone_Duplicate(t *testing.T) {
	r := newRecord(t, "Bob", "1234567890")

	_, err := r.AddPhone("123-456-7890")
	assert.ErrorIs(t, err, contact.ErrDuplicatePhone, "Normalized duplicates must be rejected")
	assert.Len(t, r.Phones(), 1)
}

func TestAddPhone_InvalidLeavesSequence(t *testing.T) {
	r := newRecord(t, "Bob", "1234567890")

	_, err := r.AddPhone("not a phone")
	assert.ErrorIs(t, err, contact.ErrInvalidFormat)
	assert.Equal(t, []string{"1234567890"}, phoneValues(r))
}

func TestReplacePhone_MovesReplacementToEnd(t *testing.T) {
	r := newRecord(t, "Bob", "1111111111", "2222222222", "3333333333")

	old, repl, err := r.ReplacePhone(1, "4444444444")
	require.NoError(t, err)

	assert.Equal(t, "1111111111", old.String())
	assert.Equal(t, "4444444444", repl.String())
	assert.Equal(t, []string{"2222222222", "3333333333", "4444444444"}, phoneValues(r))
}

func TestReplacePhone_SameValueIsAllowed(t *testing.T) {
	r := newRecord(t, "Bob", "1111111111", "2222222222")

	_, _, err := r.ReplacePhone(1, "111-111-1111")
	require.NoError(t, err)
	assert.Equal(t, []string{"2222222222", "1111111111"}, phoneValues(r))
}

// TestReplacePhone_DuplicateIsAtomic covers the replace policy: a
// replacement that collides with another phone must not remove anything.
func TestReplacePhone_DuplicateIsAtomic(t *testing.T) {
	r := newRecord(t, "Bob", "1111111111", "2222222222")

	_, _, err := r.ReplacePhone(1, "2222222222")
	assert.ErrorIs(t, err, contact.ErrDuplicatePhone)
	assert.Equal(t, []string{"1111111111", "2222222222"}, phoneValues(r), "Record must be left untouched")
}

func TestReplacePhone_InvalidIsAtomic(t *testing.T) {
	r := newRecord(t, "Bob", "1111111111")

	_, _, err := r.ReplacePhone(1, "oops")
	assert.ErrorIs(t, err, contact.ErrInvalidFormat)
	assert.Equal(t, []string{"1111111111"}, phoneValues(r))
}

func TestReplaceAndRemove_OutOfRange(t *testing.T) {
	r := newRecord(t, "Bob", "1111111111", "2222222222")

	for _, idx := range []int{-1, 0, 3, 100} {
		_, _, err := r.ReplacePhone(idx, "3333333333")
		assert.ErrorIs(t, err, contact.ErrIndexOutOfRange, "replace index %d", idx)

		_, err = r.RemovePhone(idx)
		assert.ErrorIs(t, err, contact.ErrIndexOutOfRange, "remove index %d", idx)
	}
	assert.Equal(t, []string{"1111111111", "2222222222"}, phoneValues(r))
}

func TestRemovePhone_PreservesOrder(t *testing.T) {
	r := newRecord(t, "Bob", "1111111111", "2222222222", "3333333333")

	removed, err := r.RemovePhone(2)
	require.NoError(t, err)
	assert.Equal(t, "2222222222", removed.String())
	assert.Equal(t, []string{"1111111111", "3333333333"}, phoneValues(r))
}

func TestPhones_ReturnsCopy(t *testing.T) {
	r := newRecord(t, "Bob", "1111111111")

	phones := r.Phones()
	phones[0] = contact.Phone{}

	assert.Equal(t, []string{"1111111111"}, phoneValues(r), "Callers must not mutate the record through Phones()")
}

func TestChangeFields_LastWriteWins(t *testing.T) {
	r := newRecord(t, "Bob")

	_, err := r.ChangeEmail("old@example.com")
	require.NoError(t, err)
	_, err = r.ChangeEmail("new@example.com")
	require.NoError(t, err)
	e, _ := r.Email()
	assert.Equal(t, "new@example.com", e.String())

	_, err = r.ChangeAddress("Old street")
	require.NoError(t, err)
	_, err = r.ChangeAddress("New street")
	require.NoError(t, err)
	a, _ := r.Address()
	assert.Equal(t, "New street", a.String())

	_, err = r.ChangeBirthday("2000-01-01")
	require.NoError(t, err)
	_, err = r.ChangeBirthday("01.02.2001")
	require.NoError(t, err)
	b, _ := r.Birthday()
	assert.Equal(t, "2001-02-01", b.String())
}

func TestChangeFields_InvalidKeepsPreviousValue(t *testing.T) {
	r, err := contact.NewRecord("Bob",
		contact.WithBirthday("2000-01-01"),
		contact.WithEmail("bob@example.com"),
		contact.WithAddress("Main street"),
	)
	require.NoError(t, err)

	_, err = r.ChangeBirthday("yesterday")
	assert.ErrorIs(t, err, contact.ErrInvalidFormat)
	_, err = r.ChangeEmail("bob at example")
	assert.ErrorIs(t, err, contact.ErrInvalidFormat)
	_, err = r.ChangeAddress("   ")
	assert.ErrorIs(t, err, contact.ErrInvalidFormat)

	b, _ := r.Birthday()
	e, _ := r.Email()
	a, _ := r.Address()
	assert.Equal(t, "2000-01-01", b.String())
	assert.Equal(t, "bob@example.com", e.String())
	assert.Equal(t, "Main street", a.String())
}

func TestDaysToBirthday(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)

	r := newRecord(t, "Bob")
	_, ok := r.DaysToBirthday(now)
	assert.False(t, ok, "No birthday means no answer")
	_, ok = r.NextBirthday(now)
	assert.False(t, ok)

	_, err := r.ChangeBirthday("1990-06-20")
	require.NoError(t, err)

	days, ok := r.DaysToBirthday(now)
	assert.True(t, ok)
	assert.Equal(t, 5, days)

	next, ok := r.NextBirthday(now)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), next)
}

func TestFormat(t *testing.T) {
	r, err := contact.NewRecord("Alice",
		contact.WithPhone("1111111111"),
		contact.WithPhone("2222222222"),
		contact.WithEmail("a@b.io"),
		contact.WithBirthday("1990-10-25"),
		contact.WithAddress("Kyiv"),
	)
	require.NoError(t, err)

	// Odd padding goes to the right, like a centered format verb.
	want := ": " + "     Alice     " +
		" : " + "  a@b.io  " +
		" : " + "1990-10-25" +
		" : " + "    1111111111, 2222222222    " +
		" : " + strings.Repeat(" ", 13) + "Kyiv" + strings.Repeat(" ", 13) +
		" :\n"
	assert.Equal(t, want, r.Format())
}

func TestFormat_Placeholders(t *testing.T) {
	r := newRecord(t, "Bob")

	line := r.Format()
	assert.True(t, strings.HasPrefix(line, ": "))
	assert.True(t, strings.HasSuffix(line, " :\n"))
	assert.Equal(t, 3, strings.Count(line, "–"), "Email, birthday and address should show the placeholder")
	assert.Contains(t, line, " Bob ")
}

// TestScenario_Bob walks through the documented end-to-end phone scenario.
func TestScenario_Bob(t *testing.T) {
	r := newRecord(t, "Bob")

	p, err := r.AddPhone("1234567890")
	require.NoError(t, err)
	assert.Equal(t, "1234567890", p.String())
	assert.Equal(t, []string{"1234567890"}, phoneValues(r))

	_, err = r.AddPhone("1234567890")
	assert.ErrorIs(t, err, contact.ErrDuplicatePhone)

	_, _, err = r.ReplacePhone(1, "5555555555")
	require.NoError(t, err)
	assert.Equal(t, []string{"5555555555"}, phoneValues(r))

	removed, err := r.RemovePhone(1)
	require.NoError(t, err)
	assert.Equal(t, "5555555555", removed.String())
	assert.Empty(t, phoneValues(r))

	_, err = r.RemovePhone(1)
	assert.ErrorIs(t, err, contact.ErrIndexOutOfRange)
}
