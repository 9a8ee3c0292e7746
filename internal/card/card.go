package card

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/tartampluch/go-phonebook/internal/contact"
)

// Stats summarizes a Decode run.
type Stats struct {
	Cards    int // cards read from the stream
	Imported int // records built
	Skipped  int // malformed cards and rejected fields
}

// Encode writes one vCard 4.0 per record.
func Encode(w io.Writer, records ...*contact.Record) error {
	enc := vcard.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(toCard(r)); err != nil {
			return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}
	return nil
}

func toCard(r *contact.Record) vcard.Card {
	c := make(vcard.Card)
	c.SetValue(vcard.FieldVersion, config.VCardVersion)
	c.SetValue(vcard.FieldFormattedName, r.Name().String())
	// N is required by vCard 3.0 readers; the whole name goes in GivenName.
	c.SetName(&vcard.Name{GivenName: r.Name().String()})

	for _, p := range r.Phones() {
		c.AddValue(vcard.FieldTelephone, p.String())
	}
	if b, ok := r.Birthday(); ok {
		c.SetValue(vcard.FieldBirthday, b.Date().Format(config.DateFormatFullBasic))
	}
	if e, ok := r.Email(); ok {
		c.SetValue(vcard.FieldEmail, e.String())
	}
	if a, ok := r.Address(); ok {
		c.AddAddress(&vcard.Address{StreetAddress: componentEscaper.Replace(a.String())})
	}
	return c
}

// Decode reads every vCard in r and turns it into a Record.
// Malformed cards and fields that fail validation are logged and skipped so
// that one bad entry does not abort the whole import.
func Decode(ctx context.Context, r io.Reader) ([]*contact.Record, Stats, error) {
	start := time.Now()
	log := slog.With(config.LogKeyComponent, config.CompCard)

	decoder := vcard.NewDecoder(r)
	var stats Stats
	var records []*contact.Record

	for {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		c, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			stats.Skipped++
			continue
		}
		stats.Cards++

		rec, skipped, err := fromCard(c, log)
		stats.Skipped += skipped
		if err != nil {
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			stats.Skipped++
			continue
		}
		records = append(records, rec)
		stats.Imported++
	}

	log.Info(config.MsgImportDone,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.Cards),
			slog.Int(config.LogKeyImported, stats.Imported),
			slog.Int(config.LogKeySkipped, stats.Skipped),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return records, stats, nil
}

// fromCard builds a Record and reports how many fields were rejected.
func fromCard(c vcard.Card, log *slog.Logger) (*contact.Record, int, error) {
	// Name Strategy: FN (Formatted) > N (Structured) > Fallback
	name := config.FallbackName
	if fn := strings.TrimSpace(c.PreferredValue(vcard.FieldFormattedName)); fn != "" {
		name = fn
	} else if n := c.Name(); n != nil {
		if joined := strings.TrimSpace(strings.Join([]string{n.GivenName, n.FamilyName}, " ")); joined != "" {
			name = joined
		}
	}

	rec, err := contact.NewRecord(name)
	if err != nil {
		return nil, 0, err
	}

	skipped := 0
	reject := func(field, value string, err error) {
		skipped++
		log.Debug(config.MsgSkippedField,
			config.LogKeyName, name,
			config.LogKeyField, field,
			config.LogKeyValue, value,
			config.LogKeyError, err)
	}

	for _, tel := range c.Values(vcard.FieldTelephone) {
		if _, err := rec.AddPhone(tel); err != nil {
			reject(vcard.FieldTelephone, tel, err)
		}
	}

	if bday := c.Value(vcard.FieldBirthday); bday != "" {
		if date, err := parseDate(bday); err != nil {
			reject(vcard.FieldBirthday, bday, err)
		} else if _, err := rec.ChangeBirthday(date.Format(config.DateFormatFullDash)); err != nil {
			reject(vcard.FieldBirthday, bday, err)
		}
	}

	if email := c.PreferredValue(vcard.FieldEmail); email != "" {
		if _, err := rec.ChangeEmail(email); err != nil {
			reject(vcard.FieldEmail, email, err)
		}
	}

	if adr := parseAddress(c.Preferred(vcard.FieldAddress)); adr != nil {
		if line := formatAddress(adr); line != "" {
			if _, err := rec.ChangeAddress(line); err != nil {
				reject(vcard.FieldAddress, line, err)
			}
		}
	}
	return rec, skipped, nil
}

// componentEscaper protects ADR separators inside a component. The vCard
// encoder escapes commas and backslashes but leaves semicolons alone.
var componentEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`)

// parseAddress splits an ADR value into its seven components, honoring
// escaped semicolons that vcard.Card.Address would treat as separators.
func parseAddress(field *vcard.Field) *vcard.Address {
	if field == nil {
		return nil
	}
	parts := splitComponents(field.Value)
	get := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	return &vcard.Address{
		Field:           field,
		PostOfficeBox:   get(0),
		ExtendedAddress: get(1),
		StreetAddress:   get(2),
		Locality:        get(3),
		Region:          get(4),
		PostalCode:      get(5),
		Country:         get(6),
	}
}

func splitComponents(value string) []string {
	var parts []string
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		switch ch := value[i]; {
		case ch == '\\' && i+1 < len(value) && (value[i+1] == ';' || value[i+1] == '\\'):
			i++
			b.WriteByte(value[i])
		case ch == ';':
			parts = append(parts, b.String())
			b.Reset()
		default:
			b.WriteByte(ch)
		}
	}
	return append(parts, b.String())
}

// formatAddress joins the non-empty ADR components into one line.
func formatAddress(a *vcard.Address) string {
	var parts []string
	for _, p := range []string{a.PostOfficeBox, a.ExtendedAddress, a.StreetAddress, a.Locality, a.Region, a.PostalCode, a.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// parseDate handles the vCard date formats that carry a year.
// Truncated dates (--MM-DD) cannot become a Birthday and are rejected.
func parseDate(value string) (time.Time, error) {
	formats := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formats {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s: %q", contact.ErrInvalidFormat, config.ErrDateParse, value)
}
