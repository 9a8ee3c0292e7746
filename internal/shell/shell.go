package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-phonebook/internal/calendar"
	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/tartampluch/go-phonebook/internal/contact"
	"github.com/tartampluch/go-phonebook/internal/directory"
)

// errMissingArgument is returned by commands invoked without a contact name.
var errMissingArgument = errors.New("missing argument")

// Options wires a Session to its input, output and environment.
type Options struct {
	In    io.Reader
	Out   io.Writer
	Lang  string        // requested message language, matched against the embedded locales
	Clock contact.Clock // defaults to contact.RealClock
}

// Session is one interactive run. It owns the Directory for its lifetime.
type Session struct {
	Book     *directory.Directory
	Clock    contact.Clock
	Calendar *calendar.Generator

	in        *bufio.Scanner
	out       io.Writer
	localizer *i18n.Localizer
	log       *slog.Logger
	done      bool
}

// NewSession builds a Session with an empty Directory whose collation
// follows the selected language.
func NewSession(opts Options) *Session {
	bundle, supported := newBundle()
	tag := matchLanguage(opts.Lang, supported)

	clock := opts.Clock
	if clock == nil {
		clock = contact.RealClock{}
	}

	s := &Session{
		Book:      directory.New(directory.WithLanguage(tag)),
		Clock:     clock,
		in:        bufio.NewScanner(opts.In),
		out:       opts.Out,
		localizer: i18n.NewLocalizer(bundle, tag.String(), config.DefaultLanguage),
		log:       slog.With(config.LogKeyComponent, config.CompShell, config.LogKeyLang, tag.String()),
	}
	s.Calendar = &calendar.Generator{
		Clock: clock,
		FormatSummary: func(name string, age int) string {
			if age == 0 {
				return s.msg(config.TKeyEvtSummaryBirth, map[string]any{"Name": name})
			}
			return s.msg(config.TKeyEvtSummaryAge, map[string]any{"Name": name, "Age": age})
		},
	}
	return s
}

// Run reads commands until the user leaves, the input ends or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	s.log.Info(config.MsgSessionStarted)
	defer s.log.Info(config.MsgSessionEnded)

	for !s.done {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.readLine(config.PromptInput)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			// A closed input after cancellation is not a read failure.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		out, err := s.Execute(ctx, line)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		s.println(out)
	}
	return nil
}

// Execute runs one command line and returns the text to display.
// Domain failures become messages; only input failures are returned.
func (s *Session) Execute(ctx context.Context, line string) (string, error) {
	name, args := parse(line)
	r, ok := routes[name]
	if !ok {
		return s.msg(config.TKeyUnknownCommand, map[string]any{"Command": firstWord(line)}), nil
	}

	s.log.Debug(config.MsgCommandReceived, config.LogKeyCommand, name)

	if r.needsName && len(args) == 0 {
		return s.describe(name, args, errMissingArgument), nil
	}

	out, err := r.handle(ctx, s, args)
	if err == nil {
		return out, nil
	}
	if errors.Is(err, io.EOF) {
		return "", err
	}
	return s.describe(name, args, err), nil
}

// describe turns a command failure into a user-facing message.
func (s *Session) describe(command string, args []string, err error) string {
	data := map[string]any{"Command": command, "Name": strings.Join(args, " "), "Path": strings.Join(args, " ")}

	switch {
	case errors.Is(err, errMissingArgument):
		return s.msg(config.TKeyMissingArgument, data)
	case errors.Is(err, directory.ErrContactNotFound):
		return s.msg(config.TKeyErrContactNotFound, data)
	case errors.Is(err, contact.ErrDuplicatePhone):
		return s.msg(config.TKeyErrDuplicatePhone, data)
	case errors.Is(err, contact.ErrIndexOutOfRange):
		return s.msg(config.TKeyErrIndexRange, data)
	case errors.Is(err, errInvalidDays):
		return s.msg(config.TKeyErrInvalidDays, data)
	case errors.Is(err, calendar.ErrInvalidTrigger):
		return s.msg(config.TKeyErrInvalidTrigger, data)
	case errors.Is(err, fs.ErrNotExist):
		return s.msg(config.TKeyErrFileNotFound, data)
	case errors.Is(err, contact.ErrInvalidFormat):
		if key, ok := invalidFormatKeys[command]; ok {
			return s.msg(key, data)
		}
	}

	s.log.Error(config.ErrCommandFailed,
		config.LogKeyCommand, command,
		config.LogKeyError, err,
	)
	return s.msg(config.TKeyErrUnexpected, data)
}

// parse splits a line into the longest known command and its arguments.
// Commands are case-insensitive and may contain spaces ("good bye").
func parse(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	lower := strings.ToLower(strings.Join(fields, " "))

	best := ""
	for name := range routes {
		if len(name) <= len(best) {
			continue
		}
		if lower == name || strings.HasPrefix(lower, name+" ") {
			best = name
		}
	}
	if best == "" {
		return strings.ToLower(fields[0]), nil
	}

	args := fields[len(strings.Fields(best)):]
	if len(args) == 0 {
		return best, nil
	}
	return best, args
}

func firstWord(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// readLine prints prompt and returns the next input line.
func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("%s: %w", config.ErrReadInput, err)
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

// ask prints a localized prompt and returns the trimmed answer.
func (s *Session) ask(key string) (string, error) {
	line, err := s.readLine(s.msg(key, nil))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *Session) println(text string) {
	fmt.Fprintln(s.out, text)
}
