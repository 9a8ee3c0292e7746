package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Go Phonebook"
	AppID       = "com.github.tartampluch.go-phonebook"
	AppCommand  = "go-phonebook"
	LogFileName = "app.log"
	PromptInput = ">>> "
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagLang         = "lang"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stderr"
	FlagDescLang     = "Language of the interactive messages (en, fr)"
	CmdShort         = "Personal contact directory in your terminal"
	CmdLong          = "Go Phonebook keeps an in-memory contact directory for the session.\nType 'help' at the prompt to list the available commands."
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// SupportedLanguages defines the list of available message languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Shell Commands
// -----------------------------------------------------------------------------

const (
	CmdHello          = "hello"
	CmdHelp           = "help"
	CmdAdd            = "add"
	CmdAddPhone       = "add-phone"
	CmdChangePhone    = "change-phone"
	CmdRemovePhone    = "remove-phone"
	CmdPhone          = "phone"
	CmdBirthday       = "birthday"
	CmdDaysToBirthday = "days-to-birthday"
	CmdEmail          = "email"
	CmdAddress        = "address"
	CmdShow           = "show"
	CmdShowAll        = "show-all"
	CmdDelete         = "delete"
	CmdBirthdays      = "birthdays"
	CmdSearch         = "search"
	CmdVCard          = "vcard"
	CmdImport         = "import"
	CmdCalendar       = "calendar"
	CmdExit           = "exit"
	CmdClose          = "close"
	CmdGoodBye        = "good bye"

	// IndexCancel is the index a user enters to abandon a phone selection.
	IndexCancel = 0
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyGreeting        = "greeting"
	TKeyFarewell        = "farewell"
	TKeyHelp            = "help"
	TKeyUnknownCommand  = "unknown_command"
	TKeyMissingArgument = "missing_argument"
	TKeyContactAdded    = "contact_added"
	TKeyContactExists   = "contact_exists"
	TKeyContactDeleted  = "contact_deleted"
	TKeyPhoneAdded      = "phone_added"
	TKeyPhoneReplaced   = "phone_replaced"
	TKeyPhoneRemoved    = "phone_removed"
	TKeyPhoneList       = "phone_list"
	TKeyPhoneListEmpty  = "phone_list_empty"
	TKeyBirthdaySet     = "birthday_set"
	TKeyDaysToBirthday  = "days_to_birthday"
	TKeyBirthdayToday   = "birthday_today"
	TKeyNoBirthday      = "no_birthday"
	TKeyEmailSet        = "email_set"
	TKeyAddressSet      = "address_set"
	TKeyDirectoryEmpty  = "directory_empty"
	TKeyNoMatches       = "no_matches"
	TKeyUpcomingHeader  = "upcoming_header"
	TKeyUpcomingEntry   = "upcoming_entry"
	TKeyNoUpcoming      = "no_upcoming"
	TKeyImported        = "imported"       // Plural, requires Count
	TKeySkipped         = "skipped"        // Plural, requires Count
	TKeyCalendarToday   = "calendar_today" // Plural, requires Count
	TKeyCancelled       = "cancelled"
	TKeyPromptPhone     = "prompt_phone"
	TKeyPromptNewPhone  = "prompt_new_phone"
	TKeyPromptReplace   = "prompt_replace_index"
	TKeyPromptRemove    = "prompt_remove_index"
	TKeyPromptBirthday  = "prompt_birthday"
	TKeyPromptEmail     = "prompt_email"
	TKeyPromptAddress   = "prompt_address"
	TKeyChooseFromList  = "choose_from_list"
	TKeyCancelHint      = "cancel_hint"
	TKeyEvtSummaryAge   = "event_summary_age"   // Requires Name, Age
	TKeyEvtSummaryBirth = "event_summary_birth" // Requires Name (For age 0)

	// Error Messages (User facing)
	TKeyErrContactNotFound = "err_contact_not_found"
	TKeyErrDuplicatePhone  = "err_duplicate_phone"
	TKeyErrIndexRange      = "err_index_out_of_range"
	TKeyErrInvalidPhone    = "err_invalid_phone"
	TKeyErrInvalidBirthday = "err_invalid_birthday"
	TKeyErrInvalidEmail    = "err_invalid_email"
	TKeyErrInvalidAddress  = "err_invalid_address"
	TKeyErrInvalidName     = "err_invalid_name"
	TKeyErrInvalidDays     = "err_invalid_days"
	TKeyErrInvalidTrigger  = "err_invalid_trigger"
	TKeyErrFileNotFound    = "err_file_not_found"
	TKeyErrUnexpected      = "err_unexpected"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLanguage     = "en"
	DefaultUpcomingDays = 7

	// Phone numbers are stored as digits with an optional leading '+'.
	PhoneMinDigits  = 10
	PhoneMaxDigits  = 15
	PhonePlusPrefix = "+"
	PhoneSeparators = " -.()"

	MaxAddressLength = 120
)

// -----------------------------------------------------------------------------
// Record Rendering
// -----------------------------------------------------------------------------

const (
	ColWidthName     = 15
	ColWidthEmail    = 10
	ColWidthBirthday = 10
	ColWidthPhones   = 30
	ColWidthAddress  = 30

	FieldPlaceholder = "–"
	PhoneJoiner      = ", "
	ColumnSeparator  = " : "
	RowPrefix        = ": "
	RowSuffix        = " :\n"
	FormatPhoneEntry = "%d. %s"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Phonebook//Calendar//EN"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "gophonebook"

	// iCal Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	DefaultICalRefresh = 24 * time.Hour

	// vCard
	VCardVersion = "4.0"
	UIDSalt      = "go-phonebook-v1-" // Salt for deterministic UID generation
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// Date layouts accepted for birthdays typed by the user.
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullDot   = "02.01.2006"
	DateFormatFullBasic = "20060102"

	// Additional layouts found in vCard BDAY fields.
	DateFormatRFC3339 = time.RFC3339
	DateFormatFullT   = "2006-01-02T15:04:05Z"

	// DateFormatDisplay is used for rendering stored birthdays.
	DateFormatDisplay = "2006-01-02"

	HoursPerDay = 24

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidFormat   = "invalid format"
	ErrDuplicatePhone  = "phone number was already added earlier"
	ErrIndexOutOfRange = "phone index out of range"
	ErrContactNotFound = "contact not found"
	ErrEmptyName       = "name must not be empty"
	ErrPhoneDigits     = "phone must contain 10 to 15 digits"
	ErrPhoneCharacter  = "phone contains an unexpected character"
	ErrDateParse       = "unable to parse date"
	ErrEmailParse      = "unable to parse email address"
	ErrAddressEmpty    = "address must not be empty"
	ErrAddressLength   = "address is too long"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrInvalidTrigger  = "invalid reminder trigger"
	ErrVCardEncode     = "failed to encode vCard data"
	ErrVCardOpen       = "failed to open vCard file"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrReadInput       = "failed to read input"
	ErrCommandFailed   = "command failed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummaryAge   = "Birthday: %s (%d)"
	FallbackSummaryBirth = "Birthday: %s (birth)"
	FallbackName         = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgAppStarting     = "Starting application"
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, leaving session"
	MsgSessionStarted  = "Session started"
	MsgSessionEnded    = "Session ended"
	MsgCommandReceived = "Command received"
	MsgSkippedCard     = "Skipping malformed vCard"
	MsgSkippedField    = "Skipping invalid vCard field"
	MsgImportDone      = "vCard import finished"
	MsgGenSuccess      = "Calendar generation successful"
	MsgBdayToday       = "Birthday found today"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyCommand   = "command"
	LogKeyField     = "field"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyImported  = "imported"
	LogKeySkipped   = "skipped"
	LogKeyFound     = "birthdays_found"
	LogKeyToday     = "birthdays_today"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyDate    = "build_date"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompShell    = "shell"
	CompCalendar = "calendar"
	CompCard     = "card"
	CompMain     = "main"
	CompI18n     = "i18n"
)
