package shell

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-phonebook/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// newBundle loads every embedded active.<lang>.json file and returns the
// bundle together with the language tags that were found.
func newBundle() (*i18n.Bundle, []language.Tag) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return bundle, []language.Tag{language.English}
	}

	var detected []language.Tag

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		tag, err := language.Parse(langCode)
		if langCode == "" || err != nil {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
		detected = append(detected, tag)
	}

	if len(detected) == 0 {
		detected = []language.Tag{language.English}
	}
	return bundle, detected
}

// matchLanguage picks the supported tag closest to the requested language.
// The default language wins when nothing matches.
func matchLanguage(requested string, supported []language.Tag) language.Tag {
	// The default goes first so the matcher falls back to it.
	ordered := []language.Tag{language.Make(config.DefaultLanguage)}
	for _, t := range supported {
		if t != ordered[0] {
			ordered = append(ordered, t)
		}
	}

	_, idx, _ := language.NewMatcher(ordered).Match(language.Make(requested))
	return ordered[idx]
}

// msg translates key, falling back to the key itself when it is missing.
func (s *Session) msg(key string, data map[string]any) string {
	return s.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
}

// plural translates key choosing the plural form for count.
func (s *Session) plural(key string, count int, data map[string]any) string {
	return s.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data, PluralCount: count})
}

func (s *Session) localize(lc *i18n.LocalizeConfig) string {
	out, err := s.localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return lc.MessageID
	}
	return out
}
