// SPDX-License-Identifier: MIT

package report

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/stepchain/activity"
)

// DefaultLocale is the language of the original data files.
var DefaultLocale = language.Turkish

// supported lists locales in preference order; index 0 is the fallback.
var supported = []language.Tag{language.Turkish, language.English}

var matcher = language.NewMatcher(supported)

//go:embed locales/*.yaml
var localeFS embed.FS

var headings = mustLoadCatalog(localeFS)

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// ParseLocale parses a BCP 47 tag such as "tr", "en" or "en-GB".
// An empty string selects DefaultLocale.
func ParseLocale(s string) (language.Tag, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLocale, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("%q: %w: %v", s, ErrInvalidLocale, err)
	}
	return tag, nil
}

// Supported returns the locales that have headings and state labels.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Match returns the supported locale closest to tag (DefaultLocale when
// nothing matches).
func Match(tag language.Tag) language.Tag {
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		idx = 0
	}
	return supported[idx]
}

// VocabularyFor returns the state labels for tag.
func VocabularyFor(tag language.Tag) activity.Vocabulary {
	if Match(tag) == language.English {
		return activity.English
	}
	return activity.Turkish
}

// newMessagePrinter returns an x/text printer bound to the heading catalog.
func newMessagePrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(Match(tag), message.Catalog(headings))
}

// loadCatalog reads every locales/*.yaml file into a catalog builder.
func loadCatalog(fsys fs.FS) (*catalog.Builder, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale catalogs found")
	}
	sort.Strings(paths)

	b := catalog.NewBuilder(catalog.Fallback(DefaultLocale))
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err = yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		tag, err := language.Parse(file.Locale)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: locale %q: %w", path, file.Locale, err)
		}
		if len(file.Messages) == 0 {
			return nil, fmt.Errorf("catalog %s: no messages", path)
		}
		for key, msg := range file.Messages {
			if err = b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("catalog %s: key %q: %w", path, key, err)
			}
		}
	}

	return b, nil
}

func mustLoadCatalog(fsys fs.FS) *catalog.Builder {
	b, err := loadCatalog(fsys)
	if err != nil {
		panic(err)
	}
	return b
}
