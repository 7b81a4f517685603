// Package translate formats user-visible messages for the host locale.
package translate

import (
	"log"
	"os"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// LANG_ENV overrides the detected host locale when set.
const LANG_ENV = "INTCODE_LANG"

var (
	printerOnce sync.Once
	printer     *message.Printer
)

// locales returns the preferred locales, most preferred first.
func locales() (tags []string) {
	if lang := os.Getenv(LANG_ENV); len(lang) != 0 {
		return []string{lang}
	}

	tags, err := locale.GetLocales()
	if err != nil {
		log.Printf("intcode: locale: %v", err)
	}

	if len(tags) == 0 {
		tags = []string{"en-US"}
	}

	return
}

// Printer returns the shared message printer for the host locale.
func Printer() *message.Printer {
	printerOnce.Do(func() {
		printer = message.NewPrinter(message.MatchLanguage(locales()...))
	})
	return printer
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return Printer().Sprintf(key, args...)
}
