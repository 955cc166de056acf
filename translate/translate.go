// Package translate localizes the messages reported by the emulator.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer *message.Printer
	matched language.Tag
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("atats: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	matched = message.MatchLanguage(locales...)
	printer = message.NewPrinter(matched)
}

// From formats an en-US Sprintf() style key in the user's language.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Language returns the language messages are rendered in.
func Language() language.Tag {
	return matched
}
