package cmd

import (
	"os"
	"strings"

	"github.com/jrsteele09/go-finance-client/app"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// preferredLanguage reads the POSIX locale (e.g. de_DE.UTF-8) and falls back to English
func preferredLanguage() language.Tag {
	locale := os.Getenv("LC_ALL")
	if locale == "" {
		locale = os.Getenv("LANG")
	}
	locale, _, _ = strings.Cut(locale, ".")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return language.English
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.English
	}
	return tag
}

type moneyFormatter struct {
	printer *message.Printer
	code    string
}

func newMoneyFormatter(tag language.Tag, currencyCode string) moneyFormatter {
	f := moneyFormatter{printer: message.NewPrinter(tag)}
	if unit, err := currency.ParseISO(currencyCode); err == nil {
		f.code = unit.String()
	}
	return f
}

// moneyFor formats amounts in the signed-in user's currency, if known
func moneyFor(a *app.App) moneyFormatter {
	code := ""
	if u := a.Session.Snapshot().User; u != nil {
		code = u.Currency
	}
	return newMoneyFormatter(preferredLanguage(), code)
}

func (f moneyFormatter) format(amount float64) string {
	s := f.printer.Sprintf("%.2f", amount)
	if f.code == "" {
		return s
	}
	return f.code + " " + s
}

func (f moneyFormatter) percent(p float64) string {
	return f.printer.Sprintf("%.1f%%", p)
}
