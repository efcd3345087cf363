package format

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"finitefield.org/listing-web/internal/i18n"
	"finitefield.org/listing-web/internal/listing"
)

const (
	// Placeholder is shown for absent values.
	Placeholder = "-"
	// DefaultCurrency applies when a price carries no currency code.
	DefaultCurrency = "CHF"

	nbsp = "\u00a0"
)

// Formatter renders prices and dates for one locale.
type Formatter struct {
	locale  string
	layer   string
	printer *message.Printer
}

// New returns a Formatter for locale. Unsupported locales format like the default.
func New(locale string) Formatter {
	if !i18n.IsSupported(locale) {
		locale = i18n.DefaultLocale
	}
	return Formatter{
		locale:  locale,
		layer:   i18n.LayerKey(locale),
		printer: message.NewPrinter(i18n.Tag(locale)),
	}
}

// Locale returns the locale the formatter was built for.
func (f Formatter) Locale() string { return f.locale }

// Price formats an amount in the given ISO currency, e.g. "CHF 100’000.00"
// for de-CH. Absent or zero prices render as Placeholder.
func (f Formatter) Price(price listing.Node, code string) string {
	if !price.Truthy() {
		return Placeholder
	}
	amount, ok := price.Float()
	if !ok {
		return price.String()
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}
	scale := 2
	if unit, err := currency.ParseISO(code); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
		code = unit.String()
	}
	digits := f.digits(amount, scale)
	if symbolAfterAmount[f.layer] {
		return digits + nbsp + code
	}
	return code + nbsp + digits
}

// symbolAfterAmount marks languages that write the currency after the number.
var symbolAfterAmount = map[string]bool{
	"fr": true,
	"es": true,
}

// separators overrides grouping and decimal marks for locales whose Swiss
// currency pattern differs from the generic language data.
var separators = map[string]struct{ group, decimal string }{
	"fr-CH": {group: "\u202f", decimal: "."},
}

func (f Formatter) digits(amount float64, scale int) string {
	sep, ok := separators[f.locale]
	if !ok {
		return f.printer.Sprint(number.Decimal(amount, number.Scale(scale)))
	}
	plain := message.NewPrinter(language.English).Sprint(number.Decimal(amount, number.Scale(scale)))
	return strings.NewReplacer(",", sep.group, ".", sep.decimal).Replace(plain)
}

// Date formats a calendar date in long form, e.g. "16. Oktober 2026".
// Absent input renders as Placeholder; unparseable input is returned as is.
func (f Formatter) Date(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return Placeholder
	}
	t, ok := parseDate(value)
	if !ok {
		return value
	}
	return FmtDate(t, f.layer)
}

func parseDate(v string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
		"2006/01/02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dateRules describes the long date form of a language.
type dateRules struct {
	// pattern uses {day}, {month} and {year} placeholders
	pattern string
	months  [12]string
}

var longDates = map[string]dateRules{
	"de": {
		pattern: "{day}. {month} {year}",
		months:  [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
	},
	"fr": {
		pattern: "{day} {month} {year}",
		months:  [12]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
	},
	"it": {
		pattern: "{day} {month} {year}",
		months:  [12]string{"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno", "luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre"},
	},
	"en": {
		pattern: "{month} {day}, {year}",
		months:  [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	},
	"es": {
		pattern: "{day} de {month} de {year}",
		months:  [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	},
	"pt": {
		pattern: "{day} de {month} de {year}",
		months:  [12]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},
	},
}

// FmtDate formats t in the long form of the given layer key.
func FmtDate(t time.Time, lang string) string {
	rules, ok := longDates[strings.ToLower(lang)]
	if !ok {
		rules = longDates[i18n.DefaultLayerKey]
	}
	r := strings.NewReplacer(
		"{day}", strconv.Itoa(t.Day()),
		"{month}", rules.months[t.Month()-1],
		"{year}", strconv.Itoa(t.Year()),
	)
	return r.Replace(rules.pattern)
}

