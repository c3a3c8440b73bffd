// Package format renders ledger amounts and dates the way an account's
// locale expects them. Every function is pure.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"bankist/shared"
)

const nbsp = "\u00a0"

var symbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"JPY": "¥",
	"BRL": "R$",
	"INR": "₹",
}

// Languages that write the currency symbol after the number.
var suffixSymbol = map[string]bool{
	"pt": true, "de": true, "fr": true, "es": true, "it": true, "nl": true,
	"pl": true, "ru": true, "sv": true, "fi": true, "cs": true, "da": true,
}

type dateConvention struct {
	date     string
	dateTime string
}

var (
	usDates  = dateConvention{date: "1/2/2006", dateTime: "1/2/2006, 3:04 PM"}
	dmyDates = dateConvention{date: "02/01/2006", dateTime: "02/01/2006, 15:04"}
	deDates  = dateConvention{date: "2.1.2006", dateTime: "2.1.2006, 15:04"}
	isoDates = dateConvention{date: "2006-01-02", dateTime: "2006-01-02 15:04"}
)

var dateByLanguage = map[string]dateConvention{
	"pt": dmyDates,
	"fr": dmyDates,
	"es": dmyDates,
	"it": dmyDates,
	"de": deDates,
}

// Tag parses locale, falling back to American English for malformed input.
func Tag(locale shared.Locale) language.Tag {
	tag, err := language.Parse(string(locale))
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

// Currency renders amount with two fraction digits, the locale's separators
// and the currency symbol on the side the locale puts it. Digits come from
// the decimal itself, so large amounts keep every cent.
func Currency(amount decimal.Decimal, locale shared.Locale, cur shared.Currency) string {
	tag := Tag(locale)
	group, point := separators(tag)

	fixed := amount.Abs().StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")
	digits := groupDigits(whole, group, minGrouping(tag)) + point + cents

	sign := ""
	if amount.Round(2).IsNegative() {
		sign = "-"
	}

	symbol := Symbol(cur)
	base, _ := tag.Base()
	if suffixSymbol[base.String()] {
		return sign + digits + nbsp + symbol
	}
	return sign + symbol + digits
}

// separators reads the group and decimal symbols x/text uses for tag off a
// sample number. Locales with non-Latin digits fall back to "," and ".".
func separators(tag language.Tag) (group, point string) {
	sample := message.NewPrinter(tag).Sprintf("%v",
		number.Decimal(1234567.5, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
	i := strings.Index(sample, "234")
	j := strings.Index(sample, "567")
	if !strings.HasPrefix(sample, "1") || i < 1 || j < i || !strings.HasSuffix(sample, "5") || len(sample) < j+4 {
		return ",", "."
	}
	return sample[1:i], sample[j+3 : len(sample)-1]
}

// minGrouping is the number of digits the integer part needs above the
// first group before a separator is written: 1300 stays 1300 in pt-PT and
// es, while 25000 is grouped.
func minGrouping(tag language.Tag) int {
	base, _ := tag.Base()
	switch base.String() {
	case "es", "pl":
		return 2
	case "pt":
		if region, _ := tag.Region(); region.String() != "BR" {
			return 2
		}
	}
	return 1
}

func groupDigits(whole, sep string, min int) string {
	if len(whole) < 3+min {
		return whole
	}
	head := len(whole) % 3
	if head == 0 {
		head = 3
	}
	var b strings.Builder
	b.WriteString(whole[:head])
	for i := head; i < len(whole); i += 3 {
		b.WriteString(sep)
		b.WriteString(whole[i : i+3])
	}
	return b.String()
}

// Symbol returns the display symbol for an ISO 4217 code, or the
// normalised code itself when no symbol is known.
func Symbol(cur shared.Currency) string {
	code := strings.ToUpper(string(cur))
	if s, ok := symbols[code]; ok {
		return s
	}
	if unit, err := currency.ParseISO(code); err == nil {
		return unit.String()
	}
	return code
}

func convention(locale shared.Locale) dateConvention {
	tag := Tag(locale)
	base, _ := tag.Base()
	if base.String() == "en" {
		region, _ := tag.Region()
		if region.String() == "US" {
			return usDates
		}
		return dmyDates
	}
	if c, ok := dateByLanguage[base.String()]; ok {
		return c
	}
	return isoDates
}

// Date renders the calendar day of t in the locale's short numeric form.
func Date(t time.Time, locale shared.Locale) string {
	return t.Format(convention(locale).date)
}

// DateTime renders t with its hour and minute, as shown next to the balance
// after login.
func DateTime(t time.Time, locale shared.Locale) string {
	return t.Format(convention(locale).dateTime)
}

// DaysBetween is the absolute distance of a and b in whole days, rounded to
// the nearest day.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(math.Abs(b.Sub(a).Hours()) / 24))
}

// RelativeDate labels date relative to now: "Today", "Yesterday", "n days
// ago" up to a week, and the absolute date beyond that.
func RelativeDate(date time.Time, locale shared.Locale, now time.Time) string {
	days := DaysBetween(now, date)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days)
	}
	return Date(date.In(now.Location()), locale)
}
