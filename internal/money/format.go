package money

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders cents for display in a currency and locale.
type Formatter struct {
	unit    currency.Unit
	printer *message.Printer
	symbol  string
}

// NewFormatter returns a Formatter for an ISO 4217 currency code and a
// BCP 47 locale.
func NewFormatter(code, locale string) (Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Formatter{}, fmt.Errorf("invalid currency %q: %w", code, err)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return Formatter{}, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	p := message.NewPrinter(tag)

	return Formatter{
		unit:    unit,
		printer: p,
		symbol:  p.Sprint(currency.Symbol(unit)),
	}, nil
}

// Currency returns the ISO code of the currency.
func (f Formatter) Currency() string {
	return f.unit.String()
}

// Symbol returns the currency symbol for the locale.
func (f Formatter) Symbol() string {
	return f.symbol
}

// Format returns the amount with currency symbol and locale specific
// grouping, e.g. "$1,234.56" or "-$3.00".
func (f Formatter) Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	amount := CentsToDollars(cents).InexactFloat64()
	return sign + f.symbol + f.printer.Sprint(number.Decimal(amount, number.Scale(2)))
}
