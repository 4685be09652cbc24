package cart

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultLocale         = "ru"
	DefaultCurrencySymbol = "₽"
)

// Formatter renders prices and totals for one locale.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter builds a Formatter. An unparseable locale falls back to DefaultLocale.
func NewFormatter(locale, symbol string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return Formatter{printer: message.NewPrinter(tag), symbol: symbol}
}

func (f Formatter) Amount(v float64) string {
	return f.printer.Sprintf("%v", v)
}

// Money formats an amount followed by the currency symbol, e.g. "500 ₽".
func (f Formatter) Money(v float64) string {
	return f.Amount(v) + " " + f.symbol
}

// UnitLine formats "price × qty" for a row.
func (f Formatter) UnitLine(price float64, qty int) string {
	return f.Money(price) + " × " + strconv.Itoa(qty)
}
