// Package format renders numbers, currency amounts and month labels for
// the presentation layer.
//
// A Formatter owns its printer caches explicitly: construct one per
// process and inject it where needed instead of relying on module-global
// state. Printers are memoized per currency code, never per value.
package format

import (
	"sync"
	"time"

	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// noCurrency is the cache key for the plain-number printer.
const noCurrency = "\x00"

// Formatter renders locale-aware strings for a fixed language.
type Formatter struct {
	tag language.Tag

	mu       sync.Mutex
	printers map[string]*message.Printer
}

// New returns a Formatter for the language tag.
func New(tag language.Tag) *Formatter {
	return &Formatter{
		tag:      tag,
		printers: make(map[string]*message.Printer),
	}
}

// printer returns the memoized printer for the currency code, creating it
// on first use. The cache key is exactly the code, with a sentinel for
// "no currency".
func (f *Formatter) printer(code string) *message.Printer {
	if code == "" {
		code = noCurrency
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.printers[code]
	if !ok {
		p = message.NewPrinter(f.tag)
		f.printers[code] = p
	}

	return p
}

// Amount renders a currency amount. An empty or unknown currency code
// falls back to a plain locale-formatted number with two fraction digits.
func (f *Formatter) Amount(d decimal.Decimal, code string) string {
	p := f.printer(code)
	value, _ := d.Float64()

	unit, err := currency.ParseISO(code)
	if err != nil {
		return p.Sprint(number.Decimal(value, number.Scale(2)))
	}

	return p.Sprint(currency.NarrowSymbol(unit.Amount(value)))
}

// Integer renders a decimal rounded to integer units.
func (f *Formatter) Integer(d decimal.Decimal) string {
	return f.printer("").Sprint(number.Decimal(d.Round(0).IntPart()))
}

// Percent renders an integer percentage such as a structure row share.
func (f *Formatter) Percent(share int64) string {
	return f.printer("").Sprint(number.Percent(float64(share) / 100))
}

// MonthLabel renders a human month/year label for a period.
func (f *Formatter) MonthLabel(m types.Month) string {
	return time.Time(m).Format("January 2006")
}
