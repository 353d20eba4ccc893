// Package format превращает сырые значения (суммы, даты, номера карт) в строки для отображения.
// Ни одна функция не возвращает ошибку: на плохом входе отдаём исходное значение или маркер.
package format

import (
	"math"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DefaultLocale   = "en-IN"
	DefaultCurrency = "INR"
)

var symbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"AED": "AED ",
}

// Formatter держит локаль и валюту, чтобы не разбирать их на каждый вызов
type Formatter struct {
	printer *message.Printer // nil, если локаль не разобралась
	symbol  string
	usOrder bool
}

func NewFormatter(locale string, currencyCode string) *Formatter {
	f := &Formatter{
		symbol: currencySymbol(currencyCode),
	}

	tag, err := language.Parse(locale)
	if err != nil {
		// локаль недоступна: молча работаем в формате по умолчанию
		return f
	}

	f.printer = message.NewPrinter(tag)
	if region, _ := tag.Region(); region.String() == "US" {
		f.usOrder = true
	}
	return f
}

func currencySymbol(code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return code + " "
	}
	if s, ok := symbols[unit.String()]; ok {
		return s
	}
	return unit.String() + " "
}

// FormatCurrency сумма без дробной части с символом валюты.
// Если локаль не разобралась, группировка приблизительная: go-humanize всегда
// делит по три разряда (₹1,234,567), а не по-индийски (₹12,34,567).
func (f *Formatter) FormatCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	rounded := math.Round(amount)

	var digits string
	if f.printer != nil {
		digits = f.printer.Sprintf("%v", number.Decimal(rounded, number.MaxFractionDigits(0)))
	} else {
		digits = humanize.Comma(int64(rounded))
	}

	return sign + f.symbol + digits
}

var defaultFormatter = NewFormatter(DefaultLocale, DefaultCurrency)

// FormatCurrency форматирует в en-IN / INR
func FormatCurrency(amount float64) string {
	return defaultFormatter.FormatCurrency(amount)
}

// FormatDate форматирует в en-IN
func FormatDate(s string) string {
	return defaultFormatter.FormatDate(s)
}
