package format

import (
	"regexp"
	"strings"
)

var (
	nonDigits = regexp.MustCompile(`[^0-9]`)
	cardRun   = regexp.MustCompile(`\d{4,16}`)
)

// Digits оставляет в строке только цифры
func Digits(raw string) string {
	return nonDigits.ReplaceAllString(raw, "")
}

// FormatCardNumber группирует первую серию из 4-16 цифр по четыре.
// Если такой серии нет, возвращаем ввод как есть.
func FormatCardNumber(raw string) string {
	match := cardRun.FindString(Digits(raw))
	if match == "" {
		return raw
	}

	parts := make([]string, 0, 4)
	for i := 0; i < len(match); i += 4 {
		parts = append(parts, match[i:min(i+4, len(match))])
	}
	return strings.Join(parts, " ")
}

// FormatExpiryDate MM/YY
func FormatExpiryDate(raw string) string {
	v := Digits(raw)
	if len(v) >= 2 {
		return v[:2] + "/" + v[2:min(4, len(v))]
	}
	return v
}

// MaskCardNumber оставляет видимыми последние четыре цифры
func MaskCardNumber(raw string) string {
	v := Digits(raw)
	if len(v) <= 4 {
		return strings.Repeat("*", len(v))
	}
	return "**** **** **** " + v[len(v)-4:]
}
