package validate

import (
	"strings"

	"github.com/squaredbusinessman/hotelkit/internal/format"
)

// luhnDoubled значение удвоенной цифры по алгоритму Луна
var luhnDoubled = [10]int{0, 2, 4, 6, 8, 1, 3, 5, 7, 9}

// luhnValid number уже проверен CardDigits: непустой, только цифры
func luhnValid(number string) bool {
	sum := 0
	parity := len(number) % 2

	for i, r := range number {
		d := int(r - '0')
		if i%2 == parity {
			d = luhnDoubled[d]
		}
		sum += d
	}

	return sum%10 == 0
}

// CardDigits убирает пробелы, которые добавляет FormatCardNumber.
// ok=false для пустой строки и если после этого остались не только цифры.
func CardDigits(raw string) (string, bool) {
	number := strings.Join(strings.Fields(raw), "")
	if number == "" {
		return "", false
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return number, false
		}
	}
	return number, true
}

// ValidCardNumber номер карты из 12-19 цифр с корректной контрольной суммой
func ValidCardNumber(raw string) bool {
	number, ok := CardDigits(raw)
	if !ok || len(number) < 12 || len(number) > 19 {
		return false
	}
	return luhnValid(number)
}

// ValidExpiry MM/YY с месяцем 01-12, разделитель не обязателен
func ValidExpiry(raw string) bool {
	v := format.Digits(raw)
	if len(v) != 4 {
		return false
	}
	month := (v[0]-'0')*10 + (v[1] - '0')
	return month >= 1 && month <= 12
}
