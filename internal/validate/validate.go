// Package validate содержит проверки полей форм бронирования и оплаты.
//
// Регулярки намеренно нестрогие (не RFC): продукт опирается на текущее поведение,
// поэтому их не "чиним".
package validate

import (
	"regexp"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/squaredbusinessman/hotelkit/internal/format"
)

const MaxPasswordStrength = 5

// jsSpace тот же набор пробелов, что \s в браузерных регулярках; \s в RE2 только ASCII
const jsSpace = `\s\v\x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var (
	emailPattern = regexp.MustCompile(`^[^` + jsSpace + `@]+@[^` + jsSpace + `@]+\.[^` + jsSpace + `@]+$`)
	phonePattern = regexp.MustCompile(`^[\+]?[(]?[0-9]{3}[)]?[-` + jsSpace + `\.]?[0-9]{3}[-` + jsSpace + `\.]?[0-9]{4,6}$`)

	lowerPattern  = regexp.MustCompile(`[a-z]+`)
	upperPattern  = regexp.MustCompile(`[A-Z]+`)
	digitPattern  = regexp.MustCompile(`[0-9]+`)
	symbolPattern = regexp.MustCompile(`[$@#&!]+`)
)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// CheckPasswordStrength считает выполненные критерии, каждый даёт +1 независимо от остальных
func CheckPasswordStrength(password string) int {
	strength := 0

	if utf8.RuneCountInString(password) >= 8 {
		strength++
	}
	if lowerPattern.MatchString(password) {
		strength++
	}
	if upperPattern.MatchString(password) {
		strength++
	}
	if digitPattern.MatchString(password) {
		strength++
	}
	if symbolPattern.MatchString(password) {
		strength++
	}

	return strength
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	rules := map[string]func(string) bool{
		"hotel_email": ValidateEmail,
		"hotel_phone": ValidatePhone,
		"card_number": ValidCardNumber,
		"card_expiry": ValidExpiry,
		"iso_date": func(s string) bool {
			_, ok := format.ParseDate(s)
			return ok
		},
	}

	for tag, rule := range rules {
		rule := rule
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return rule(fl.Field().String())
		})
		if err != nil {
			panic("register validation " + tag + ": " + err.Error())
		}
	}

	return v
}

// Struct проверяет структуру по тегам validate
func Struct(s any) error {
	return structValidator.Struct(s)
}
