// Package booking считает производные величины брони: число ночей и итоговую стоимость.
package booking

import (
	"time"

	"github.com/squaredbusinessman/hotelkit/internal/format"
)

const secondsPerDay = 24 * 60 * 60

// Quote не хранится, всегда вычисляется из интервала проживания и цены за ночь.
// Valid == (Nights > 0); при Valid == false Total всегда 0.
type Quote struct {
	Nights int     `json:"nights"`
	Total  float64 `json:"total"`
	Valid  bool    `json:"valid"`
}

// calendarDay приводит дату к полуночи UTC того же календарного дня.
// Разница таких значений не зависит от перехода на летнее время.
// Считаем по Unix-секундам: time.Duration ограничена ~292 годами.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalculatePrice если выезд не позже заезда, бронь невалидна
func CalculatePrice(checkIn, checkOut time.Time, pricePerNight float64) Quote {
	nights := int((calendarDay(checkOut).Unix() - calendarDay(checkIn).Unix()) / secondsPerDay)

	if nights <= 0 {
		return Quote{}
	}

	return Quote{
		Nights: nights,
		Total:  float64(nights) * pricePerNight,
		Valid:  true,
	}
}

// CalculatePriceFromStrings то же самое для значений полей формы; неразобранная дата даёт невалидную бронь
func CalculatePriceFromStrings(checkIn, checkOut string, pricePerNight float64) Quote {
	in, ok := format.ParseDate(checkIn)
	if !ok {
		return Quote{}
	}
	out, ok := format.ParseDate(checkOut)
	if !ok {
		return Quote{}
	}
	return CalculatePrice(in, out, pricePerNight)
}

// MinimumDate нижняя граница для полей выбора даты, в формате input[type=date]
func MinimumDate(now time.Time) string {
	return now.Format("2006-01-02")
}
