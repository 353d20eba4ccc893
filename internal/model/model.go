package model

import "time"

// Draft значения полей формы по имени поля
type Draft map[string]string

type BookingRequest struct {
	FormID        string  `json:"form_id"`
	GuestName     string  `json:"guest_name" validate:"required"`
	Email         string  `json:"email" validate:"required,hotel_email"`
	Phone         string  `json:"phone" validate:"required,hotel_phone"`
	CheckIn       string  `json:"check_in" validate:"required,iso_date"`
	CheckOut      string  `json:"check_out" validate:"required,iso_date"`
	PricePerNight float64 `json:"price_per_night" validate:"gte=0"`
}

type PaymentDetails struct {
	CardNumber string `json:"card_number" validate:"required,card_number"`
	Expiry     string `json:"expiry" validate:"required,card_expiry"`
	CardHolder string `json:"card_holder" validate:"required"`
}

type Checkout struct {
	GuestName  string    `json:"guest_name"`
	Email      string    `json:"email"`
	Nights     int       `json:"nights"`
	Total      float64   `json:"total"`
	TotalText  string    `json:"total_text"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	CardMasked string    `json:"card_masked"`
	Expiry     string    `json:"expiry"`
	PreparedAt time.Time `json:"prepared_at"`
}
