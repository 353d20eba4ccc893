package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/squaredbusinessman/hotelkit/internal/booking"
	"github.com/squaredbusinessman/hotelkit/internal/format"
	"github.com/squaredbusinessman/hotelkit/internal/model"
	"github.com/squaredbusinessman/hotelkit/internal/validate"
)

var (
	ErrInvalidRequest    = errors.New("invalid booking request")
	ErrInvalidStay       = errors.New("check-out must be after check-in")
	ErrCardNumberFormat  = errors.New("card number must contain only digits")
	ErrInvalidCardNumber = errors.New("invalid card number")
)

type DraftClearer interface {
	Clear(ctx context.Context, formID string)
}

type CheckoutService interface {
	Prepare(ctx context.Context, req model.BookingRequest, pay model.PaymentDetails) (model.Checkout, error)
}

type checkoutService struct {
	drafts    DraftClearer
	formatter *format.Formatter
	now       func() time.Time
}

func NewCheckoutService(drafts DraftClearer, formatter *format.Formatter) CheckoutService {
	if drafts == nil {
		panic("nil draft clearer")
	}
	if formatter == nil {
		formatter = format.NewFormatter(format.DefaultLocale, format.DefaultCurrency)
	}
	return &checkoutService{
		drafts:    drafts,
		formatter: formatter,
		now:       time.Now,
	}
}

// Prepare проверяет форму бронирования и оплаты и собирает итог для страницы подтверждения.
// После успешной подготовки черновик формы больше не нужен и удаляется.
func (s *checkoutService) Prepare(
	ctx context.Context,
	req model.BookingRequest,
	pay model.PaymentDetails,
) (model.Checkout, error) {
	req.GuestName = strings.TrimSpace(req.GuestName)
	req.Email = strings.TrimSpace(req.Email)

	// формат номера проверяем до тегов: ErrCardNumberFormat не должен превращаться в ErrInvalidRequest
	number, ok := validate.CardDigits(pay.CardNumber)
	if !ok {
		return model.Checkout{}, ErrCardNumberFormat
	}
	if !validate.ValidCardNumber(number) {
		return model.Checkout{}, ErrInvalidCardNumber
	}

	if err := validate.Struct(req); err != nil {
		return model.Checkout{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if err := validate.Struct(pay); err != nil {
		return model.Checkout{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	quote := booking.CalculatePriceFromStrings(req.CheckIn, req.CheckOut, req.PricePerNight)
	if !quote.Valid {
		return model.Checkout{}, ErrInvalidStay
	}

	checkout := model.Checkout{
		GuestName:  req.GuestName,
		Email:      req.Email,
		Nights:     quote.Nights,
		Total:      quote.Total,
		TotalText:  s.formatter.FormatCurrency(quote.Total),
		CheckIn:    s.formatter.FormatDate(req.CheckIn),
		CheckOut:   s.formatter.FormatDate(req.CheckOut),
		CardMasked: format.MaskCardNumber(number),
		Expiry:     format.FormatExpiryDate(pay.Expiry),
		PreparedAt: s.now(),
	}

	if req.FormID != "" {
		s.drafts.Clear(ctx, req.FormID)
	}

	return checkout, nil
}
