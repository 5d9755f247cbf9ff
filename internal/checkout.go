package internal

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"hotelpay/config"
	"hotelpay/entity"
	"hotelpay/services"
)

// Checkout builds signed payment forms for bookings and processes gateway
// callbacks. Every operation works on its own data; credentials are
// resolved once at construction and read-only afterwards, so concurrent
// use needs no locking.
type Checkout struct {
	conf        *config.Config
	credentials *entity.CredentialSet
	database    services.Database
	logger      services.LogHandler
}

// NewCheckout resolves the configured credential set up front so a broken
// configuration fails at boot instead of on the first customer.
func NewCheckout(conf *config.Config) (*Checkout, error) {
	credentials, err := ResolveCredentials(conf, nil)
	if err != nil {
		return nil, err
	}
	return &Checkout{
		conf:        conf,
		credentials: credentials,
	}, nil
}

func (c *Checkout) SetDatabase(database services.Database) {
	c.database = database
}

func (c *Checkout) SetLogger(logger services.LogHandler) {
	c.logger = logger
	c.logger.Info(fmt.Sprintf("merchant %s on %s gateway", c.credentials.MerchantID, c.credentials.Environment))
}

// BeginCheckout prepares the signed redirect form for a pending booking.
// The trade number is derived from the booking reference plus the attempt
// counter, so a retried attempt keeps a stable identifier the gateway can
// deduplicate on.
func (c *Checkout) BeginCheckout(ctx context.Context, bookingRef string) (*entity.CheckoutForm, error) {
	if c.database == nil {
		return nil, fmt.Errorf("database not set")
	}
	if bookingRef == "" {
		return nil, fmt.Errorf("empty booking reference")
	}

	booking, err := c.database.GetBooking(ctx, bookingRef)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", bookingRef, err)
	}
	if booking.Status == entity.BookingPaid {
		return nil, fmt.Errorf("booking %s is already paid", bookingRef)
	}

	attempt := booking.PaymentAttempt + 1
	request := entity.CheckoutRequest{
		TradeNo:       tradeNumber(booking.Reference, attempt),
		TradeDate:     time.Now().Format(tradeDateLayout),
		Amount:        booking.Amount,
		Description:   fmt.Sprintf("Hotel booking %s", booking.Reference),
		ItemName:      fmt.Sprintf("%s x %d", booking.RoomName, booking.Nights),
		ReturnURL:     c.conf.Callback.ReturnURL,
		ResultURL:     c.conf.Callback.ResultURL,
		ClientBackURL: c.conf.Callback.ClientBackURL,
		CustomerName:  booking.GuestName,
		CustomerEmail: booking.GuestEmail,
		CustomerPhone: booking.GuestPhone,
	}

	form, err := BuildCheckoutForm(&request, c.credentials)
	if err != nil {
		return nil, fmt.Errorf("build form for booking %s: %w", bookingRef, err)
	}

	booking.PaymentAttempt = attempt
	booking.PaymentTradeNo = request.TradeNo
	if err = c.database.UpdateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("update booking %s: %w", bookingRef, err)
	}

	c.logger.Info(fmt.Sprintf("checkout %s: trade %s, amount %d", bookingRef, request.TradeNo, request.Amount))
	return form, nil
}

// Notify processes a payment notification from the gateway. A payload
// that fails verification is a potential forgery: it is logged and
// rejected without touching any booking state.
func (c *Checkout) Notify(ctx context.Context, data []byte) error {
	if c.database == nil {
		return fmt.Errorf("database not set")
	}

	values, err := url.ParseQuery(string(data))
	if err != nil {
		c.logger.Info(string(data))
		return fmt.Errorf("parse query: %w", err)
	}
	payload := make(map[string]string, len(values))
	for key := range values {
		payload[key] = values.Get(key)
	}

	verified, err := VerifyCallback(payload, c.credentials)
	if err != nil {
		c.logger.Warn(fmt.Sprintf("callback rejected: %v", err))
		return err
	}

	result, err := ParseTradeResult(verified)
	if err != nil {
		c.logger.Warn(fmt.Sprintf("callback parse: %v", err))
		return err
	}
	c.logger.Debug(fmt.Sprintf("callback: trade %s, code %d, amount %d", result.TradeNo, result.ReturnCode, result.Amount))

	if err = c.database.SavePaymentResult(ctx, result); err != nil {
		c.logger.Error("save payment result", err)
	}

	booking, err := c.database.GetBookingByTradeNo(ctx, result.TradeNo)
	if err != nil {
		return fmt.Errorf("no booking for trade %s: %w", result.TradeNo, err)
	}

	if result.ReturnCode != 1 {
		booking.Status = entity.BookingFailed
		booking.PaymentError = result.ReturnMessage
		if err = c.database.UpdateBooking(ctx, booking); err != nil {
			c.logger.Error("update booking", err)
		}
		c.logger.Warn(fmt.Sprintf("trade %s failed: %d %s", result.TradeNo, result.ReturnCode, result.ReturnMessage))
		return nil
	}

	if result.Amount != booking.Amount {
		return fmt.Errorf("trade %s amount %d does not match booking amount %d",
			result.TradeNo, result.Amount, booking.Amount)
	}

	if booking.Status == entity.BookingPaid {
		c.logger.Info(fmt.Sprintf("trade %s: booking %s already paid", result.TradeNo, booking.Reference))
		return nil
	}

	booking.Status = entity.BookingPaid
	booking.PaymentError = ""
	booking.TimePaid = time.Now()
	if err = c.database.UpdateBooking(ctx, booking); err != nil {
		return fmt.Errorf("update booking %s: %w", booking.Reference, err)
	}
	if result.SimulatePaid {
		c.logger.Warn(fmt.Sprintf("booking %s paid in simulation mode", booking.Reference))
	} else {
		c.logger.Info(fmt.Sprintf("booking %s paid, amount %d", booking.Reference, result.Amount))
	}

	return nil
}

// tradeNumber keeps the reference prefix stable across attempts; the
// builder rejects anything over the gateway limit.
func tradeNumber(reference string, attempt int) string {
	return fmt.Sprintf("%s%04d", reference, attempt)
}
