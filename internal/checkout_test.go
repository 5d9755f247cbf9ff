package internal

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelpay/config"
	"hotelpay/entity"
	"hotelpay/services"
)

// fakeDatabase keeps bookings and results in memory for service tests.
type fakeDatabase struct {
	bookings map[string]*entity.Booking
	results  []*entity.TradeResult
}

func newFakeDatabase(bookings ...*entity.Booking) *fakeDatabase {
	db := &fakeDatabase{bookings: map[string]*entity.Booking{}}
	for _, b := range bookings {
		db.bookings[b.Reference] = b
	}
	return db
}

func (f *fakeDatabase) WriteLogMessage(services.Data) error { return nil }

func (f *fakeDatabase) GetBooking(_ context.Context, reference string) (*entity.Booking, error) {
	booking, ok := f.bookings[reference]
	if !ok {
		return nil, assert.AnError
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeDatabase) GetBookingByTradeNo(_ context.Context, tradeNo string) (*entity.Booking, error) {
	for _, booking := range f.bookings {
		if booking.PaymentTradeNo == tradeNo {
			copied := *booking
			return &copied, nil
		}
	}
	return nil, assert.AnError
}

func (f *fakeDatabase) UpdateBooking(_ context.Context, booking *entity.Booking) error {
	copied := *booking
	f.bookings[booking.Reference] = &copied
	return nil
}

func (f *fakeDatabase) SavePaymentResult(_ context.Context, result *entity.TradeResult) error {
	f.results = append(f.results, result)
	return nil
}

func checkoutConfig() *config.Config {
	conf := testConfig()
	conf.Callback.ReturnURL = "https://hotel.example.com/payment/notify"
	conf.Callback.ResultURL = "https://hotel.example.com/payment/result"
	conf.Callback.ClientBackURL = "https://hotel.example.com/bookings"
	return conf
}

func pendingBooking() *entity.Booking {
	return &entity.Booking{
		Reference:  "BK26082301",
		RoomName:   "Double Room",
		Nights:     2,
		Amount:     6000,
		GuestName:  "Jane Roe",
		GuestEmail: "jane@example.com",
		GuestPhone: "0911222333",
		Status:     entity.BookingPending,
	}
}

func newTestCheckout(t *testing.T, db services.Database) *Checkout {
	t.Helper()
	checkout, err := NewCheckout(checkoutConfig())
	require.NoError(t, err)
	checkout.SetDatabase(db)
	checkout.SetLogger(NewLogger("checkout", false, nil))
	return checkout
}

func TestBeginCheckout(t *testing.T) {
	db := newFakeDatabase(pendingBooking())
	checkout := newTestCheckout(t, db)

	form, err := checkout.BeginCheckout(context.Background(), "BK26082301")
	require.NoError(t, err)

	assert.Equal(t, testGatewayURL, form.ActionURL)
	assert.Equal(t, "6000", form.Params["TotalAmount"])
	assert.Equal(t, "BK260823010001", form.Params["MerchantTradeNo"])
	assert.Equal(t, "Double Room x 2", form.Params["ItemName"])

	stored := db.bookings["BK26082301"]
	assert.Equal(t, 1, stored.PaymentAttempt)
	assert.Equal(t, "BK260823010001", stored.PaymentTradeNo)
	assert.Equal(t, entity.BookingPending, stored.Status)
}

func TestBeginCheckoutRetryBumpsAttempt(t *testing.T) {
	db := newFakeDatabase(pendingBooking())
	checkout := newTestCheckout(t, db)

	_, err := checkout.BeginCheckout(context.Background(), "BK26082301")
	require.NoError(t, err)
	form, err := checkout.BeginCheckout(context.Background(), "BK26082301")
	require.NoError(t, err)

	assert.Equal(t, "BK260823010002", form.Params["MerchantTradeNo"])
}

func TestBeginCheckoutAlreadyPaid(t *testing.T) {
	booking := pendingBooking()
	booking.Status = entity.BookingPaid
	checkout := newTestCheckout(t, newFakeDatabase(booking))

	_, err := checkout.BeginCheckout(context.Background(), "BK26082301")
	assert.Error(t, err)
}

func TestBeginCheckoutUnknownBooking(t *testing.T) {
	checkout := newTestCheckout(t, newFakeDatabase())
	_, err := checkout.BeginCheckout(context.Background(), "BK00000000")
	assert.Error(t, err)
}

// callbackBody signs a gateway-shaped notification for a trade and encodes
// it the way the gateway posts it.
func callbackBody(t *testing.T, tradeNo, amount, rtnCode, rtnMsg string) []byte {
	t.Helper()
	payload := map[string]string{
		"MerchantID":      "2000132",
		"MerchantTradeNo": tradeNo,
		"TradeNo":         "2608231430000001",
		"RtnCode":         rtnCode,
		"RtnMsg":          rtnMsg,
		"TradeAmt":        amount,
		"PaymentDate":     "2026/08/23 14:35:12",
		"PaymentType":     "Credit_CreditCard",
		"TradeDate":       "2026/08/23 14:30:00",
		"SimulatePaid":    "0",
	}
	payload[checkMacField] = Sign(Canonicalize(payload, testSigningKey, testSigningIV))

	values := url.Values{}
	for k, v := range payload {
		values.Set(k, v)
	}
	return []byte(values.Encode())
}

func TestNotifyMarksBookingPaid(t *testing.T) {
	db := newFakeDatabase(pendingBooking())
	checkout := newTestCheckout(t, db)

	_, err := checkout.BeginCheckout(context.Background(), "BK26082301")
	require.NoError(t, err)

	err = checkout.Notify(context.Background(), callbackBody(t, "BK260823010001", "6000", "1", "Succeeded"))
	require.NoError(t, err)

	stored := db.bookings["BK26082301"]
	assert.Equal(t, entity.BookingPaid, stored.Status)
	assert.Empty(t, stored.PaymentError)
	assert.False(t, stored.TimePaid.IsZero())
	require.Len(t, db.results, 1)
	assert.Equal(t, 6000, db.results[0].Amount)
}

func TestNotifyTamperedLeavesBookingUntouched(t *testing.T) {
	db := newFakeDatabase(pendingBooking())
	checkout := newTestCheckout(t, db)

	_, err := checkout.BeginCheckout(context.Background(), "BK26082301")
	require.NoError(t, err)

	body := callbackBody(t, "BK260823010001", "6000", "1", "Succeeded")
	tampered := []byte(string(body[:len(body)-1]) + "X")
	err = checkout.Notify(context.Background(), tampered)
	assert.Error(t, err)

	stored := db.bookings["BK26082301"]
	assert.Equal(t, entity.BookingPending, stored.Status)
	assert.Empty(t, db.results)
}

func TestNotifyAmountMismatch(t *testing.T) {
	db := newFakeDatabase(pendingBooking())
	checkout := newTestCheckout(t, db)

	_, err := checkout.BeginCheckout(context.Background(), "BK26082301")
	require.NoError(t, err)

	err = checkout.Notify(context.Background(), callbackBody(t, "BK260823010001", "1000", "1", "Succeeded"))
	assert.Error(t, err)
	assert.Equal(t, entity.BookingPending, db.bookings["BK26082301"].Status)
}

func TestNotifyFailedTrade(t *testing.T) {
	db := newFakeDatabase(pendingBooking())
	checkout := newTestCheckout(t, db)

	_, err := checkout.BeginCheckout(context.Background(), "BK26082301")
	require.NoError(t, err)

	err = checkout.Notify(context.Background(), callbackBody(t, "BK260823010001", "6000", "10200095", "Declined"))
	require.NoError(t, err)

	stored := db.bookings["BK26082301"]
	assert.Equal(t, entity.BookingFailed, stored.Status)
	assert.Equal(t, "Declined", stored.PaymentError)
}

func TestNotifyIdempotentOnPaidBooking(t *testing.T) {
	db := newFakeDatabase(pendingBooking())
	checkout := newTestCheckout(t, db)

	_, err := checkout.BeginCheckout(context.Background(), "BK26082301")
	require.NoError(t, err)

	body := callbackBody(t, "BK260823010001", "6000", "1", "Succeeded")
	require.NoError(t, checkout.Notify(context.Background(), body))
	paidAt := db.bookings["BK26082301"].TimePaid

	require.NoError(t, checkout.Notify(context.Background(), body))
	assert.Equal(t, paidAt, db.bookings["BK26082301"].TimePaid)
}
