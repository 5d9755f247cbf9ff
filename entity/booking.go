package entity

import "time"

const (
	BookingPending = "pending"
	BookingPaid    = "paid"
	BookingFailed  = "failed"
)

// Booking is the payment-relevant slice of a hotel booking record.
// The admin application owns the full record; this service only reads
// the payable amount and advances the payment status.
type Booking struct {
	Reference      string    `json:"reference" bson:"reference"`
	RoomName       string    `json:"room_name" bson:"room_name"`
	Nights         int       `json:"nights" bson:"nights"`
	Amount         int       `json:"amount" bson:"amount"`
	GuestName      string    `json:"guest_name" bson:"guest_name"`
	GuestEmail     string    `json:"guest_email" bson:"guest_email"`
	GuestPhone     string    `json:"guest_phone" bson:"guest_phone"`
	Status         string    `json:"status" bson:"status"`
	PaymentAttempt int       `json:"payment_attempt" bson:"payment_attempt"`
	PaymentTradeNo string    `json:"payment_trade_no" bson:"payment_trade_no"`
	PaymentError   string    `json:"payment_error" bson:"payment_error"`
	TimeCreated    time.Time `json:"time_created" bson:"time_created"`
	TimePaid       time.Time `json:"time_paid,omitempty" bson:"time_paid"`
}
