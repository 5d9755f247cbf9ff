package services

import (
	"context"
	"hotelpay/entity"
)

type Database interface {
	WriteLogMessage(data Data) error

	GetBooking(ctx context.Context, reference string) (*entity.Booking, error)
	GetBookingByTradeNo(ctx context.Context, tradeNo string) (*entity.Booking, error)
	UpdateBooking(ctx context.Context, booking *entity.Booking) error

	SavePaymentResult(ctx context.Context, result *entity.TradeResult) error
}

type Data interface {
	DataType() string
}
