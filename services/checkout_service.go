package services

import (
	"context"
	"hotelpay/entity"
)

type Checkout interface {
	BeginCheckout(ctx context.Context, bookingRef string) (*entity.CheckoutForm, error)
	Notify(ctx context.Context, data []byte) error
}
