package internal

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"hotelpay/entity"
)

const (
	paymentTypeAIO   = "aio"
	choosePayment    = "Credit"
	encryptTypeSHA   = "1"
	tradeNoMaxLength = 20
	tradeDateLayout  = "2006/01/02 15:04:05"
)

var (
	ErrTradeNoInvalid   = errors.New("invalid merchant trade number")
	ErrAmountInvalid    = errors.New("invalid trade amount")
	ErrURLInvalid       = errors.New("invalid callback url")
	ErrTradeDateInvalid = errors.New("invalid trade date")
)

// BuildCheckoutForm assembles the full outbound parameter set for one
// payment attempt and attaches the integrity code. It performs no I/O;
// the action URL comes from the credential environment alone. Validation
// happens before anything is signed, so nothing partially signed is ever
// returned.
func BuildCheckoutForm(req *entity.CheckoutRequest, creds *entity.CredentialSet) (*entity.CheckoutForm, error) {
	if creds == nil || creds.MerchantID == "" {
		return nil, ErrNoCredentials
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	actionURL := creds.GatewayURL
	if actionURL == "" {
		var err error
		actionURL, err = GatewayURL(creds.Environment)
		if err != nil {
			return nil, err
		}
	}

	params := map[string]string{
		"MerchantID":        creds.MerchantID,
		"MerchantTradeNo":   req.TradeNo,
		"MerchantTradeDate": req.TradeDate,
		"PaymentType":       paymentTypeAIO,
		"TotalAmount":       strconv.Itoa(req.Amount),
		"TradeDesc":         req.Description,
		"ItemName":          req.ItemName,
		"ReturnURL":         req.ReturnURL,
		"OrderResultURL":    req.ResultURL,
		"ChoosePayment":     choosePayment,
		"EncryptType":       encryptTypeSHA,
		"ClientBackURL":     req.ClientBackURL,
		"CustomerName":      req.CustomerName,
		"CustomerEmail":     req.CustomerEmail,
		"CustomerPhone":     req.CustomerPhone,
	}
	params[checkMacField] = Sign(Canonicalize(params, creds.SigningKey, creds.SigningIV))

	return &entity.CheckoutForm{
		ActionURL: actionURL,
		Params:    params,
	}, nil
}

// validateRequest rejects malformed requests instead of silently fixing
// them: a trade number over the gateway limit is a caller contract
// violation, never truncated.
func validateRequest(req *entity.CheckoutRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrTradeNoInvalid)
	}
	if req.TradeNo == "" || len(req.TradeNo) > tradeNoMaxLength {
		return fmt.Errorf("%w: %q", ErrTradeNoInvalid, req.TradeNo)
	}
	if req.Amount < 0 {
		return fmt.Errorf("%w: %d", ErrAmountInvalid, req.Amount)
	}
	if _, err := time.Parse(tradeDateLayout, req.TradeDate); err != nil {
		return fmt.Errorf("%w: %q", ErrTradeDateInvalid, req.TradeDate)
	}
	if err := validateURL("ReturnURL", req.ReturnURL); err != nil {
		return err
	}
	if err := validateURL("OrderResultURL", req.ResultURL); err != nil {
		return err
	}
	// client back url is optional, checked only when present
	if req.ClientBackURL != "" {
		if err := validateURL("ClientBackURL", req.ClientBackURL); err != nil {
			return err
		}
	}
	return nil
}

func validateURL(name, value string) error {
	u, err := url.Parse(value)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: %s %q", ErrURLInvalid, name, value)
	}
	return nil
}
