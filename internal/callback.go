package internal

import (
	"errors"
	"fmt"
	"strconv"

	"hotelpay/entity"
)

var (
	ErrMissingSignature  = errors.New("callback has no check mac value")
	ErrMerchantMismatch  = errors.New("callback merchant does not match credentials")
	ErrSignatureMismatch = errors.New("check mac value mismatch")
	ErrMalformedResult   = errors.New("malformed trade result")
)

// VerifyCallback authenticates an inbound gateway payload against the
// credential set that issued the original request. The payload is
// untrusted input: nothing is canonicalized before the signature field is
// known to exist, and a merchant mismatch is rejected before any checksum
// work. The call is pure; running it twice yields the same result.
func VerifyCallback(payload map[string]string, creds *entity.CredentialSet) (map[string]string, error) {
	if creds == nil || creds.MerchantID == "" {
		return nil, ErrNoCredentials
	}
	received, ok := payload[checkMacField]
	if !ok || received == "" {
		return nil, ErrMissingSignature
	}
	if payload["MerchantID"] != creds.MerchantID {
		return nil, ErrMerchantMismatch
	}
	canonical := Canonicalize(payload, creds.SigningKey, creds.SigningIV)
	if !VerifySignature(received, canonical) {
		return nil, ErrSignatureMismatch
	}
	return payload, nil
}

// ParseTradeResult extracts the typed result fields from a payload that
// already passed verification. A missing or non-numeric required field is
// data corruption and fails the parse; it is never silently defaulted.
func ParseTradeResult(payload map[string]string) (*entity.TradeResult, error) {
	result := &entity.TradeResult{
		PaymentDate:  payload["PaymentDate"],
		PaymentType:  payload["PaymentType"],
		ChargeFee:    payload["PaymentTypeChargeFee"],
		TradeDate:    payload["TradeDate"],
		SimulatePaid: payload["SimulatePaid"] == "1",
	}

	var err error
	if result.TradeNo, err = requireField(payload, "MerchantTradeNo"); err != nil {
		return nil, err
	}
	if result.GatewayTradeNo, err = requireField(payload, "TradeNo"); err != nil {
		return nil, err
	}
	if result.ReturnCode, err = requireInt(payload, "RtnCode"); err != nil {
		return nil, err
	}
	if _, ok := payload["RtnMsg"]; !ok {
		return nil, fmt.Errorf("%w: missing RtnMsg", ErrMalformedResult)
	}
	result.ReturnMessage = payload["RtnMsg"]
	if result.Amount, err = requireInt(payload, "TradeAmt"); err != nil {
		return nil, err
	}

	return result, nil
}

func requireField(payload map[string]string, name string) (string, error) {
	value, ok := payload[name]
	if !ok || value == "" {
		return "", fmt.Errorf("%w: missing %s", ErrMalformedResult, name)
	}
	return value, nil
}

func requireInt(payload map[string]string, name string) (int, error) {
	value, err := requireField(payload, name)
	if err != nil {
		return 0, err
	}
	number, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not a number: %q", ErrMalformedResult, name, value)
	}
	return number, nil
}
