package internal

import (
	"errors"
	"fmt"
	"hotelpay/config"
	"hotelpay/entity"
)

// The gateway exposes exactly two checkout endpoints, one per environment.
const (
	testGatewayURL       = "https://payment-stage.ecpay.com.tw/Cashier/AioCheckOut/V5"
	productionGatewayURL = "https://payment.ecpay.com.tw/Cashier/AioCheckOut/V5"
)

var (
	ErrNoCredentials      = errors.New("merchant credentials not configured")
	ErrUnknownEnvironment = errors.New("unknown merchant environment")
	// ErrEnvironmentConflict guards against charging live cards from a
	// non-production deployment: the deployment flag and the credential
	// set must both say "production".
	ErrEnvironmentConflict = errors.New("production credentials refused outside production deployment")
)

// GatewayURL returns the fixed checkout endpoint for an environment.
func GatewayURL(env entity.Environment) (string, error) {
	switch env {
	case entity.EnvTest:
		return testGatewayURL, nil
	case entity.EnvProduction:
		return productionGatewayURL, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, env)
}

// ResolveCredentials selects the credential set for one request scope.
// Explicit credentials are used verbatim; their environment field decides
// the gateway endpoint. Without explicit credentials the configured block
// named by merchant.environment is used. The result is never re-derived
// from the merchant id's shape.
func ResolveCredentials(conf *config.Config, explicit *entity.CredentialSet) (*entity.CredentialSet, error) {
	if conf == nil {
		return nil, fmt.Errorf("%w: configuration not loaded", ErrNoCredentials)
	}

	var creds entity.CredentialSet
	if explicit != nil {
		creds = *explicit
	} else {
		switch entity.Environment(conf.Merchant.Environment) {
		case entity.EnvTest:
			creds = fromBlock(conf.Merchant.Test, entity.EnvTest)
		case entity.EnvProduction:
			creds = fromBlock(conf.Merchant.Production, entity.EnvProduction)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownEnvironment, conf.Merchant.Environment)
		}
	}

	if creds.MerchantID == "" {
		return nil, ErrNoCredentials
	}
	if creds.Environment == entity.EnvProduction && conf.Environment != string(entity.EnvProduction) {
		return nil, ErrEnvironmentConflict
	}

	url, err := GatewayURL(creds.Environment)
	if err != nil {
		return nil, err
	}
	creds.GatewayURL = url

	return &creds, nil
}

func fromBlock(block config.Credentials, env entity.Environment) entity.CredentialSet {
	return entity.CredentialSet{
		MerchantID:  block.MerchantID,
		SigningKey:  block.SigningKey,
		SigningIV:   block.SigningIV,
		Environment: env,
	}
}
