// Package entity defines data models for the hotel payment service.
package entity

// Environment distinguishes the gateway's staging and live endpoints.
type Environment string

const (
	EnvTest       Environment = "test"
	EnvProduction Environment = "production"
)

// CredentialSet is the merchant identity bound to one environment.
// It is resolved once per request scope and never mutated afterwards.
type CredentialSet struct {
	MerchantID  string
	SigningKey  string
	SigningIV   string
	GatewayURL  string
	Environment Environment
}
