// Package config provides configuration management for the hotel payment service.
// Configuration can be loaded from YAML files and overridden by environment variables.
package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"sync"
)

// Credentials is one merchant credential block as loaded from configuration.
// The signing key and IV are shared secrets; they never leave this process.
type Credentials struct {
	MerchantID string `yaml:"merchant_id"`
	SigningKey string `yaml:"signing_key"`
	SigningIV  string `yaml:"signing_iv"`
}

// Config holds all configuration for the hotel payment service.
// Values can be set via YAML configuration file or environment variables.
// Environment variables take precedence over YAML values.
type Config struct {
	IsDebug bool `yaml:"is_debug" env:"DEBUG" env-default:"false"`
	// Environment is the deployment-level flag; production merchant
	// credentials are refused unless it is set to "production".
	Environment string `yaml:"environment" env:"ENVIRONMENT" env-default:"test"`
	LogRecords  int64  `yaml:"log_records" env:"LOG_RECORDS" env-default:"0"`
	Listen      struct {
		Type     string `yaml:"type" env:"LISTEN_TYPE" env-default:"port"`
		BindIP   string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env:"PORT" env-default:"5200"`
		TLS      bool   `yaml:"tls_enabled" env:"TLS_ENABLED" env-default:"false"`
		CertFile string `yaml:"cert_file" env:"TLS_CERT_FILE" env-default:""`
		KeyFile  string `yaml:"key_file" env:"TLS_KEY_FILE" env-default:""`
	} `yaml:"listen"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:"admin"`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:"pass"`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:""`
	} `yaml:"mongo"`
	Merchant struct {
		// Environment selects which credential block signs requests.
		Environment string      `yaml:"environment" env:"MERCHANT_ENV" env-default:"test"`
		Test        Credentials `yaml:"test"`
		Production  Credentials `yaml:"production"`
	} `yaml:"merchant"`
	Callback struct {
		ReturnURL     string `yaml:"return_url" env:"CALLBACK_RETURN_URL" env-default:""`
		ResultURL     string `yaml:"result_url" env:"CALLBACK_RESULT_URL" env-default:""`
		ClientBackURL string `yaml:"client_back_url" env:"CALLBACK_CLIENT_BACK_URL" env-default:""`
	} `yaml:"callback"`
}

var instance *Config
var once sync.Once

// GetConfig loads configuration from the specified YAML file path.
// Configuration values can be overridden by environment variables.
// This function uses a singleton pattern and only loads the config once.
//
// Environment variables take precedence over YAML values. See Config struct
// for the list of supported environment variables.
//
// Example:
//
//	cfg, err := config.GetConfig("config.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func GetConfig(path string) (*Config, error) {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("load config: %w; %s", err, desc)
			instance = nil
		}
	})
	return instance, err
}
