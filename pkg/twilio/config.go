package twilio

import "time"

type Config struct {
	AccountSID      string        `mapstructure:"account_sid"`
	AuthToken       string        `mapstructure:"auth_token"`
	WhatsAppFrom    string        `mapstructure:"whatsapp_from"`
	BaseURL         string        `mapstructure:"base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxRetry        int           `mapstructure:"max_retry"`
	VerifySignature bool          `mapstructure:"verify_signature"`
}
