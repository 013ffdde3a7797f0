package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/tripline/travel-services/wagateway/pkg/assistant"
	"github.com/tripline/travel-services/wagateway/pkg/flightinfo"
	"github.com/tripline/travel-services/wagateway/pkg/mq"
	"github.com/tripline/travel-services/wagateway/pkg/mysql"
	"github.com/tripline/travel-services/wagateway/pkg/twilio"
)

type Config struct {
	API        API               `mapstructure:"api"`
	Database   mysql.Config      `mapstructure:"database"`
	RabbitMQ   mq.Config         `mapstructure:"rabbitmq"`
	Twilio     twilio.Config     `mapstructure:"twilio"`
	Assistant  assistant.Config  `mapstructure:"assistant"`
	FlightInfo flightinfo.Config `mapstructure:"flightinfo"`
	Watch      Watch             `mapstructure:"watch"`
	Storage    Storage           `mapstructure:"storage"`
	Cron       Cron              `mapstructure:"cron"`
	Replies    Replies           `mapstructure:"replies"`
}

type API struct {
	Port          string `mapstructure:"port"`
	BasePublicURL string `mapstructure:"base_public_url"`
}

type Watch struct {
	Interval      time.Duration `mapstructure:"interval"`
	LookaheadDays int           `mapstructure:"lookahead_days"`
	NotifyCC      []string      `mapstructure:"notify_cc"`
}

type Storage struct {
	DataRoot string `mapstructure:"data_root"`
}

type Cron struct {
	Secret string `mapstructure:"secret"`
}

// Replies holds the configurable reply texts; the webhook never
// hardcodes user-facing copy.
type Replies struct {
	Help           string            `mapstructure:"help"`
	Fallback       string            `mapstructure:"fallback"`
	ResetDone      string            `mapstructure:"reset_done"`
	NoFlights      string            `mapstructure:"no_flights"`
	ContactAliases map[string]string `mapstructure:"contact_aliases"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Twilio.AccountSID == "" || c.Twilio.AuthToken == "" {
		return fmt.Errorf("twilio account_sid and auth_token are required")
	}

	if c.Twilio.WhatsAppFrom == "" {
		return fmt.Errorf("twilio whatsapp_from is required")
	}

	if c.Cron.Secret == "" {
		return fmt.Errorf("cron secret is required")
	}

	return nil
}
