package app

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOGLEVEL"`

	GoogleSheetID     string `mapstructure:"GOOGLE_SHEET_ID"`
	KeyFilePath       string `mapstructure:"KEY_FILE_PATH"`
	SheetsEndpoint    string `mapstructure:"SHEETS_ENDPOINT"`
	SheetsReadRetries int    `mapstructure:"SHEETS_READ_RETRIES"`

	MedicalSheet       string `mapstructure:"MEDICAL_SHEET"`
	BloodPressureSheet string `mapstructure:"BLOOD_PRESSURE_SHEET"`
	UsersSheet         string `mapstructure:"USERS_SHEET"`

	CORSOrigins  []string `mapstructure:"CORS_ORIGINS"`
	MaxBodyBytes string   `mapstructure:"MAX_BODY_BYTES"`
	BcryptCost   int      `mapstructure:"BCRYPT_COST"`

	TwilioAccountSID string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `mapstructure:"TWILIO_FROM_NUMBER"`
	TwilioBaseURL    string `mapstructure:"TWILIO_BASE_URL"`
}

var configKeys = []string{
	"PORT",
	"ENV",
	"LOGLEVEL",
	"GOOGLE_SHEET_ID",
	"KEY_FILE_PATH",
	"SHEETS_ENDPOINT",
	"SHEETS_READ_RETRIES",
	"MEDICAL_SHEET",
	"BLOOD_PRESSURE_SHEET",
	"USERS_SHEET",
	"CORS_ORIGINS",
	"MAX_BODY_BYTES",
	"BCRYPT_COST",
	"TWILIO_ACCOUNT_SID",
	"TWILIO_AUTH_TOKEN",
	"TWILIO_FROM_NUMBER",
	"TWILIO_BASE_URL",
}

// Load reads configuration from the environment. A .env file, if any, has
// already been loaded into the environment by then.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("SHEETS_READ_RETRIES", 0)
	v.SetDefault("MEDICAL_SHEET", "Medical")
	v.SetDefault("BLOOD_PRESSURE_SHEET", "Blood Pressure")
	v.SetDefault("USERS_SHEET", "Users")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("MAX_BODY_BYTES", "1M")
	v.SetDefault("BCRYPT_COST", 10)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.CORSOrigins) == 0 {
		if origins := v.GetString("CORS_ORIGINS"); origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}
	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.GoogleSheetID == "" {
		return fmt.Errorf("GOOGLE_SHEET_ID is required")
	}
	if c.SheetsReadRetries < 0 {
		return fmt.Errorf("SHEETS_READ_RETRIES must not be negative, got %d", c.SheetsReadRetries)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// SMSConfigured reports whether all Twilio credentials are present.
func (c *Config) SMSConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}
