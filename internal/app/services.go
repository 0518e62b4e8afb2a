package app

import (
	"context"
	"fmt"

	"health_tracker/internal/auth"
	"health_tracker/internal/config"
	"health_tracker/internal/httpapi"
	"health_tracker/internal/notifications"
	"health_tracker/internal/records"
	"health_tracker/internal/sheets"

	"github.com/rs/zerolog/log"
)

// Services holds the clients and domain objects built from a Config.
type Services struct {
	Sheets *sheets.Client
	Store  *records.Store
	Auth   *auth.Authenticator
	SMS    *notifications.Client
}

// InitializeServices creates the Google Sheets client and everything layered
// on top of it.
func InitializeServices(ctx context.Context, cfg *Config) (*Services, error) {
	log.Debug().Msg("Initializing clients")

	sheetsClient, err := sheets.NewClient(ctx, sheets.Config{
		SpreadsheetID:   cfg.GoogleSheetID,
		CredentialsFile: cfg.KeyFilePath,
		Endpoint:        cfg.SheetsEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	resilience := config.DefaultResilienceConfig.WithReadRetries(cfg.SheetsReadRetries, sheets.IsRetryable)
	store := records.NewStore(sheetsClient, resilience)

	smsClient := InitializeNotificationClient(cfg)

	log.Debug().Msg("Clients initialized successfully")
	return &Services{
		Sheets: sheetsClient,
		Store:  store,
		Auth:   auth.NewAuthenticator(store, cfg.UsersSheet, cfg.BcryptCost),
		SMS:    smsClient,
	}, nil
}

// InitializeNotificationClient creates the SMS client. Without credentials
// the client is disabled and every send fails.
func InitializeNotificationClient(cfg *Config) *notifications.Client {
	client := notifications.NewClient(cfg.TwilioBaseURL, cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)

	if client.Enabled() {
		log.Info().Str("from", cfg.TwilioFromNumber).Msg("SMS enabled")
	} else {
		log.Warn().Msg("SMS disabled: TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_FROM_NUMBER are required")
	}
	return client
}

func (s *Services) NewServer(cfg *Config) *httpapi.Server {
	return httpapi.NewServer(s.Store, s.Auth, s.SMS, httpapi.ServerConfig{
		MedicalSheet:       cfg.MedicalSheet,
		BloodPressureSheet: cfg.BloodPressureSheet,
		CORSOrigins:        cfg.CORSOrigins,
		BodyLimit:          cfg.MaxBodyBytes,
	})
}
