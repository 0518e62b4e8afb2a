package sheets

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Config describes which spreadsheet to talk to and how to authenticate.
type Config struct {
	SpreadsheetID string
	// CredentialsFile points at a service-account key. When empty the client
	// falls back to Application Default Credentials.
	CredentialsFile string
	// Endpoint overrides the API base URL, used against local fakes.
	Endpoint string
}

func (c Config) validate() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("spreadsheet ID is required")
	}
	return nil
}

// clientOptions builds the option list for sheets.NewService.
func (c Config) clientOptions() []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}

	if c.Endpoint != "" {
		log.Debug().Str("endpoint", c.Endpoint).Msg("Using custom sheets endpoint without authentication")
		return append(opts, option.WithEndpoint(c.Endpoint), option.WithoutAuthentication())
	}

	if c.CredentialsFile != "" {
		if os.Getenv("K_SERVICE") != "" || os.Getenv("K_REVISION") != "" {
			log.Warn().Msg("KEY_FILE_PATH is set in a Cloud Run environment; unset it to use the service identity")
		}
		log.Debug().Str("credentials_file", c.CredentialsFile).Msg("Using service account key file")
		return append(opts, option.WithCredentialsFile(c.CredentialsFile))
	}

	log.Debug().Msg("Using application default credentials")
	return opts
}
