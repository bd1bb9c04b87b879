package auth

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsService builds a Google Sheets client authenticated as a service
// account. The credential file is the JSON key downloaded from the Google
// Cloud console; it must carry client_email and private_key. The token
// exchange is non-interactive and scoped to spreadsheet read/write only.
func SheetsService(ctx context.Context, credentialsFile string) (*sheets.Service, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file %s: %w", credentialsFile, err)
	}

	cfg, err := google.JWTConfigFromJSON(b, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account credentials: %w", err)
	}
	if cfg.Email == "" || len(cfg.PrivateKey) == 0 {
		return nil, fmt.Errorf("service account credentials missing client_email or private_key")
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}
	return srv, nil
}
