package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "TASKSHEET"

// Config collects everything the sync needs from the environment, read once
// at startup so the pipeline itself never touches process env.
type Config struct {
	ClickUpToken  string `envconfig:"CLICKUP_TOKEN" required:"true"`
	ClickUpListID string `envconfig:"CLICKUP_LIST_ID"`
	ClickUpTeamID string `envconfig:"CLICKUP_TEAM_ID"`

	SheetID  string `envconfig:"SHEET_ID" required:"true"`
	SheetTab string `envconfig:"SHEET_TAB" default:"Tasks"`

	PageURLField string `envconfig:"PAGE_URL_FIELD" default:"Page URL"`

	GoogleCredentials string `envconfig:"GOOGLE_CREDENTIALS" required:"true"`
}

// Load reads and validates the configuration. Exactly one of the list id
// and the team id must be set; they select which ClickUp collection
// endpoint the run pulls from.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if cfg.ClickUpListID == "" && cfg.ClickUpTeamID == "" {
		return nil, fmt.Errorf("one of %s_CLICKUP_LIST_ID or %s_CLICKUP_TEAM_ID must be set", envPrefix, envPrefix)
	}
	if cfg.ClickUpListID != "" && cfg.ClickUpTeamID != "" {
		return nil, fmt.Errorf("%s_CLICKUP_LIST_ID and %s_CLICKUP_TEAM_ID are mutually exclusive", envPrefix, envPrefix)
	}
	return &cfg, nil
}
