package main

import (
	"context"
	"log"

	"github.com/harrisonrobin/tasksheet/pkg/auth"
	"github.com/harrisonrobin/tasksheet/pkg/clickup"
	"github.com/harrisonrobin/tasksheet/pkg/config"
	"github.com/harrisonrobin/tasksheet/pkg/record"
	"github.com/harrisonrobin/tasksheet/pkg/sheets"
	"github.com/joho/godotenv"
)

func main() {
	// A .env in the working directory is a convenience for local runs;
	// cron environments set real variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx := context.Background()

	srv, err := auth.SheetsService(ctx, cfg.GoogleCredentials)
	if err != nil {
		log.Fatalf("Google authentication failed: %v", err)
	}
	tab := sheets.NewWorksheet(srv, cfg.SheetID, cfg.SheetTab)

	client := clickup.NewClient(cfg.ClickUpToken)
	var fetch clickup.PageFunc
	if cfg.ClickUpTeamID != "" {
		fetch = client.TeamTasks(cfg.ClickUpTeamID)
	} else {
		fetch = client.ListTasks(cfg.ClickUpListID)
	}

	tasks, err := clickup.FetchAll(ctx, fetch)
	if err != nil {
		log.Fatalf("Error fetching tasks: %v", err)
	}

	records := record.Normalize(tasks, record.DefaultDoneStatuses, cfg.PageURLField)

	if err := sheets.EnsureHeader(ctx, tab, record.Columns); err != nil {
		log.Fatalf("Error ensuring header row: %v", err)
	}

	res, err := sheets.Upsert(ctx, tab, records)
	if err != nil {
		log.Fatalf("Error upserting rows: %v", err)
	}

	log.Printf("Sync complete: fetched=%d done=%d updated=%d appended=%d",
		len(tasks), len(records), res.Updated, res.Appended)
}
