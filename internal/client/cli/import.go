package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/internova/internova/internal/models"
)

func (a *App) importListings(ctx context.Context) {
	acc, ok := a.store.CurrentUser()
	if !ok || acc.Type != models.AccountTypeCompany {
		fmt.Println("Only company accounts can import listings")
		return
	}

	path, err := getSimpleText(a.reader, "Path to CSV file", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Cannot read file: %s", err.Error())
		return
	}

	source, err := getSimpleText(a.reader, "Source label (e.g. internshala)", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	dedupe, err := getSimpleText(a.reader, "Skip duplicates? (y/n)", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	result, err := a.remote.ImportInternships(ctx, string(data), source, dedupe == "y")
	if err != nil {
		log.Printf("Import failed: %s", err.Error())
		return
	}

	fmt.Printf("Imported %d, skipped %d duplicates, %d invalid rows\n",
		result.Imported, result.Skipped, result.Invalid)
	for _, rec := range result.InvalidRecords {
		fmt.Println("  invalid:", rec)
	}
}

func (a *App) stats(ctx context.Context) {
	stats, err := a.remote.InternshipStats(ctx)
	if err != nil {
		log.Printf("Stats unavailable: %s", err.Error())
		return
	}

	fmt.Printf("Listings: %d total, %d active, %d closed, %d companies\n",
		stats.Total, stats.Active, stats.Closed, stats.Companies)
	for _, src := range stats.Sources {
		fmt.Printf("  %s: %d\n", src.Source, src.Count)
	}
}
