// Package importer parses bulk CSV feeds of internship listings into domain
// records, reporting per-row outcomes.
package importer

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/internova/internova/internal/models"
)

// Result summarizes one import run. Skipped counts rows dropped as
// duplicates; Invalid counts rows missing a title or company.
type Result struct {
	Listings       []models.Internship
	Imported       int
	Skipped        int
	Invalid        int
	InvalidRecords []map[string]string
}

// headerAliases maps accepted CSV column names onto canonical fields.
// Matching is case-insensitive; feeds from different boards disagree on
// naming.
var headerAliases = map[string]string{
	"title":          "title",
	"role":           "title",
	"position":       "title",
	"company":        "company",
	"company_name":   "company",
	"organization":   "company",
	"location":       "location",
	"city":           "location",
	"type":           "mode",
	"mode":           "mode",
	"work_mode":      "mode",
	"duration":       "duration",
	"stipend":        "stipend",
	"salary":         "stipend",
	"stipend_amount": "stipend_amount",
	"description":    "description",
	"details":        "description",
	"skills":         "skills",
	"requirements":   "skills",
	"tags":           "skills",
}

// Parse reads csvData and converts each row into a listing tagged with the
// given source. When removeDupes is set, rows whose title and company match
// an earlier row (or an entry of existing) are skipped. Rows without a title
// or company are collected as invalid; they never fail the whole import.
func Parse(csvData, source string, removeDupes bool, existing []models.Internship) (Result, error) {
	reader := csv.NewReader(strings.NewReader(csvData))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) == 0 {
		return Result{}, fmt.Errorf("csv has no header row")
	}

	// Resolve each column to a canonical field, ignoring unknown columns.
	fields := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		fields[i] = headerAliases[strings.ToLower(strings.TrimSpace(h))]
	}

	seen := make(map[string]struct{}, len(existing))
	for _, in := range existing {
		seen[dedupeKey(in.Title, in.Company)] = struct{}{}
	}

	var res Result
	now := time.Now()

	for _, row := range rows[1:] {
		record := make(map[string]string)
		for i, cell := range row {
			if i < len(fields) && fields[i] != "" {
				record[fields[i]] = strings.TrimSpace(cell)
			}
		}

		if record["title"] == "" || record["company"] == "" {
			res.Invalid++
			res.InvalidRecords = append(res.InvalidRecords, record)
			continue
		}

		key := dedupeKey(record["title"], record["company"])
		if removeDupes {
			if _, dup := seen[key]; dup {
				res.Skipped++
				continue
			}
		}
		seen[key] = struct{}{}

		amount, _ := strconv.Atoi(record["stipend_amount"])

		res.Listings = append(res.Listings, models.Internship{
			ID:            "imp_" + uuid.NewString(),
			Title:         record["title"],
			Company:       record["company"],
			Location:      record["location"],
			Mode:          models.WorkMode(record["mode"]),
			Duration:      record["duration"],
			Stipend:       record["stipend"],
			StipendAmount: amount,
			Description:   record["description"],
			Skills:        splitSkills(record["skills"]),
			Source:        source,
			Posted:        now,
			CreatedAt:     now,
			Status:        models.ListingStatusActive,
		})
		res.Imported++
	}

	return res, nil
}

func dedupeKey(title, company string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "|" + strings.ToLower(strings.TrimSpace(company))
}

func splitSkills(raw string) []string {
	if raw == "" {
		return nil
	}
	sep := ","
	if strings.Contains(raw, ";") {
		sep = ";"
	}
	return models.DedupeSkills(strings.Split(raw, sep))
}
