package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/internova/internova/internal/models"
)

func printListing(in models.Internship) {
	fmt.Printf("[%s] %s at %s", in.ID, in.Title, in.Company)
	if in.Location != "" {
		fmt.Printf(" (%s", in.Location)
		if in.Mode != "" {
			fmt.Printf(", %s", in.Mode)
		}
		fmt.Print(")")
	}
	if in.MatchScore > 0 {
		fmt.Printf("  match: %d%%", in.MatchScore)
	}
	fmt.Println()
}

func (a *App) list(ctx context.Context) {
	items := a.store.Enriched(ctx, a.store.Internships(ctx))
	if len(items) == 0 {
		fmt.Println("No internships found")
		return
	}
	for _, in := range items {
		printListing(in)
	}
}

func (a *App) show(ctx context.Context, id string) {
	in, ok := a.store.InternshipByID(ctx, id)
	if !ok {
		fmt.Println("Internship not found:", id)
		return
	}
	enriched := a.store.Enriched(ctx, []models.Internship{in})[0]

	fmt.Printf("%s at %s\n", enriched.Title, enriched.Company)
	if enriched.Location != "" {
		fmt.Printf("Location: %s (%s)\n", enriched.Location, enriched.Mode)
	}
	if enriched.Duration != "" {
		fmt.Printf("Duration: %s\n", enriched.Duration)
	}
	if enriched.Stipend != "" {
		fmt.Printf("Stipend: %s\n", enriched.Stipend)
	}
	if len(enriched.Skills) > 0 {
		fmt.Printf("Skills: %v\n", enriched.Skills)
	}
	if enriched.Description != "" {
		fmt.Println(enriched.Description)
	}
	if acc, ok := a.store.CurrentUser(); ok && acc.Type == models.AccountTypeStudent {
		fmt.Printf("Match score: %d%%, estimated acceptance: %d%%, applicants: %d\n",
			enriched.MatchScore, enriched.AcceptanceRate, enriched.Applicants)
	}
}

func (a *App) recommend(ctx context.Context) {
	acc, ok := a.store.CurrentUser()
	if !ok {
		fmt.Println("Log in first")
		return
	}
	items := a.store.Recommended(ctx, acc.Profile.Skills)
	if len(items) == 0 {
		fmt.Println("No recommendations yet; add skills to your profile")
		return
	}
	for _, in := range items {
		printListing(in)
	}
}

func (a *App) post(ctx context.Context) {
	acc, ok := a.store.CurrentUser()
	if !ok || acc.Type != models.AccountTypeCompany {
		fmt.Println("Only company accounts can post internships")
		return
	}

	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	location, err := getSimpleText(a.reader, "Location", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	mode, err := getSimpleText(a.reader, "Work mode (Remote/On-site/Hybrid)", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	stipend, err := getSimpleText(a.reader, "Stipend", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	skills, err := GetSkillList(a.reader, "Required skills", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	description, err := GetMultiline(a.reader, "Description", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	company := acc.Profile.Company
	if company == "" {
		company = acc.Name
	}

	created := a.store.CreateInternship(ctx, models.Internship{
		CompanyID:   acc.ID,
		Title:       title,
		Company:     company,
		Location:    location,
		Mode:        models.WorkMode(mode),
		Stipend:     stipend,
		Skills:      skills,
		Description: description,
	})
	fmt.Println("Posted:", created.ID)
}

func (a *App) myListings(ctx context.Context) {
	acc, ok := a.store.CurrentUser()
	if !ok || acc.Type != models.AccountTypeCompany {
		fmt.Println("Only company accounts have listings")
		return
	}
	name := acc.Profile.Company
	if name == "" {
		name = acc.Name
	}
	items := a.store.InternshipsByOwner(ctx, acc.ID, name)
	if len(items) == 0 {
		fmt.Println("No listings yet; use 'post' to create one")
		return
	}
	for _, in := range items {
		status := in.Status
		if status == "" {
			status = models.ListingStatusActive
		}
		fmt.Printf("[%s] %s (%s)\n", in.ID, in.Title, status)
	}
}

func (a *App) closeListing(ctx context.Context, id string) {
	status := models.ListingStatusClosed
	if !a.store.UpdateInternship(ctx, id, models.InternshipUpdate{Status: &status}) {
		fmt.Println("Internship not found:", id)
		return
	}
	fmt.Println("Closed:", id)
}

func (a *App) deleteListing(ctx context.Context, id string) {
	a.store.DeleteInternship(ctx, id)
	fmt.Println("Deleted:", id)
}
