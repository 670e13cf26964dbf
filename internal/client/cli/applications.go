package cli

import (
	"context"
	"fmt"

	"github.com/internova/internova/internal/models"
)

func (a *App) apply(ctx context.Context, internshipID string) {
	acc, ok := a.store.CurrentUser()
	if !ok || acc.Type != models.AccountTypeStudent {
		fmt.Println("Only student accounts can apply")
		return
	}

	in, ok := a.store.InternshipByID(ctx, internshipID)
	if !ok {
		fmt.Println("Internship not found:", internshipID)
		return
	}

	app := a.store.Apply(ctx, acc, in)
	fmt.Printf("Applied to %s at %s (application %s)\n", in.Title, in.Company, app.ID)
}

func (a *App) myApplications(ctx context.Context) {
	acc, ok := a.store.CurrentUser()
	if !ok {
		fmt.Println("Log in first")
		return
	}

	apps := a.store.ApplicationsByStudent(ctx, acc.ID)
	if len(apps) == 0 {
		fmt.Println("No applications yet")
		return
	}
	for _, app := range apps {
		title := app.InternshipID
		if in, ok := a.store.InternshipByID(ctx, app.InternshipID); ok {
			title = fmt.Sprintf("%s at %s", in.Title, in.Company)
		}
		fmt.Printf("[%s] %s: %s\n", app.ID, title, app.Status)
	}
}

func (a *App) applicants(ctx context.Context) {
	acc, ok := a.store.CurrentUser()
	if !ok || acc.Type != models.AccountTypeCompany {
		fmt.Println("Only company accounts can review applicants")
		return
	}

	name := acc.Profile.Company
	if name == "" {
		name = acc.Name
	}
	apps := a.store.ApplicationsByCompany(ctx, acc.ID, name)
	if len(apps) == 0 {
		fmt.Println("No applications yet")
		return
	}
	for _, app := range apps {
		fmt.Printf("[%s] %s <%s>: %s", app.ID, app.StudentName, app.StudentEmail, app.Status)
		if len(app.StudentProfile.Skills) > 0 {
			fmt.Printf("  skills: %v", app.StudentProfile.Skills)
		}
		fmt.Println()
	}
}

func (a *App) setStatus(ctx context.Context, applicationID, status string) {
	switch models.ApplicationStatus(status) {
	case models.ApplicationStatusApplied, models.ApplicationStatusUnderReview,
		models.ApplicationStatusAccepted, models.ApplicationStatusRejected:
	default:
		fmt.Println("Unknown status:", status)
		return
	}

	if !a.store.UpdateApplicationStatus(ctx, applicationID, models.ApplicationStatus(status)) {
		fmt.Println("Application not found:", applicationID)
		return
	}
	fmt.Printf("Application %s moved to %s\n", applicationID, status)
}
