package cli

import (
	"context"
	"fmt"
)

func (a *App) save(ctx context.Context, internshipID string) {
	acc, ok := a.store.CurrentUser()
	if !ok {
		fmt.Println("Log in first")
		return
	}
	a.store.Save(ctx, acc.ID, internshipID)
	fmt.Println("Saved:", internshipID)
}

func (a *App) unsave(ctx context.Context, internshipID string) {
	acc, ok := a.store.CurrentUser()
	if !ok {
		fmt.Println("Log in first")
		return
	}
	a.store.Unsave(ctx, acc.ID, internshipID)
	fmt.Println("Removed:", internshipID)
}

func (a *App) listSaved(ctx context.Context) {
	acc, ok := a.store.CurrentUser()
	if !ok {
		fmt.Println("Log in first")
		return
	}
	ids := a.store.Saved(ctx, acc.ID)
	if len(ids) == 0 {
		fmt.Println("Nothing saved yet")
		return
	}
	for _, id := range ids {
		if in, ok := a.store.InternshipByID(ctx, id); ok {
			fmt.Printf("[%s] %s at %s\n", in.ID, in.Title, in.Company)
		} else {
			fmt.Printf("[%s] (no longer listed)\n", id)
		}
	}
}
