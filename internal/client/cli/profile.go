package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/internova/internova/internal/models"
)

func (a *App) profile(ctx context.Context) {
	acc, ok := a.store.CurrentUser()
	if !ok {
		fmt.Println("Log in first")
		return
	}

	fmt.Printf("%s <%s> (%s)\n", acc.Name, acc.Email, acc.Type)
	p := acc.Profile
	if acc.Type == models.AccountTypeCompany {
		if p.Company != "" {
			fmt.Println("Company:", p.Company)
		}
		if p.Website != "" {
			fmt.Println("Website:", p.Website)
		}
		if p.Description != "" {
			fmt.Println(p.Description)
		}
		return
	}

	if p.University != "" {
		fmt.Printf("%s, %s (year %s)\n", p.University, p.Course, p.Year)
	}
	if p.CGPA != "" {
		fmt.Println("CGPA:", p.CGPA)
	}
	if len(p.Skills) > 0 {
		fmt.Printf("Skills: %v\n", p.Skills)
	}
	if p.Bio != "" {
		fmt.Println(p.Bio)
	}
	fmt.Printf("Profile completeness: %d%%\n", a.store.ProfileCompleteness())
}

func (a *App) editProfile(ctx context.Context) {
	acc, ok := a.store.CurrentUser()
	if !ok {
		fmt.Println("Log in first")
		return
	}

	var upd models.Profile
	var err error

	if acc.Type == models.AccountTypeCompany {
		if upd.Company, err = getSimpleText(a.reader, "Company name (empty to keep)", os.Stdout); err != nil {
			log.Println(err.Error())
			return
		}
		if upd.Website, err = getSimpleText(a.reader, "Website (empty to keep)", os.Stdout); err != nil {
			log.Println(err.Error())
			return
		}
		if upd.Description, err = GetMultiline(a.reader, "Description (empty to keep)", os.Stdout); err != nil {
			log.Println(err.Error())
			return
		}
	} else {
		if upd.University, err = getSimpleText(a.reader, "University (empty to keep)", os.Stdout); err != nil {
			log.Println(err.Error())
			return
		}
		if upd.Course, err = getSimpleText(a.reader, "Course (empty to keep)", os.Stdout); err != nil {
			log.Println(err.Error())
			return
		}
		if upd.Year, err = getSimpleText(a.reader, "Year (empty to keep)", os.Stdout); err != nil {
			log.Println(err.Error())
			return
		}
		if upd.CGPA, err = getSimpleText(a.reader, "CGPA (empty to keep)", os.Stdout); err != nil {
			log.Println(err.Error())
			return
		}
		if upd.Skills, err = GetSkillList(a.reader, "Skills (empty to keep)", os.Stdout); err != nil {
			log.Println(err.Error())
			return
		}
		if upd.Bio, err = GetMultiline(a.reader, "Bio (empty to keep)", os.Stdout); err != nil {
			log.Println(err.Error())
			return
		}
	}
	if upd.Location, err = getSimpleText(a.reader, "Location (empty to keep)", os.Stdout); err != nil {
		log.Println(err.Error())
		return
	}

	if _, err := a.store.UpdateProfile(ctx, upd); err != nil {
		log.Printf("Profile update failed: %s", err.Error())
		return
	}
	fmt.Println("Profile updated")
}

func (a *App) extractSkills(ctx context.Context) {
	text, err := GetMultiline(a.reader, "Paste resume text", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	skills := a.store.ExtractResumeSkills(ctx, text)
	if len(skills) == 0 {
		fmt.Println("No new skills found")
		return
	}
	fmt.Printf("Suggested skills: %v\n", skills)

	answer, err := getSimpleText(a.reader, "Add them to your profile? (y/n)", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	if answer != "y" {
		return
	}

	acc, _ := a.store.CurrentUser()
	merged := models.DedupeSkills(append(acc.Profile.Skills, skills...))
	if _, err := a.store.UpdateProfile(ctx, models.Profile{Skills: merged}); err != nil {
		log.Printf("Profile update failed: %s", err.Error())
		return
	}
	fmt.Println("Profile updated")
}

func (a *App) uploadResume(ctx context.Context) {
	path, err := getSimpleText(a.reader, "Path to resume file", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Cannot read file: %s", err.Error())
		return
	}

	url, key, err := a.remote.ResumeUploadURL(ctx)
	if err != nil {
		log.Printf("Upload unavailable: %s", err.Error())
		return
	}
	if err := a.remote.UploadResume(ctx, url, data); err != nil {
		log.Printf("Upload failed: %s", err.Error())
		return
	}

	if _, err := a.store.UpdateProfile(ctx, models.Profile{ResumeKey: key}); err != nil {
		log.Printf("Profile update failed: %s", err.Error())
		return
	}
	fmt.Println("Resume uploaded:", key)
}
