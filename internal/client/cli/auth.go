package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/internova/internova/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) register(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	kind, err := getSimpleText(a.reader, "Account type (student/company)", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	accType := models.AccountTypeStudent
	companyName := ""
	if kind == "company" {
		accType = models.AccountTypeCompany
		companyName, err = getSimpleText(a.reader, "Company name", os.Stdout)
		if err != nil {
			log.Println(err.Error())
			return
		}
	}

	acc, err := a.store.Register(ctx, email, string(password), name, accType, companyName)
	if err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return
	}

	fmt.Printf("Welcome, %s!\n", acc.Name)
}

func (a *App) login(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	acc, err := a.store.Login(ctx, email, string(password))
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return
	}

	log.Printf("Login successful")
	fmt.Printf("Welcome back, %s!\n", acc.Name)
}

func (a *App) logout(ctx context.Context) {
	a.store.Logout(ctx)
	fmt.Println("Logged out")
}
