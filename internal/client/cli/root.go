package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if acc, ok := a.store.CurrentUser(); ok {
		s = acc.Email + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to Internova CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.RefreshInterval)
	}()
	go func() {
		a.store.StartRefresh(ctx, a.config.RefreshInterval)
	}()

	for {
		fmt.Printf("internova %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()

		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)

		case "l", "list":
			a.list(ctx)
		case "show":
			if len(args) == 0 {
				fmt.Println("Usage: show <id>")
				continue
			}
			a.show(ctx, args[0])
		case "recommend":
			a.recommend(ctx)
		case "post":
			a.post(ctx)
		case "mylistings":
			a.myListings(ctx)
		case "close":
			if len(args) == 0 {
				fmt.Println("Usage: close <id>")
				continue
			}
			a.closeListing(ctx, args[0])
		case "delete":
			if len(args) == 0 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			a.deleteListing(ctx, args[0])

		case "apply":
			if len(args) == 0 {
				fmt.Println("Usage: apply <id>")
				continue
			}
			a.apply(ctx, args[0])
		case "myapps":
			a.myApplications(ctx)
		case "applicants":
			a.applicants(ctx)
		case "status":
			if len(args) < 2 {
				fmt.Println("Usage: status <application-id> <Applied|Under Review|Accepted|Rejected>")
				continue
			}
			a.setStatus(ctx, args[0], strings.Join(args[1:], " "))

		case "save":
			if len(args) == 0 {
				fmt.Println("Usage: save <id>")
				continue
			}
			a.save(ctx, args[0])
		case "unsave":
			if len(args) == 0 {
				fmt.Println("Usage: unsave <id>")
				continue
			}
			a.unsave(ctx, args[0])
		case "saved":
			a.listSaved(ctx)

		case "messages":
			a.messages(ctx)
		case "send":
			a.send(ctx)
		case "read":
			if len(args) == 0 {
				fmt.Println("Usage: read <message-id>")
				continue
			}
			a.markRead(ctx, args[0])
		case "unread":
			a.unread(ctx)

		case "profile":
			a.profile(ctx)
		case "edit":
			a.editProfile(ctx)
		case "skills":
			a.extractSkills(ctx)
		case "resume":
			a.uploadResume(ctx)

		case "import":
			a.importListings(ctx)
		case "stats":
			a.stats(ctx)

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}

func (a *App) help() {
	if !a.isLoggedIn() {
		fmt.Println("Available commands: register, login, (l)ist, show, exit")
		return
	}
	acc, _ := a.store.CurrentUser()
	if acc.Type == "company" {
		fmt.Println("Available commands: (l)ist, show, post, mylistings, close, delete, applicants, status, messages, send, read, unread, profile, edit, import, stats, logout, exit")
		return
	}
	fmt.Println("Available commands: (l)ist, show, recommend, apply, myapps, save, unsave, saved, messages, send, read, unread, profile, edit, skills, resume, logout, exit")
}
