package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/internova/internova/internal/models"
)

func (a *App) messages(ctx context.Context) {
	acc, ok := a.store.CurrentUser()
	if !ok {
		fmt.Println("Log in first")
		return
	}

	msgs := a.store.MessagesFor(ctx, acc.Email)
	if len(msgs) == 0 {
		fmt.Println("No messages")
		return
	}
	for _, m := range msgs {
		marker := " "
		if !m.Read && m.To == models.NormalizeEmail(acc.Email) {
			marker = "*"
		}
		fmt.Printf("%s [%s] %s -> %s: %s (%s)\n",
			marker, m.ID, m.From, m.To, m.Subject, m.Timestamp.Format("2006-01-02 15:04"))
	}
}

func (a *App) send(ctx context.Context) {
	acc, ok := a.store.CurrentUser()
	if !ok {
		fmt.Println("Log in first")
		return
	}

	to, err := getSimpleText(a.reader, "To (email)", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	subject, err := getSimpleText(a.reader, "Subject", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	body, err := GetMultiline(a.reader, "Message", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	sent := a.store.SendMessage(ctx, models.Message{
		From:    acc.Email,
		To:      to,
		Subject: subject,
		Body:    body,
	})
	fmt.Println("Sent:", sent.ID)
}

func (a *App) markRead(ctx context.Context, id string) {
	a.store.MarkRead(ctx, id)
	fmt.Println("Marked as read:", id)
}

func (a *App) unread(ctx context.Context) {
	acc, ok := a.store.CurrentUser()
	if !ok {
		fmt.Println("Log in first")
		return
	}
	fmt.Printf("Unread messages: %d\n", a.store.UnreadCount(ctx, acc.Email))
}
