package main

import (
	"context"
	"log"

	"github.com/internova/internova/internal/server"
	"github.com/internova/internova/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.Load()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
