package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/patientwatch/internal/app"
	"github.com/dmitrijs2005/patientwatch/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("%v", err)
		return 1
	}

	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		log.Printf("%v", err)
		return 1
	}

	return 0
}
