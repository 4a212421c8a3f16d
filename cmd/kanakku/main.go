package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kanakku/kanakku/internal/app"
	"github.com/kanakku/kanakku/internal/cli"
	"github.com/kanakku/kanakku/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	// Help and the words converter run without opening the database (which may prompt)
	if cli.NeedsApp(os.Args[1:]) {
		a, err := app.New(context.Background())
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		defer a.Close()
		cli.SetApp(a)
	}

	return cli.Execute()
}
