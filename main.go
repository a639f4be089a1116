package main

import (
	"os"

	"github.com/ledgerline/backend/internal/commands"
)

//go:generate swag init --output api --outputTypes go

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
