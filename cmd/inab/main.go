package main

import (
	"os"

	"github.com/inab-dev/inab/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
