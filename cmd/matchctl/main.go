package main

import (
	"os"

	"carbon-scribe/project-portal/methodology-engine/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
