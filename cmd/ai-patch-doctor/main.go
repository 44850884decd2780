package main

import (
	"os"

	"github.com/michaelbrinkworth/ai-patch-doctor/cmd/ai-patch-doctor/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(2)
	}
}
