package main

import (
	"fmt"
	"os"

	"github.com/fairyhunter13/skills-gap-navigator/cmd/navigator/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
