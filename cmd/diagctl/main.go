package main

import (
	"os"

	"github.com/rfielding/diagctl/cmd/diagctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
