package main

import (
	"os"

	"github.com/jaymaker27/vector-paint/cmd/turretctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
