package main

import (
	"os"

	"organo/cmd/organo/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
