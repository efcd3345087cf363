package main

import (
	"os"

	"finitefield.org/listing-web/cmd/render/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
