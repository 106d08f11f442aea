package main

import (
	"os"

	"asisto/cmd/asisto/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
