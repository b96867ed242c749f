package main

import (
	"os"

	"trivia-dialogue-service/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
