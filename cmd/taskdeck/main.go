package main

import (
	"github.com/joho/godotenv"
	"github.com/taskdeck/taskdeck/cmd/taskdeck/commands"
)

func main() {
	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()
	commands.Execute()
}
