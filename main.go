package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"mnemo/ui"
)

const (
	Version = "v0.1.0"
	License = "Apache-2.0"
)

func main() {
	// A .env next to the invocation lets API keys live with the project.
	// Missing file is the normal case.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.ErrorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}
