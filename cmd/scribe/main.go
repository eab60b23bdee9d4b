package main

import (
	"fmt"
	"os"

	"clinic-scribe/cmd/scribe/cmd"
	"clinic-scribe/internal/config"

	// Import providers to register them
	_ "clinic-scribe/internal/app/api/openai/diarize"
	_ "clinic-scribe/internal/app/api/whisper_server"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
	}

	cmd.Execute()
}
