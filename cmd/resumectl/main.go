// Command resumectl works with resume payloads outside the API: render exports, preview
// generation prompts and mint development tokens.
package main

import (
	"os"

	"resume-tailor/internal/shared/config"
)

func main() {
	config.LoadEnvFiles(".env", "cmd/.env")
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
