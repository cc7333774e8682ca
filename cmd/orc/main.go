// orc is the Orchestra CLI for spawning and monitoring terminal agent sessions.
package main

import (
	"os"

	"github.com/cognitive-os/orchestra/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
