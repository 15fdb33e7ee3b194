// codecompass-engine serves the CodeCompass code-analysis API.
package main

import (
	"os"

	"github.com/codecompass/engine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
