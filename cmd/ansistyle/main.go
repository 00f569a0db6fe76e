// Command ansistyle strips or renders the ANSI colors and styles of text,
// such as program output or e-mail bodies.
package main

import (
	"os"
)

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
