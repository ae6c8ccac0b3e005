// Command linkhubctl is the operator CLI: schema migrations, the theme
// catalogue and username checks.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(defaultDeps()).Execute(); err != nil {
		os.Exit(1)
	}
}
