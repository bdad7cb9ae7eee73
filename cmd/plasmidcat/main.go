// Command plasmidcat recognizes plasmid catalog fields from the command
// line and hosts the API with "plasmidcat serve".
package main

import (
	"os"

	"github.com/turtacn/PlasmidCatalog/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

//Personal.AI order the ending
