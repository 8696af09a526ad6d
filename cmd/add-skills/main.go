package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/add-skills/cmd/add-skills/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
