package main

import (
	"os"

	"github.com/NickGaultney/elementor-logic-controls/cmd/logicctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
