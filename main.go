package main

import (
	"os"

	"github.com/ydereck/nembid/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
