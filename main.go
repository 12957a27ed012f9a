package main

import (
	"os"

	"github.com/mellowpictures/netcopy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
