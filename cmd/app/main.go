package main

import (
	"os"

	"github.com/Harissh-lab/arm-scout/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
