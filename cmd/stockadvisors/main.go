package main

import (
	"os"

	"stockadvisors/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args))
}
