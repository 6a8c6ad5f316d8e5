package main

import (
	"os"

	"constellation/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
