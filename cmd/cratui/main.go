package main

import (
	"os"

	"cratui/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	os.Exit(cli.Main(version, os.Stderr))
}
