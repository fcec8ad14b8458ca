package main

import (
	"os"

	"github.com/iliyamo/medicamp-server/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
