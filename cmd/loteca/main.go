package main

import (
	"os"

	"github.com/charleschow/loteca-pipeline/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
