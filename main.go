package main

import (
	"context"
	"os"

	"minblog/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background()))
}
