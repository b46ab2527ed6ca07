package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/habitcheck/internal/buildinfo"
	"github.com/dmitrijs2005/habitcheck/internal/client/cli"
)

func main() {

	ctx := context.Background()
	err := cli.Execute(ctx, os.Args[1:], cli.Options{Version: buildinfo.Version})

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

}
