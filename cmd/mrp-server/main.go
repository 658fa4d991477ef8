package main

import (
	"context"
	"fmt"
	"os"

	"mrp/internal/app"
)

func main() {
	if err := newRootCommand(app.Version).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
