package main

import (
	"fmt"
	"os"

	"github.com/steadycalls/opsbrain/internal/bootstrap"
)

func main() {
	app, err := bootstrap.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
