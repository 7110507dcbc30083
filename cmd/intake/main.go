package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goliatone/go-intake/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	a := &app{cfg: cfg, out: os.Stdout, errOut: os.Stderr}
	if err := newRootCmd(a).Execute(); err != nil {
		if errors.Is(err, errBlocked) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
