package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/ctext/cli"
	"github.com/ardnew/ctext/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error("ctext failed", slog.Any("error", err))
		os.Exit(1)
	}
}
