package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/dmitrymomot/mailjsx/cmd/mailjsx/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx, os.Args[1:])
	stop()
	if err != nil {
		color.New(color.FgHiRed).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
