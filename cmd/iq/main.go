package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.LookupEnv).ExecuteContext(ctx)
	cancel()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error: "+userMessage(err))
		os.Exit(1)
	}
}
