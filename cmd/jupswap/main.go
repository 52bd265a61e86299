// Command jupswap queries a Jupiter swap API deployment and prints the decoded
// responses as JSON. It never signs or sends transactions.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/shihanhana/jupiter-swap-api-client/pkg/jupiter"
)

func main() {
	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

// describe separates a rejected request from a response the client could not read.
func describe(err error) string {
	var failed *jupiter.RequestFailedError
	switch {
	case errors.As(err, &failed):
		return fmt.Sprintf("service rejected request: status %d: %s", failed.StatusCode, failed.Body)
	case jupiter.IsResponseInvalid(err):
		return fmt.Sprintf("response not understood: %v", err)
	default:
		return err.Error()
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
