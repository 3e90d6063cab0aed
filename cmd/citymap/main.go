// Command citymap shows the city road map, computes shortest routes with
// travel time and fare, renders map images and serves all of it over HTTP.
//
// Usage:
//
//	citymap view
//	citymap route Rajshahi Chittagong
//	citymap render --from Rangpur --to Barishal -o route.png
//	citymap images Dhaka --open 2
//	citymap serve --serve-addr :8080
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
