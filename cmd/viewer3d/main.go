// Command viewer3d renders scene documents headlessly.
//
// Usage:
//
//	viewer3d export scene.yaml --out scene.svg
//	viewer3d export scene.yaml --out scene.png --highlight category=Walls
//	viewer3d watch scene.yaml --out scene.svg --metrics-addr :9090
//	viewer3d backends
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "viewer3d:", err)
		os.Exit(1)
	}
}
