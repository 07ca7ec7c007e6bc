// BrickFill: genetic brick tiling optimizer
//
// Searches for a layout of rectangular bricks covering as much of a
// rectangular grid as possible and exports the result as PDF, DXF, Excel
// or an HTML statistics chart.
//
// Build:
//   go build -o brickfill ./cmd/brickfill
//
// Example:
//   brickfill run --width 30 --height 20 --generations 200 --export pdf,html

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/piwi3910/BrickFill/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit)
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
