// Package main is the entrypoint for the timefmt service.
// timefmtd renders dates, durations and relative times for the console over
// HTTP and gRPC.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/metacatalog/timefmt/internal/config"
	"github.com/metacatalog/timefmt/internal/server"
)

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return server.Run(ctx, server.Params{
		Name:               "timefmtd",
		PortFromConfig:     func(cfg *config.Config) int { return cfg.HTTP.Port },
		GRPCPortFromConfig: func(cfg *config.Config) int { return cfg.GRPC.Port },
		Setup:              setup,
	}, server.Listeners{})
}
