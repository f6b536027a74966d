// Command squall-ls is the Squall language server for Markdown hosts.
// serve speaks the editor protocol over stdio; check validates files in
// batch for scripts and CI.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dshills/squall/internal/server"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	app := &cli.App{
		Name:    "squall-ls",
		Usage:   "Language service for Squall embedded in Markdown",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(),
			checkCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "squall-ls:", err)
		os.Exit(1)
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the editor protocol over stdio",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: server.ConfigName,
				Usage: "Path to the server configuration file",
			},
		},
		Action: func(c *cli.Context) error {
			cfgPath := c.String("config")
			cfg, err := server.LoadConfig(cfgPath)
			if err != nil {
				return err
			}

			// Stderr only: the protocol owns stdout.
			log := server.NewLogger(server.ParseLogLevel(cfg.LogLevel), os.Stderr)

			watcher, err := server.WatchConfig(cfgPath, log, func(next server.Config) {
				// Log level applies live; the TTL only reaches servers
				// started after the reload.
				log.SetLevel(server.ParseLogLevel(next.LogLevel))
			})
			if err != nil {
				log.Warn("config watching disabled: %v", err)
			} else {
				defer watcher.Close()
			}

			log.Info("squall-ls %s serving on stdio", Version)
			return server.New(os.Stdin, os.Stdout, log, cfg, Version).Run()
		},
	}
}
