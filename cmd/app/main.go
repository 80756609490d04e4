package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/voss/nbshelf/internal"
	"github.com/voss/nbshelf/internal/mcpserver"
	"github.com/voss/nbshelf/internal/shelf"
	"github.com/voss/nbshelf/internal/storage"
	"github.com/voss/nbshelf/internal/toc"
	pkgconfig "github.com/voss/nbshelf/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func runServer(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

// runTOC prints the table of contents for the current working directory,
// the original bare-function contract.
func runTOC(_ context.Context, _ *cli.Command) error {
	out, err := toc.Build()
	if err != nil {
		return fmt.Errorf("build table of contents: %w", err)
	}
	fmt.Println(out)
	return nil
}

func runMCP(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := storage.NewFS(cfg.Shelf.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	svc := shelf.NewService(store, cfg.Shelf.Path)

	if err := mcpserver.New(svc).ServeStdio(); err != nil {
		return fmt.Errorf("mcp server error: %w", err)
	}
	return nil
}

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}
}

func main() {
	cmd := &cli.Command{
		Name:   "nbshelf",
		Usage:  "Serve a shelf of Jupyter notebooks with a generated table of contents",
		Action: runServer,
		Flags:  []cli.Flag{configFlag()},
		Commands: []*cli.Command{
			{
				Name:   "toc",
				Usage:  "Print the table of contents for the current directory",
				Action: runTOC,
			},
			{
				Name:   "mcp",
				Usage:  "Expose the shelf over MCP stdio transport",
				Flags:  []cli.Flag{configFlag()},
				Action: runMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
