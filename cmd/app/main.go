package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/showcase/internal"
	"github.com/starford/showcase/internal/models"
	pkgconfig "github.com/starford/showcase/pkg/config"
)

var version = "dev"

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadOptional(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithVersion(version),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func build(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.Build(ctx, cmd.String("out"), internal.WithConfig(cfg))
}

func list(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := models.DefaultFilterState()
	if cmd.IsSet("query") {
		st.Query = cmd.String("query")
	}
	if cmd.IsSet("status") {
		st.Status = cmd.String("status")
	}
	if cmd.IsSet("category") {
		st.Category = cmd.String("category")
	}
	if cmd.IsSet("tag") {
		st.Tag = cmd.String("tag")
	}
	if cmd.IsSet("sort") {
		st.Sort = cmd.String("sort")
	}

	return internal.List(ctx, st, cmd.Bool("json"), internal.WithConfig(cfg))
}

func mcp(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.ServeMCP(ctx, internal.WithConfig(cfg), internal.WithVersion(version))
}

func main() {
	cmd := &cli.Command{
		Name:    "showcase",
		Usage:   "Project catalog with filtering, live preview and static site build",
		Version: version,
		Action:  serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the interactive catalog page",
				Action: serve,
			},
			{
				Name:   "build",
				Usage:  "Write index.html and projects.json for static hosting",
				Action: build,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output directory (defaults to site.out_dir)",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "Print the projects matching a filter",
				Action: list,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Free-text search"},
					&cli.StringFlag{Name: "status", Usage: "Status filter or \"all\""},
					&cli.StringFlag{Name: "category", Usage: "Category filter or \"all\""},
					&cli.StringFlag{Name: "tag", Usage: "Tag filter or \"all\""},
					&cli.StringFlag{Name: "sort", Usage: "status, updated or name"},
					&cli.BoolFlag{Name: "json", Usage: "Print JSON instead of a table"},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve catalog tools over MCP stdio",
				Action: mcp,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
