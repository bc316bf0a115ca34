package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	_ "github.com/joho/godotenv/autoload"
	"go.llib.dev/frameless/pkg/logging"

	"cmhac.dev/internal/config"
	"cmhac.dev/internal/content"
	"cmhac.dev/internal/services"
	"cmhac.dev/internal/site"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Failed to load configuration: %v", err)
	}

	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "output directory")
	fs.StringVar(&cfg.ContentDir, "content", cfg.ContentDir, "content directory")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "fail when a content file is skipped")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: generate [-out dir] [-content dir] [-strict]")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := cfg.Logger(os.Stderr)
	ctx = logging.ContextWith(ctx, logging.Field("cmd", "generate"))

	loader := content.NewLoader(os.DirFS(cfg.ContentDir), logger, content.WithWorkers(cfg.LoadWorkers))
	renderer, err := site.NewRenderer(cfg.Site)
	if err != nil {
		config.Exitf("Failed to prepare templates: %v", err)
	}

	builder := site.NewBuilder(services.NewProjectService(loader), renderer, logger, site.BuildOptions{
		StaticDir: cfg.StaticDir,
		Strict:    cfg.Strict,
	})

	fmt.Printf("Generating site from %s into %s...\n", cfg.ContentDir, cfg.OutputDir)
	summary, err := builder.Build(ctx, cfg.OutputDir)
	if err != nil {
		config.Exitf("  ERROR: %v", err)
	}

	fmt.Printf("  Wrote %d pages for %d projects", summary.Pages, summary.Projects)
	if summary.Skipped > 0 {
		fmt.Printf(" (%d content files skipped)", summary.Skipped)
	}
	fmt.Println()
	if len(summary.Missing) > 0 {
		fmt.Printf("  WARNING: missing %v, run go generate ./internal/site\n", summary.Missing)
	}
	fmt.Println("Done!")
}
