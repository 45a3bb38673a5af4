package main

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/skillsage/server/internal/config"
	"codeberg.org/skillsage/server/internal/llm"
	"codeberg.org/skillsage/server/internal/logger"
	"codeberg.org/skillsage/server/internal/storage"
	"codeberg.org/skillsage/server/skillsage/embeddings"
	"codeberg.org/skillsage/server/skillsage/submissions"
)

func main() {
	flags, err := config.ParseReembedFlags(os.Args[1:])
	if err != nil {
		fmt.Println("Usage: reembed [-interview <id>] [-dry-run]")
		os.Exit(2)
	}

	// load environment variables
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.FatalErr(err, "failed to load configuration")
	}

	ctx := context.Background()

	db, err := storage.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.FatalErr(err, "failed to connect to database")
	}
	defer db.Close()

	model, err := llm.NewLLM(ctx, cfg.AI)
	if err != nil {
		logger.FatalErr(err, "failed to create LLM client")
	}

	r := &Reembedder{
		answers:  submissions.NewRepository(db),
		embedder: model,
		vectors:  embeddings.NewRepository(db),
	}

	stats, err := r.Run(ctx, flags)
	if err != nil {
		logger.FatalErr(err, "re-embedding failed")
	}

	logger.Info("re-embedding finished",
		"answers", stats.Answers,
		"embedded", stats.Embedded,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
		"dry_run", flags.DryRun,
	)
}
