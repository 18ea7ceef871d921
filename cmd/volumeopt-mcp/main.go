package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/volumeopt/internal/config"
	"github.com/claude/volumeopt/internal/mcp"
	"github.com/claude/volumeopt/internal/storage"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	userFlag := flag.String("user", "", "user ID to scope history queries to")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("volumeopt-mcp", Version)
		return
	}

	// Logs go to stderr; stdout is the MCP transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var userID uuid.UUID
	if *userFlag != "" {
		var err error
		userID, err = uuid.Parse(*userFlag)
		if err != nil {
			log.Error("invalid -user", "error", err)
			os.Exit(1)
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := storage.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := mcp.New(db, Version, log)
	log.Info("MCP server starting on stdio", "user", userID)

	err = server.ServeStdio(srv, server.WithStdioContextFunc(func(ctx context.Context) context.Context {
		if userID == uuid.Nil {
			return ctx
		}
		return mcp.WithUserID(ctx, userID)
	}))
	if err != nil {
		log.Error("MCP server stopped", "error", err)
		os.Exit(1)
	}
}
