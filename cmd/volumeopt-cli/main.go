package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/volumeopt/internal/localstore"
	"github.com/claude/volumeopt/internal/volume"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	muscleGroup := flag.String("muscle-group", "", "muscle group (e.g. chest, back, quads)")
	level := flag.String("level", "", "training level: beginner, intermediate, or advanced")
	sets := flag.Int("sets", -1, "current weekly working sets")
	progress := flag.Bool("progress", false, "currently making measurable progress")
	recovered := flag.Bool("recovered", false, "recovering between sessions")
	stateDir := flag.String("state-dir", "", "directory for the local history database (default ~/.volumeopt)")
	history := flag.Bool("history", false, "show recent recommendations and exit")
	limit := flag.Int("limit", 20, "history entries to show with -history")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("volumeopt-cli", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	dir := *stateDir
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		dir = filepath.Join(homeDir, ".volumeopt")
	}

	store, err := localstore.Open(dir)
	if err != nil {
		log.Error("failed to open history database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if *history {
		printHistory(store, *muscleGroup, *limit, log)
		return
	}

	if *muscleGroup == "" || *level == "" || *sets < 0 {
		fmt.Fprintf(os.Stderr, "Usage: volumeopt-cli -muscle-group <group> -level <level> -sets <n> [-progress] [-recovered]\n")
		fmt.Fprintf(os.Stderr, "       volumeopt-cli -history [-muscle-group <group>] [-limit N]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	group, err := volume.ParseMuscleGroup(*muscleGroup)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\nValid groups: %v\n", err, volume.MuscleGroups)
		os.Exit(1)
	}
	trainingLevel, err := volume.ParseTrainingLevel(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\nValid levels: %v\n", err, volume.TrainingLevels)
		os.Exit(1)
	}

	req := volume.Request{
		MuscleGroup:   group,
		TrainingLevel: trainingLevel,
		CurrentSets:   *sets,
		Progress:      *progress,
		Recovered:     *recovered,
	}
	rec, err := volume.Recommend(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	landmarks, _ := volume.LookupLandmarks(group, trainingLevel)
	fmt.Printf("%s (%s), %d sets/week  [MEV %d / MAV %d / MRV %d]\n",
		group, trainingLevel, *sets, landmarks.MEV, landmarks.MAV, landmarks.MRV)
	fmt.Printf("  Outcome: %s\n", rec.Outcome)
	if rec.TargetSets != nil {
		fmt.Printf("  Target:  %d sets/week\n", *rec.TargetSets)
	}
	fmt.Printf("  %s\n", rec.Message)

	if err := store.Record(req, rec); err != nil {
		log.Warn("failed to record recommendation", "error", err)
	}
}

func printHistory(store *localstore.DB, muscleGroup string, limit int, log *slog.Logger) {
	entries, err := store.Recent(muscleGroup, limit)
	if err != nil {
		log.Error("history query failed", "error", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Println("No recommendations recorded yet.")
		return
	}

	for _, e := range entries {
		target := "-"
		if e.TargetSets != nil {
			target = fmt.Sprintf("%d", *e.TargetSets)
		}
		fmt.Printf("%s  %-10s %-12s sets=%-3d -> %-19s target=%s\n",
			e.CreatedAt.Format("2006-01-02 15:04"),
			e.MuscleGroup, e.TrainingLevel, e.CurrentSets, e.Outcome, target)
	}
}
