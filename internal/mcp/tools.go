package mcp

import (
	"context"

	"github.com/claude/volumeopt/internal/volume"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolRecommendVolume = mcp.NewTool("recommend_volume",
	mcp.WithDescription("Get a training volume recommendation for a muscle group. Classifies the current weekly set count against MEV/MAV/MRV landmarks and the lifter's progress and recovery state."),
	mcp.WithString("muscle_group", mcp.Required(), mcp.Description("Muscle group (e.g. chest, back, quads)")),
	mcp.WithString("training_level", mcp.Required(), mcp.Description("Training level: beginner, intermediate, or advanced"), mcp.Enum("beginner", "intermediate", "advanced")),
	mcp.WithNumber("current_sets", mcp.Required(), mcp.Description("Current weekly working sets for the muscle group")),
	mcp.WithBoolean("progress", mcp.Required(), mcp.Description("Whether the lifter is currently making measurable progress")),
	mcp.WithBoolean("recovered", mcp.Required(), mcp.Description("Whether the lifter is recovering between sessions")),
)

var toolGetLandmarks = mcp.NewTool("get_landmarks",
	mcp.WithDescription("Get the MEV/MAV/MRV volume landmarks for one muscle group at one training level."),
	mcp.WithString("muscle_group", mcp.Required(), mcp.Description("Muscle group (e.g. chest, back, quads)")),
	mcp.WithString("training_level", mcp.Required(), mcp.Description("Training level: beginner, intermediate, or advanced"), mcp.Enum("beginner", "intermediate", "advanced")),
)

var toolListMuscleGroups = mcp.NewTool("list_muscle_groups",
	mcp.WithDescription("List all supported muscle groups and training levels."),
)

var toolGetTrainingHistory = mcp.NewTool("get_training_history",
	mcp.WithDescription("Retrieve past volume recommendations for the authenticated user, newest first."),
	mcp.WithString("muscle_group", mcp.Description("Filter by muscle group")),
	mcp.WithNumber("limit", mcp.Description("Maximum entries to return (1-500). Defaults to 50.")),
)

// --- Tool handlers ---

func (h *handlers) recommendVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groupStr, err := req.RequireString("muscle_group")
	if err != nil {
		return mcp.NewToolResultError("muscle_group parameter is required"), nil
	}
	levelStr, err := req.RequireString("training_level")
	if err != nil {
		return mcp.NewToolResultError("training_level parameter is required"), nil
	}
	sets, err := req.RequireInt("current_sets")
	if err != nil {
		return mcp.NewToolResultError("current_sets parameter is required"), nil
	}
	progress, err := req.RequireBool("progress")
	if err != nil {
		return mcp.NewToolResultError("progress parameter is required"), nil
	}
	recovered, err := req.RequireBool("recovered")
	if err != nil {
		return mcp.NewToolResultError("recovered parameter is required"), nil
	}

	group, err := volume.ParseMuscleGroup(groupStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	level, err := volume.ParseTrainingLevel(levelStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec, err := volume.Recommend(volume.Request{
		MuscleGroup:   group,
		TrainingLevel: level,
		CurrentSets:   sets,
		Progress:      progress,
		Recovered:     recovered,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	landmarks, _ := volume.LookupLandmarks(group, level)
	result, err := mcp.NewToolResultJSON(map[string]any{
		"outcome":        rec.Outcome,
		"target_sets":    rec.TargetSets,
		"message":        rec.Message,
		"current_sets":   sets,
		"muscle_group":   group,
		"training_level": level,
		"landmarks":      landmarks,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getLandmarks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groupStr, err := req.RequireString("muscle_group")
	if err != nil {
		return mcp.NewToolResultError("muscle_group parameter is required"), nil
	}
	levelStr, err := req.RequireString("training_level")
	if err != nil {
		return mcp.NewToolResultError("training_level parameter is required"), nil
	}

	group, err := volume.ParseMuscleGroup(groupStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	level, err := volume.ParseTrainingLevel(levelStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	landmarks, err := volume.LookupLandmarks(group, level)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"muscle_group":   group,
		"training_level": level,
		"landmarks":      landmarks,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listMuscleGroups(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(map[string]any{
		"muscle_groups":   volume.MuscleGroups,
		"training_levels": volume.TrainingLevels,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	if uid == uuid.Nil {
		return mcp.NewToolResultError("no authenticated user in session"), nil
	}

	muscleGroup := req.GetString("muscle_group", "")
	if muscleGroup != "" {
		if _, err := volume.ParseMuscleGroup(muscleGroup); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	limit := req.GetInt("limit", 50)
	if limit < 1 || limit > 500 {
		return mcp.NewToolResultError("limit must be between 1 and 500"), nil
	}

	entries, err := h.ds.QueryHistory(ctx, uid, muscleGroup, limit)
	if err != nil {
		h.log.Error("mcp get_training_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(entries)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
