package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/volumeopt/internal/volume"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) landmarkCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	catalog := map[string]any{
		"muscle_groups":   volume.MuscleGroups,
		"training_levels": volume.TrainingLevels,
		"landmarks":       volume.AllLandmarks(),
	}

	data, err := json.Marshal(catalog)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
