package mcp

import (
	"context"
	"log/slog"

	"github.com/claude/volumeopt/internal/storage"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
// Returns uuid.Nil when no user is set.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(userIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// DataSource abstracts the data layer for MCP tools. *storage.DB satisfies it.
type DataSource interface {
	QueryHistory(ctx context.Context, userID uuid.UUID, muscleGroup string, limit int) ([]storage.HistoryEntry, error)
}

var _ DataSource = (*storage.DB)(nil)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Volume Optimizer", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Training volume advisor. Classifies weekly set counts against evidence-based volume landmarks (MEV/MAV/MRV) and recommends whether to reduce, hold, or increase volume per muscle group."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolRecommendVolume, Handler: h.recommendVolume},
		server.ServerTool{Tool: toolGetLandmarks, Handler: h.getLandmarks},
		server.ServerTool{Tool: toolListMuscleGroups, Handler: h.listMuscleGroups},
		server.ServerTool{Tool: toolGetTrainingHistory, Handler: h.getTrainingHistory},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resLandmarkCatalog, Handler: h.landmarkCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

var resLandmarkCatalog = mcp.NewResource(
	"volumeopt://landmark_catalog",
	"Landmark Catalog",
	mcp.WithResourceDescription("Full MEV/MAV/MRV landmark table for all muscle groups and training levels"),
	mcp.WithMIMEType("application/json"),
)
