package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/foomo/studio-gallery/assetstore"
	"github.com/foomo/studio-gallery/render"
	"github.com/foomo/studio-gallery/service"
	"github.com/foomo/studio-gallery/service/vo"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const Version = "0.1.0"

type ListCarouselRequest struct{}

type ListGalleryRequest struct {
	Category string `json:"category"` // Gallery category, e.g. "Family"
	Page     int    `json:"page"`     // 1-based page
	Limit    int    `json:"limit"`    // Images per page
}

type ListingResponse struct {
	Listing  *vo.Listing `json:"listing"`
	Markdown vo.Markdown `json:"markdown"`
}

// NewServer creates a new MCP server with the listCarousel and listGallery tools
func NewServer(logger *zap.Logger, serviceInstance service.Service) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := server.NewMCPServer(
		"Studio Gallery MCP",
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	carouselTool := mcp.NewTool("listCarousel",
		mcp.WithDescription("List the images of the studio's home page carousel"),
	)
	s.AddTool(carouselTool, mcp.NewTypedToolHandler(getListCarouselHandler(logger, serviceInstance)))

	galleryTool := mcp.NewTool("listGallery",
		mcp.WithDescription("List one page of images of a gallery category (OneYear, BatMitzva, Family, Pregnancy, BarMitzva, NewBorn)"),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("The gallery category"),
		),
		mcp.WithNumber("page",
			mcp.Description("1-based page number; 0 or omitted means 1, pages past the end are empty"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Images per page; 0 or omitted means the default of 12, values above 500 are capped"),
		),
	)
	s.AddTool(galleryTool, mcp.NewTypedToolHandler(getListGalleryHandler(logger, serviceInstance)))

	return s
}

func getListCarouselHandler(logger *zap.Logger, serviceInstance service.Service) func(ctx context.Context, request mcp.CallToolRequest, args ListCarouselRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args ListCarouselRequest) (*mcp.CallToolResult, error) {
		requestLogger(ctx, logger).Debug("listCarousel")
		listing, err := serviceInstance.ListCarousel(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list carousel: %v", err)), nil
		}
		return listingResult("Carousel", listing)
	}
}

func getListGalleryHandler(logger *zap.Logger, serviceInstance service.Service) func(ctx context.Context, request mcp.CallToolRequest, args ListGalleryRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args ListGalleryRequest) (*mcp.CallToolResult, error) {
		// Validate inputs
		if args.Category == "" {
			return mcp.NewToolResultError("category is required"), nil
		}
		if args.Page < 0 || args.Limit < 0 {
			return mcp.NewToolResultError("page and limit must not be negative"), nil
		}

		requestLogger(ctx, logger).Debug("listGallery", zap.String("category", args.Category), zap.Int("page", args.Page))
		listing, err := serviceInstance.ListGallery(ctx, args.Category, args.Page, args.Limit)
		if errors.Is(err, assetstore.ErrNotConfigured) {
			return mcp.NewToolResultError(service.NotConfiguredMessage), nil
		} else if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list gallery %q: %v", args.Category, err)), nil
		}
		return listingResult(args.Category, listing)
	}
}

func listingResult(title string, listing *vo.Listing) (*mcp.CallToolResult, error) {
	markdown, err := render.Listing(title, listing)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render listing: %v", err)), nil
	}

	responseBytes, err := json.Marshal(ListingResponse{
		Listing:  listing,
		Markdown: markdown,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseBytes)), nil
}

// requestLogger tags the logger with the caller's address when the tool is
// called over HTTP.
func requestLogger(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if req, ok := httpRequestFromContext(ctx); ok {
		return logger.With(zap.String("remoteAddr", req.RemoteAddr))
	}
	return logger
}
