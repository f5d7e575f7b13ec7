package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xXRex45Xx/MyPortfolio/internal/store"
)

// registerTools registers the read-only portfolio tools on the given server.
func (s *MCPServer) registerTools(srv *server.MCPServer) {

	srv.AddTool(
		mcp.NewTool("portfolio_get_info",
			mcp.WithDescription(
				"Get the portfolio owner's personal information: name, professional "+
					"title, contact email, phone, and the about-me text shown on the "+
					"landing page.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
		),
		s.handleGetInfo,
	)

	srv.AddTool(
		mcp.NewTool("portfolio_list_projects",
			mcp.WithDescription(
				"List all portfolio projects as summaries (id, title, short "+
					"description, image URL), newest first. Use portfolio_get_project "+
					"for the full details of one project.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
		),
		s.handleListProjects,
	)

	srv.AddTool(
		mcp.NewTool("portfolio_get_project",
			mcp.WithDescription(
				"Get one project in full: description, industry, end date, key "+
					"features, external link, and whether the linked source is a "+
					"code repository.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("Numeric project ID from portfolio_list_projects"),
			),
		),
		s.handleGetProject,
	)

	srv.AddTool(
		mcp.NewTool("portfolio_list_skills",
			mcp.WithDescription("List the technologies and competencies on the portfolio."),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
		),
		s.handleListSkills,
	)

	srv.AddTool(
		mcp.NewTool("portfolio_list_social_links",
			mcp.WithDescription("List the portfolio owner's external profile links (GitHub, LinkedIn, ...)."),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
		),
		s.handleListSocialLinks,
	)
}

func (s *MCPServer) handleGetInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := s.store.GetMyInfo(ctx)
	if err != nil {
		return toolError("failed to load personal info: %v", err)
	}
	return successJSON(info)
}

func (s *MCPServer) handleListProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return toolError("failed to list projects: %v", err)
	}
	return successJSON(projects)
}

func (s *MCPServer) handleGetProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("id")
	if err != nil {
		return toolError("missing required parameter \"id\"")
	}

	project, err := s.store.GetProject(ctx, int64(id))
	if errors.Is(err, store.ErrNotFound) {
		return toolError("project %d not found; use portfolio_list_projects to see valid IDs", id)
	}
	if err != nil {
		return toolError("failed to load project %d: %v", id, err)
	}
	return successJSON(project)
}

func (s *MCPServer) handleListSkills(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	skills, err := s.store.ListSkills(ctx)
	if err != nil {
		return toolError("failed to list skills: %v", err)
	}
	return successJSON(skills)
}

func (s *MCPServer) handleListSocialLinks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	links, err := s.store.ListSocialMedia(ctx)
	if err != nil {
		return toolError("failed to list social links: %v", err)
	}
	return successJSON(links)
}

// successJSON marshals data to JSON and returns it as a tool result.
func successJSON(data interface{}) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}

// toolError returns a tool-level error result. Errors returned this way are
// visible to the LLM so it can self-correct; they do NOT terminate the MCP
// session.
func toolError(format string, args ...interface{}) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(fmt.Sprintf(format, args...)), nil
}
