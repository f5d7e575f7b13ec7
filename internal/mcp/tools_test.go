package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/xXRex45Xx/MyPortfolio/internal/model"
	"github.com/xXRex45Xx/MyPortfolio/internal/store"
)

func newTestServer(t *testing.T) (*MCPServer, *store.Store) {
	t.Helper()
	st, err := store.Open(store.DriverSQLite, "")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMCPServer(st, logger), st
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text payload from a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("content is %T, want text", result.Content[0])
	}
	return text.Text
}

func TestGetInfoTool(t *testing.T) {
	s, st := newTestServer(t)
	ctx := context.Background()

	if err := st.UpsertMyInfo(ctx, &model.MyInfo{
		Name: "Jane Dev", Title: "Engineer", Email: "jane@example.com",
	}); err != nil {
		t.Fatalf("UpsertMyInfo: %v", err)
	}

	result, err := s.handleGetInfo(ctx, callRequest(nil))
	if err != nil {
		t.Fatalf("handleGetInfo: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %s", resultText(t, result))
	}

	var info model.MyInfo
	if err := json.Unmarshal([]byte(resultText(t, result)), &info); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if info.Name != "Jane Dev" {
		t.Errorf("name = %q, want Jane Dev", info.Name)
	}
}

func TestProjectTools(t *testing.T) {
	s, st := newTestServer(t)
	ctx := context.Background()

	project := &model.Project{
		Title:            "Billing Platform",
		ShortDescription: "short",
		Description:      "long",
		EndDate:          time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		KeyFeatures:      []string{"auth", "reporting"},
		ImageURL:         "/images/x.png",
	}
	if err := st.CreateProject(ctx, project); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	result, err := s.handleListProjects(ctx, callRequest(nil))
	if err != nil {
		t.Fatalf("handleListProjects: %v", err)
	}
	var summaries []model.ProjectSummary
	if err := json.Unmarshal([]byte(resultText(t, result)), &summaries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Title != "Billing Platform" {
		t.Fatalf("summaries = %+v", summaries)
	}

	result, err = s.handleGetProject(ctx, callRequest(map[string]interface{}{"id": float64(project.ID)}))
	if err != nil {
		t.Fatalf("handleGetProject: %v", err)
	}
	var got model.Project
	if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.KeyFeatures) != 2 {
		t.Errorf("key features = %v", got.KeyFeatures)
	}
}

func TestGetProjectToolErrors(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	// Missing id is a tool-level error, not a protocol failure.
	result, err := s.handleGetProject(ctx, callRequest(nil))
	if err != nil {
		t.Fatalf("handleGetProject: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for missing id")
	}

	result, err = s.handleGetProject(ctx, callRequest(map[string]interface{}{"id": float64(999)}))
	if err != nil {
		t.Fatalf("handleGetProject: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for unknown project")
	}
	if !strings.Contains(resultText(t, result), "portfolio_list_projects") {
		t.Error("error should point at the listing tool")
	}
}

func TestListToolsAreReadOnly(t *testing.T) {
	ann := readOnlyAnnotation()
	if ann.ReadOnlyHint == nil || !*ann.ReadOnlyHint {
		t.Error("readOnlyAnnotation should set ReadOnlyHint true")
	}
}
