package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xXRex45Xx/MyPortfolio/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(DriverSQLite, "") // in-memory
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("oracle", "dsn"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

// ---------------------------------------------------------------------------
// Admins
// ---------------------------------------------------------------------------

func TestAdminLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	has, err := s.HasAnyAdmin(ctx)
	if err != nil {
		t.Fatalf("HasAnyAdmin: %v", err)
	}
	if has {
		t.Fatal("fresh store should have no admin")
	}

	admin := &model.Admin{Username: "admin", PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"}
	if err := s.CreateAdmin(ctx, admin); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if admin.ID == 0 {
		t.Error("expected CreateAdmin to populate ID")
	}

	got, err := s.GetAdminByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetAdminByUsername: %v", err)
	}
	if got.PasswordHash != admin.PasswordHash {
		t.Errorf("PasswordHash = %q, want %q", got.PasswordHash, admin.PasswordHash)
	}

	if err := s.UpdateAdminPassword(ctx, admin.ID, "newhash"); err != nil {
		t.Fatalf("UpdateAdminPassword: %v", err)
	}
	got, err = s.GetAdminByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetAdminByUsername after update: %v", err)
	}
	if got.PasswordHash != "newhash" {
		t.Errorf("PasswordHash after update = %q, want %q", got.PasswordHash, "newhash")
	}

	if _, err := s.GetAdminByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAdminByUsername(nobody) = %v, want ErrNotFound", err)
	}
	if err := s.UpdateAdminPassword(ctx, 9999, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateAdminPassword(9999) = %v, want ErrNotFound", err)
	}
}

func TestCreateAdminDuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateAdmin(ctx, &model.Admin{Username: "admin", PasswordHash: "h"}); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	err := s.CreateAdmin(ctx, &model.Admin{Username: "admin", PasswordHash: "h2"})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate CreateAdmin = %v, want ErrConflict", err)
	}
}

// ---------------------------------------------------------------------------
// MyInfo
// ---------------------------------------------------------------------------

func TestMyInfoSeededOnOpen(t *testing.T) {
	s := newTestStore(t)

	info, err := s.GetMyInfo(context.Background())
	if err != nil {
		t.Fatalf("GetMyInfo: %v", err)
	}
	if info.ID != 1 {
		t.Errorf("ID = %d, want 1", info.ID)
	}
	if info.Name != "" {
		t.Errorf("Name = %q, want empty seed", info.Name)
	}
}

func TestUpsertMyInfo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	info := &model.MyInfo{
		Name:    "Ada Lovelace",
		Title:   "Software Engineer",
		Email:   "ada@example.com",
		Phone:   "+1 555 0100",
		AboutMe: "I write programs.",
	}
	if err := s.UpsertMyInfo(ctx, info); err != nil {
		t.Fatalf("UpsertMyInfo: %v", err)
	}

	got, err := s.GetMyInfo(ctx)
	if err != nil {
		t.Fatalf("GetMyInfo: %v", err)
	}
	if got.ID != 1 {
		t.Errorf("ID = %d, want fixed 1", got.ID)
	}
	if got.Name != info.Name || got.AboutMe != info.AboutMe {
		t.Errorf("got %+v, want %+v", got, info)
	}

	// Second upsert overwrites in place.
	info.Title = "Staff Engineer"
	if err := s.UpsertMyInfo(ctx, info); err != nil {
		t.Fatalf("UpsertMyInfo (second): %v", err)
	}
	got, _ = s.GetMyInfo(ctx)
	if got.Title != "Staff Engineer" {
		t.Errorf("Title = %q, want overwritten value", got.Title)
	}
}

// ---------------------------------------------------------------------------
// Skills
// ---------------------------------------------------------------------------

func TestSkillCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	golang := &model.Skill{Name: "Go"}
	if err := s.CreateSkill(ctx, golang); err != nil {
		t.Fatalf("CreateSkill: %v", err)
	}
	if err := s.CreateSkill(ctx, &model.Skill{Name: "Docker"}); err != nil {
		t.Fatalf("CreateSkill: %v", err)
	}

	if err := s.CreateSkill(ctx, &model.Skill{Name: "Go"}); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate CreateSkill = %v, want ErrConflict", err)
	}

	skills, err := s.ListSkills(ctx)
	if err != nil {
		t.Fatalf("ListSkills: %v", err)
	}
	if len(skills) != 2 {
		t.Fatalf("len(skills) = %d, want 2", len(skills))
	}
	// Ordered by name.
	if skills[0].Name != "Docker" || skills[1].Name != "Go" {
		t.Errorf("skills not ordered by name: %+v", skills)
	}

	if err := s.UpdateSkill(ctx, golang.ID, "Golang"); err != nil {
		t.Fatalf("UpdateSkill: %v", err)
	}
	if err := s.UpdateSkill(ctx, golang.ID, "Docker"); !errors.Is(err, ErrConflict) {
		t.Errorf("UpdateSkill to duplicate = %v, want ErrConflict", err)
	}
	if err := s.UpdateSkill(ctx, 9999, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateSkill(9999) = %v, want ErrNotFound", err)
	}

	if err := s.DeleteSkill(ctx, golang.ID); err != nil {
		t.Fatalf("DeleteSkill: %v", err)
	}
	if err := s.DeleteSkill(ctx, golang.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteSkill = %v, want ErrNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// Projects
// ---------------------------------------------------------------------------

func testProject(title string) *model.Project {
	return &model.Project{
		Title:            title,
		Industry:         "Web",
		ShortDescription: "A thing",
		Description:      "A longer description of the thing.",
		EndDate:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		KeyFeatures:      []string{"fast", "small"},
		Link:             "https://example.com/repo",
		ImageURL:         "/images/abc.jpg",
		IsSourceCode:     true,
	}
}

func TestProjectRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := testProject("Portfolio")
	if err := s.CreateProject(ctx, p); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("expected CreateProject to populate ID")
	}

	got, err := s.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.Title != p.Title || got.Link != p.Link || !got.IsSourceCode {
		t.Errorf("got %+v, want %+v", got, p)
	}
	if len(got.KeyFeatures) != 2 || got.KeyFeatures[0] != "fast" {
		t.Errorf("KeyFeatures = %v, want %v", got.KeyFeatures, p.KeyFeatures)
	}
	if !got.EndDate.Equal(p.EndDate) {
		t.Errorf("EndDate = %v, want %v", got.EndDate, p.EndDate)
	}
}

func TestProjectDuplicateTitle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateProject(ctx, testProject("Same")); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if err := s.CreateProject(ctx, testProject("Same")); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate CreateProject = %v, want ErrConflict", err)
	}
}

func TestProjectListSummaryAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := testProject("Older")
	older.EndDate = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := testProject("Newer")
	if err := s.CreateProject(ctx, older); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if err := s.CreateProject(ctx, newer); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	list, err := s.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
	if list[0].Title != "Newer" {
		t.Errorf("list[0].Title = %q, want newest first", list[0].Title)
	}
	if list[0].ImageURL != newer.ImageURL {
		t.Errorf("summary ImageURL = %q, want %q", list[0].ImageURL, newer.ImageURL)
	}

	if err := s.DeleteProject(ctx, older.ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if _, err := s.GetProject(ctx, older.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProject after delete = %v, want ErrNotFound", err)
	}
	if err := s.DeleteProject(ctx, older.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteProject = %v, want ErrNotFound", err)
	}
}

func TestProjectUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := testProject("Original")
	if err := s.CreateProject(ctx, p); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	other := testProject("Other")
	if err := s.CreateProject(ctx, other); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	p.Title = "Renamed"
	p.KeyFeatures = []string{"rewritten"}
	p.ImageURL = "/images/new.png"
	if err := s.UpdateProject(ctx, p); err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	got, err := s.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.Title != "Renamed" || got.ImageURL != "/images/new.png" {
		t.Errorf("update not applied: %+v", got)
	}
	if len(got.KeyFeatures) != 1 || got.KeyFeatures[0] != "rewritten" {
		t.Errorf("KeyFeatures = %v, want [rewritten]", got.KeyFeatures)
	}

	p.Title = "Other"
	if err := s.UpdateProject(ctx, p); !errors.Is(err, ErrConflict) {
		t.Errorf("UpdateProject to duplicate title = %v, want ErrConflict", err)
	}

	missing := testProject("Missing")
	missing.ID = 9999
	if err := s.UpdateProject(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateProject(9999) = %v, want ErrNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// Social media
// ---------------------------------------------------------------------------

func TestSocialMediaCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	gh := &model.SocialMedia{Platform: "GitHub", Link: "https://github.com/user"}
	if err := s.CreateSocialMedia(ctx, gh); err != nil {
		t.Fatalf("CreateSocialMedia: %v", err)
	}
	err := s.CreateSocialMedia(ctx, &model.SocialMedia{Platform: "GitHub", Link: "other"})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate CreateSocialMedia = %v, want ErrConflict", err)
	}

	gh.Link = "https://github.com/renamed"
	if err := s.UpdateSocialMedia(ctx, gh); err != nil {
		t.Fatalf("UpdateSocialMedia: %v", err)
	}

	links, err := s.ListSocialMedia(ctx)
	if err != nil {
		t.Fatalf("ListSocialMedia: %v", err)
	}
	if len(links) != 1 || links[0].Link != gh.Link {
		t.Errorf("links = %+v", links)
	}

	if err := s.DeleteSocialMedia(ctx, gh.ID); err != nil {
		t.Fatalf("DeleteSocialMedia: %v", err)
	}
	if err := s.DeleteSocialMedia(ctx, gh.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteSocialMedia = %v, want ErrNotFound", err)
	}
}
