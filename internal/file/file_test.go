package file

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkessy/devbench/internal/config"
	"github.com/mkessy/devbench/internal/db"
	"github.com/mkessy/devbench/internal/models"
	"github.com/mkessy/devbench/internal/project"
	"github.com/mkessy/devbench/internal/user"
	"github.com/mkessy/devbench/internal/validate"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Connect(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func testProject(t *testing.T, gdb *gorm.DB) *models.Project {
	t.Helper()
	u, err := user.Create(gdb, validate.NewUser{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	p, err := project.Create(gdb, validate.NewProject{
		Name: "demo", UserID: u.ID, Type: "local", Path: "/srv/demo",
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func TestPut_Insert(t *testing.T) {
	gdb := testDB(t)
	p := testProject(t, gdb)

	f, err := Put(gdb, validate.NewFile{
		ProjectID: p.ID,
		Path:      "cmd/main.go",
		Content:   strPtr("package main"),
		Type:      "file",
		Size:      int64Ptr(12),
	})
	if err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	if !strings.HasPrefix(f.ID, "fil-") {
		t.Errorf("ID %q missing fil- prefix", f.ID)
	}
	if f.Content == nil || *f.Content != "package main" {
		t.Errorf("Content = %v, want package main", f.Content)
	}
	if f.ModifiedAt.IsZero() {
		t.Error("ModifiedAt not set")
	}
}

func TestPut_UpdateKeepsID(t *testing.T) {
	gdb := testDB(t)
	p := testProject(t, gdb)

	first, err := Put(gdb, validate.NewFile{
		ProjectID: p.ID,
		Path:      "README.md",
		Content:   strPtr("# demo"),
		Type:      "file",
		Size:      int64Ptr(6),
	})
	if err != nil {
		t.Fatalf("first Put() error: %v", err)
	}

	second, err := Put(gdb, validate.NewFile{
		ProjectID: p.ID,
		Path:      "README.md",
		Content:   strPtr("# demo v2"),
		Type:      "file",
		Size:      int64Ptr(9),
	})
	if err != nil {
		t.Fatalf("second Put() error: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("upsert changed ID: %q -> %q", first.ID, second.ID)
	}
	if second.Content == nil || *second.Content != "# demo v2" {
		t.Errorf("Content = %v, want # demo v2", second.Content)
	}

	var count int64
	gdb.Table("files").Where("project_id = ?", p.ID).Count(&count)
	if count != 1 {
		t.Errorf("file count = %d, want 1", count)
	}
}

func TestPut_DirectoryDropsContent(t *testing.T) {
	gdb := testDB(t)
	p := testProject(t, gdb)

	f, err := Put(gdb, validate.NewFile{
		ProjectID: p.ID,
		Path:      "src",
		Content:   strPtr("ignored"),
		Type:      "directory",
		Size:      int64Ptr(999),
	})
	if err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	if f.Content != nil {
		t.Error("directory Content should be nil")
	}
	if f.Size != nil {
		t.Error("directory Size should be nil")
	}
}

func TestPut_ProjectMissing(t *testing.T) {
	gdb := testDB(t)

	_, err := Put(gdb, validate.NewFile{
		ProjectID: "prj-missing",
		Path:      "a.txt",
		Type:      "file",
	})
	if err == nil {
		t.Fatal("expected error for missing project")
	}
	if !strings.Contains(err.Error(), "project not found") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "project not found")
	}
}

func TestList_Prefix(t *testing.T) {
	gdb := testDB(t)
	p := testProject(t, gdb)

	for _, path := range []string{"src", "src/a.go", "src/b.go", "docs/readme.md"} {
		typ := "file"
		if path == "src" {
			typ = "directory"
		}
		if _, err := Put(gdb, validate.NewFile{ProjectID: p.ID, Path: path, Type: typ}); err != nil {
			t.Fatalf("put %s: %v", path, err)
		}
	}

	all, err := List(gdb, p.ID, "")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("all entries = %d, want 4", len(all))
	}

	src, err := List(gdb, p.ID, "src")
	if err != nil {
		t.Fatalf("List(src) error: %v", err)
	}
	if len(src) != 3 {
		t.Errorf("src entries = %d, want 3", len(src))
	}
	// docs/readme.md must not match the src prefix.
	for _, f := range src {
		if strings.HasPrefix(f.Path, "docs") {
			t.Errorf("unexpected entry %q under src prefix", f.Path)
		}
	}
}

func TestRemove(t *testing.T) {
	gdb := testDB(t)
	p := testProject(t, gdb)

	if _, err := Put(gdb, validate.NewFile{ProjectID: p.ID, Path: "a.txt", Type: "file"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	if err := Remove(gdb, p.ID, "a.txt"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if _, err := Get(gdb, p.ID, "a.txt"); err == nil {
		t.Error("expected not-found after remove")
	}

	if err := Remove(gdb, p.ID, "a.txt"); err == nil {
		t.Error("expected error removing missing entry")
	}
}
