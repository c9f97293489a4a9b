package user

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkessy/devbench/internal/config"
	"github.com/mkessy/devbench/internal/db"
	"github.com/mkessy/devbench/internal/project"
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

func TestCreate(t *testing.T) {
	gdb := testDB(t)

	u, err := Create(gdb, validate.NewUser{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if !strings.HasPrefix(u.ID, "usr-") {
		t.Errorf("ID %q missing usr- prefix", u.ID)
	}
	if u.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestCreate_MissingFields(t *testing.T) {
	gdb := testDB(t)

	if _, err := Create(gdb, validate.NewUser{Username: "alice"}); err == nil {
		t.Error("expected error for missing password")
	}
	if _, err := Create(gdb, validate.NewUser{Password: "secret"}); err == nil {
		t.Error("expected error for missing username")
	}
}

func TestCreate_DuplicateUsername(t *testing.T) {
	gdb := testDB(t)

	if _, err := Create(gdb, validate.NewUser{Username: "alice", Password: "a"}); err != nil {
		t.Fatalf("first Create() error: %v", err)
	}
	_, err := Create(gdb, validate.NewUser{Username: "alice", Password: "b"})
	if err == nil {
		t.Fatal("expected error for duplicate username")
	}
	if !strings.Contains(err.Error(), "username taken") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "username taken")
	}
}

func TestGet_NotFound(t *testing.T) {
	gdb := testDB(t)

	_, err := Get(gdb, "usr-missing")
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "not found")
	}
}

func TestGetByUsername_PreloadsProjects(t *testing.T) {
	gdb := testDB(t)

	u, err := Create(gdb, validate.NewUser{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	for _, name := range []string{"one", "two"} {
		_, err := project.Create(gdb, validate.NewProject{
			Name:   name,
			UserID: u.ID,
			Type:   "local",
			Path:   "/srv/" + name,
		})
		if err != nil {
			t.Fatalf("create project %s: %v", name, err)
		}
	}

	got, err := GetByUsername(gdb, "alice")
	if err != nil {
		t.Fatalf("GetByUsername() error: %v", err)
	}
	if len(got.Projects) != 2 {
		t.Errorf("preloaded %d projects, want 2", len(got.Projects))
	}
}

func TestList(t *testing.T) {
	gdb := testDB(t)

	for _, name := range []string{"alice", "bob"} {
		if _, err := Create(gdb, validate.NewUser{Username: name, Password: "x"}); err != nil {
			t.Fatalf("Create(%s) error: %v", name, err)
		}
	}

	users, err := List(gdb)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("List() returned %d users, want 2", len(users))
	}
}
