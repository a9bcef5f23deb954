package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/driftboard/driftboard/pkg/scene"
)

func writeScene(t *testing.T, sc *scene.Scene) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := scene.WriteSceneFile(sc, path); err != nil {
		t.Fatalf("write scene: %v", err)
	}
	return path
}

func overlappingScene() *scene.Scene {
	sc := scene.New("cli-test")
	sc.Zones = []scene.Zone{
		{ID: "z1", Position: scene.Position{X: 0, Y: 0}, Size: scene.Size{Width: 1200, Height: 1000}},
	}
	sc.Entities = []scene.Entity{
		{ID: "a", Type: scene.TypeNote, Position: scene.Position{X: 100, Y: 100}, ZoneID: "z1"},
		{ID: "b", Type: scene.TypeNote, Position: scene.Position{X: 110, Y: 105}, ZoneID: "z1"},
	}
	return sc
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func TestArrangeCommand(t *testing.T) {
	path := writeScene(t, overlappingScene())
	out := filepath.Join(t.TempDir(), "arranged.json")

	if err := runCommand(t, "arrange", path, "-o", out); err != nil {
		t.Fatalf("arrange: %v", err)
	}

	sc, err := scene.ReadSceneFile(out)
	if err != nil {
		t.Fatalf("read arranged scene: %v", err)
	}
	a, b := sc.Entity("a"), sc.Entity("b")
	if a == nil || b == nil {
		t.Fatal("arranged scene lost entities")
	}
	if a.Position == b.Position {
		t.Error("entities still stacked after arrange")
	}
}

func TestPlaceCommand(t *testing.T) {
	t.Run("ExistingEntity", func(t *testing.T) {
		path := writeScene(t, overlappingScene())

		if err := runCommand(t, "place", path, "--entity", "b"); err != nil {
			t.Fatalf("place: %v", err)
		}

		sc, _ := scene.ReadSceneFile(path)
		if sc.Entity("b").Position == (scene.Position{X: 110, Y: 105}) {
			t.Error("colliding entity not moved")
		}
	})

	t.Run("NewEntity", func(t *testing.T) {
		path := writeScene(t, overlappingScene())

		err := runCommand(t, "place", path, "--type", "todo", "--zone", "z1", "--label", "new task")
		if err != nil {
			t.Fatalf("place: %v", err)
		}

		sc, _ := scene.ReadSceneFile(path)
		if sc.EntityCount() != 3 {
			t.Fatalf("entities = %d, want 3", sc.EntityCount())
		}
	})

	t.Run("RejectsBothFlags", func(t *testing.T) {
		path := writeScene(t, overlappingScene())
		if err := runCommand(t, "place", path, "--entity", "a", "--type", "note"); err == nil {
			t.Error("place accepted --entity and --type together")
		}
	})

	t.Run("UnknownEntity", func(t *testing.T) {
		path := writeScene(t, overlappingScene())
		if err := runCommand(t, "place", path, "--entity", "nope"); err == nil {
			t.Error("place accepted unknown entity")
		}
	})

	t.Run("UnknownZone", func(t *testing.T) {
		path := writeScene(t, overlappingScene())
		if err := runCommand(t, "place", path, "--type", "note", "--zone", "nope"); err == nil {
			t.Error("place accepted unknown zone")
		}
	})
}

func TestRenderCommand(t *testing.T) {
	path := writeScene(t, overlappingScene())
	out := filepath.Join(t.TempDir(), "scene.svg")

	// Point the cache at a temp directory so test runs stay isolated.
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	if err := runCommand(t, "render", path, "-o", out, "--collisions"); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("output is not SVG")
	}
}

func TestDataDir(t *testing.T) {
	t.Run("XDG", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/tmp/custom-data")
		dir, err := dataDir()
		if err != nil {
			t.Fatalf("dataDir: %v", err)
		}
		if want := filepath.Join("/tmp/custom-data", appName); dir != want {
			t.Errorf("dataDir = %q, want %q", dir, want)
		}
	})

	t.Run("Default", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "")
		os.Unsetenv("XDG_DATA_HOME")
		dir, err := dataDir()
		if err != nil {
			t.Fatalf("dataDir: %v", err)
		}
		home, _ := os.UserHomeDir()
		if want := filepath.Join(home, ".local", "share", appName); dir != want {
			t.Errorf("dataDir = %q, want %q", dir, want)
		}
	})
}
