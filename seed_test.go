package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSeed(t *testing.T) {
	seed := defaultSeed()
	if len(seed) != 5 {
		t.Fatalf("len(defaultSeed()) = %d, want 5", len(seed))
	}
	if err := validateSeed(seed); err != nil {
		t.Fatalf("validateSeed(defaultSeed()) = %v, want nil", err)
	}
	for i, e := range seed {
		if e.ZIndex != i+1 {
			t.Fatalf("email %s ZIndex = %d, want %d", e.ID, e.ZIndex, i+1)
		}
	}
}

func TestLoadSeed_EmptyPathUsesDefault(t *testing.T) {
	seed, err := loadSeed("")
	if err != nil {
		t.Fatalf("loadSeed(\"\") error = %v", err)
	}
	if got := emailIDs(seed); got != "1,2,3,4,5" {
		t.Fatalf("loadSeed(\"\") = %q, want default seed", got)
	}
}

func TestLoadSeed_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inbox.toml")
	data := `
[[email]]
id = "a"
sender = "Ann"
subject = "First"
preview = "one"
x = 4
y = 6

[[email]]
sender = "Ben"
subject = "Second"
read = true
starred = true
minimized = true
x = 40
y = 6
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	seed, err := loadSeed(path)
	if err != nil {
		t.Fatalf("loadSeed() error = %v", err)
	}
	if len(seed) != 2 {
		t.Fatalf("len(seed) = %d, want 2", len(seed))
	}
	if seed[0].ID != "a" || seed[0].Position != (point{4, 6}) || seed[0].ZIndex != 1 {
		t.Fatalf("seed[0] = %+v, want id a at {4 6} z 1", seed[0])
	}
	b := seed[1]
	if b.ID != "2" || b.ZIndex != 2 || !b.IsRead || !b.IsStarred || !b.IsMinimized {
		t.Fatalf("seed[1] = %+v, want id 2 z 2 read starred minimized", b)
	}
}

func TestLoadSeed_RejectsUnorderedZ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	data := `
[[email]]
id = "a"
z = 5

[[email]]
id = "b"
z = 3
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if _, err := loadSeed(path); !errors.Is(err, ErrSeedOrder) {
		t.Fatalf("loadSeed() error = %v, want ErrSeedOrder", err)
	}
}

func TestLoadSeed_MissingFile(t *testing.T) {
	if _, err := loadSeed(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("loadSeed(missing) error = nil, want error")
	}
}
