//go:build !js && !wasm
// +build !js,!wasm

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vedicmetrics/ChandasDNA/internal/meter"
)

// Helper function to create a temporary test database
func setupTestDB(t *testing.T) (*DBClient, string) {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test_chandas.sqlite3")

	oldPath := os.Getenv("CHANDAS_DB_PATH")
	os.Setenv("CHANDAS_DB_PATH", dbPath)
	t.Cleanup(func() {
		if oldPath == "" {
			os.Unsetenv("CHANDAS_DB_PATH")
		} else {
			os.Setenv("CHANDAS_DB_PATH", oldPath)
		}
	})

	client, err := NewDBClient()
	if err != nil {
		t.Fatalf("Failed to create test DB client: %v", err)
	}

	t.Cleanup(func() {
		client.Close()
	})

	return client, dbPath
}

// TestNewDBClient tests database initialization and seeding
func TestNewDBClient(t *testing.T) {
	client, dbPath := setupTestDB(t)

	if client.DB == nil {
		t.Fatal("Expected non-nil GORM DB handle")
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("Database file was not created at %s", dbPath)
	}

	// a fresh database carries the embedded catalogue
	defs, err := meter.BuiltinDefinitions()
	if err != nil {
		t.Fatalf("BuiltinDefinitions failed: %v", err)
	}
	count, err := client.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != int64(len(defs)) {
		t.Errorf("Expected %d seeded meters, got %d", len(defs), count)
	}
}

// TestNewDBClientWithCustomPath tests database creation in a nested directory
func TestNewDBClientWithCustomPath(t *testing.T) {
	tmpDir := t.TempDir()
	customPath := filepath.Join(tmpDir, "subdir", "custom.db")

	client, err := NewDBClientWithPath(customPath)
	if err != nil {
		t.Fatalf("Failed to create DB at custom path: %v", err)
	}
	defer client.Close()

	if _, err := os.Stat(customPath); os.IsNotExist(err) {
		t.Errorf("Database file was not created at %s", customPath)
	}
}

// TestSeedOnlyOnce verifies reopening does not duplicate the seed
func TestSeedOnlyOnce(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "reopen.sqlite3")

	client, err := NewDBClientWithPath(dbPath)
	if err != nil {
		t.Fatalf("First open failed: %v", err)
	}
	first, _ := client.Count()
	client.Close()

	client, err = NewDBClientWithPath(dbPath)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer client.Close()

	second, _ := client.Count()
	if first != second {
		t.Errorf("Seed ran twice: %d then %d meters", first, second)
	}
}

func TestRegisterMeter(t *testing.T) {
	client, _ := setupTestDB(t)

	def := meter.Definition{
		Name:          "Vidyunmala",
		Family:        meter.SamaVritta,
		Pattern:       "GGGGGGGG",
		Aliases:       []string{"Vidyunmālā"},
		FreePositions: []int{8},
	}
	id, err := client.RegisterMeter(def)
	if err != nil {
		t.Fatalf("RegisterMeter failed: %v", err)
	}
	if id == "" {
		t.Error("Expected a non-empty meter ID")
	}

	row, err := client.GetMeterByName("Vidyunmala")
	if err != nil {
		t.Fatalf("GetMeterByName failed: %v", err)
	}
	if row.Pattern != "GGGGGGGG" {
		t.Errorf("Stored pattern = %s", row.Pattern)
	}
	if row.Builtin {
		t.Error("User-registered meter must not be marked builtin")
	}

	// registered meters go after all builtins
	builtins, _ := meter.BuiltinDefinitions()
	if row.Priority < len(builtins) {
		t.Errorf("Expected priority >= %d, got %d", len(builtins), row.Priority)
	}

	// the round trip preserves aliases and free positions
	back := row.Definition()
	if !reflect.DeepEqual(back.Aliases, def.Aliases) {
		t.Errorf("Aliases round trip: %#v", back.Aliases)
	}
	if !reflect.DeepEqual(back.FreePositions, def.FreePositions) {
		t.Errorf("FreePositions round trip: %#v", back.FreePositions)
	}
}

func TestRegisterMeterDuplicate(t *testing.T) {
	client, _ := setupTestDB(t)

	def := meter.Definition{Name: "Anushtup", Family: meter.SamaVritta, Pattern: "LGGLGGLG"}
	if _, err := client.RegisterMeter(def); err == nil {
		t.Error("Registering a duplicate name should fail")
	}
}

func TestRegisterMeterInvalid(t *testing.T) {
	client, _ := setupTestDB(t)

	def := meter.Definition{Name: "Broken", Family: meter.SamaVritta, Pattern: "LGX"}
	if _, err := client.RegisterMeter(def); err == nil {
		t.Error("An invalid pattern should be rejected before storage")
	}
}

func TestGetMeterByNameCaseInsensitive(t *testing.T) {
	client, _ := setupTestDB(t)

	for _, name := range []string{"Anushtup", "anushtup", "ANUSHTUP"} {
		if _, err := client.GetMeterByName(name); err != nil {
			t.Errorf("GetMeterByName(%q) failed: %v", name, err)
		}
	}

	if _, err := client.GetMeterByName("NoSuchMeter"); !errors.Is(err, ErrMeterNotFound) {
		t.Errorf("Expected ErrMeterNotFound, got %v", err)
	}
}

func TestListMetersOrdered(t *testing.T) {
	client, _ := setupTestDB(t)

	rows, err := client.ListMeters()
	if err != nil {
		t.Fatalf("ListMeters failed: %v", err)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Priority < rows[i-1].Priority {
			t.Fatal("Meters not ordered by priority")
		}
	}
}

func TestDeleteMeterByName(t *testing.T) {
	client, _ := setupTestDB(t)

	before, _ := client.Count()
	if err := client.DeleteMeterByName("Totaka"); err != nil {
		t.Fatalf("DeleteMeterByName failed: %v", err)
	}
	after, _ := client.Count()
	if after != before-1 {
		t.Errorf("Expected %d meters after deletion, got %d", before-1, after)
	}

	if err := client.DeleteMeterByName("Totaka"); !errors.Is(err, ErrMeterNotFound) {
		t.Errorf("Second deletion should report not found, got %v", err)
	}
}

func TestLoadCatalogue(t *testing.T) {
	client, _ := setupTestDB(t)

	cat, err := client.LoadCatalogue()
	if err != nil {
		t.Fatalf("LoadCatalogue failed: %v", err)
	}
	count, _ := client.Count()
	if int64(cat.Len()) != count {
		t.Errorf("Catalogue has %d entries, database has %d", cat.Len(), count)
	}

	def, ok := cat.Lookup("Mandakranta")
	if !ok {
		t.Fatal("Mandakranta missing from loaded catalogue")
	}
	if def.Info == nil {
		t.Error("Cultural info lost in the storage round trip")
	}
}
