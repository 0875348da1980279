package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateMigrationsDir(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir should validate: %v", err)
	}
}

func TestInitMigrationCoversAllTables(t *testing.T) {
	entries, err := os.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}

	var initFile string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_init.sql") {
			initFile = filepath.Join("migrations", e.Name())
		}
	}
	if initFile == "" {
		t.Fatal("no init migration found")
	}

	b, err := os.ReadFile(initFile)
	if err != nil {
		t.Fatalf("read init migration: %v", err)
	}
	sql := string(b)

	tables := []string{
		"users", "bundles", "listings", "offers", "transactions",
		"reviews", "saved_listings", "follows", "listing_views", "reports",
	}
	for _, table := range tables {
		if !strings.Contains(sql, "CREATE TABLE "+table) {
			t.Errorf("init migration missing CREATE TABLE %s", table)
		}
		if !strings.Contains(sql, "DROP TABLE IF EXISTS "+table) {
			t.Errorf("init migration missing DROP TABLE for %s", table)
		}
	}

	if !strings.Contains(sql, "ux_transactions_listing_buyer") {
		t.Error("init migration missing unique transaction constraint")
	}
	if !strings.Contains(sql, "ux_reviews_transaction_reviewer") {
		t.Error("init migration missing unique mutual-review constraint")
	}
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "001_bad.sql")
	if err := os.WriteFile(bad, []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected invalid filename to be rejected")
	}
}
