package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_UpDownPairs(t *testing.T) {
	entries, err := fs.Glob(MigrationFiles, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, name := range entries {
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Fatalf("unexpected migration file %q", name)
		}
	}
	require.Equal(t, ups, downs)
}

func TestMigrationFiles_CreateLedgerTables(t *testing.T) {
	body, err := fs.ReadFile(MigrationFiles, "000001_create_claim_ledger.up.sql")
	require.NoError(t, err)

	for _, table := range []string{"topics", "claims", "claim_events"} {
		require.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}
