package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkDocumentStore_StoreDocument measures upserts against a file-backed database.
func BenchmarkDocumentStore_StoreDocument(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	store := sqlite.NewDocumentStore(db)
	ctx := context.Background()
	meta := docagent.Metadata{"fetched_at": "2025-01-01T00:00:00Z"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		url := fmt.Sprintf("https://example.com/docs/page%d", i%100)
		if _, err := store.StoreDocument(ctx, url, "# Page\n\nSome content.", meta); err != nil {
			b.Fatal(err)
		}
	}
}
