package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/parquet-go/parquet-go"
)

// ReadRows loads every row of a Parquet file written by BatchWriter.
func ReadRows[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	return rows, nil
}

// ListBatches returns finished files for prefix in outDir, oldest first.
// Files still in outDir/tmp are never included.
func ListBatches(outDir, prefix string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(outDir, prefix+"_*.parquet"))
	if err != nil {
		return nil, err
	}
	out := matches[:0]
	for _, m := range matches {
		if st, err := os.Stat(m); err == nil && st.Mode().IsRegular() {
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out, nil
}
