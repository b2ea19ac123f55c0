// Package report summarizes exported simulation results with DuckDB.
package report

import (
	"database/sql"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/brensch/blokus/store"
)

// findParquetFiles returns finished files for prefix under root. In-flight
// batches live in tmp/ directories and are skipped.
func findParquetFiles(root, prefix string) ([]string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, nil
	}
	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if name == "tmp" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, prefix+"_") && strings.HasSuffix(strings.ToLower(name), ".parquet") {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		if os.IsNotExist(walkErr) {
			return nil, nil
		}
		return nil, walkErr
	}
	return files, nil
}

const emptySeats = `CREATE OR REPLACE VIEW seats AS
	SELECT * FROM (
		SELECT
			NULL::VARCHAR AS game_id,
			NULL::INTEGER AS seat,
			NULL::VARCHAR AS agent,
			NULL::INTEGER AS score,
			NULL::BOOLEAN AS won,
			NULL::BOOLEAN AS tied,
			NULL::INTEGER AS pieces_placed,
			NULL::INTEGER AS size,
			NULL::INTEGER AS players,
			NULL::INTEGER AS plies,
			NULL::VARCHAR AS source,
			NULL::VARCHAR AS filename
	) WHERE 1=0`

const emptyMoves = `CREATE OR REPLACE VIEW moves AS
	SELECT * FROM (
		SELECT
			NULL::VARCHAR AS game_id,
			NULL::INTEGER AS ply,
			NULL::INTEGER AS player,
			NULL::VARCHAR AS agent,
			NULL::VARCHAR AS action,
			NULL::VARCHAR AS shape,
			NULL::INTEGER AS anchor_row,
			NULL::INTEGER AS anchor_col,
			NULL::BOOLEAN AS flipped,
			NULL::INTEGER AS rotations,
			NULL::INTEGER[] AS cell_rows,
			NULL::INTEGER[] AS cell_cols,
			NULL::INTEGER AS moves,
			NULL::INTEGER AS score_after,
			NULL::VARCHAR AS source,
			NULL::VARCHAR AS filename
	) WHERE 1=0`

// Open returns an in-memory DuckDB with "seats" and "moves" views over
// every finished batch under root.
func Open(root string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, err
	}
	// Basic pragmas; ignore errors for compatibility across versions.
	_, _ = db.Exec("PRAGMA threads=4")

	for _, v := range []struct {
		view, prefix, empty string
	}{
		{"seats", store.SeatPrefix, emptySeats},
		{"moves", store.MovePrefix, emptyMoves},
	} {
		files, err := findParquetFiles(root, v.prefix)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		sqlText := v.empty
		if len(files) > 0 {
			arr := make([]string, 0, len(files))
			for _, p := range files {
				arr = append(arr, "'"+escapeSQLString(p)+"'")
			}
			sqlText = "CREATE OR REPLACE VIEW " + v.view + " AS SELECT * FROM read_parquet([" +
				strings.Join(arr, ",") + "], filename=true, union_by_name=true)"
		}
		if _, err := db.Exec(sqlText); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

func escapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
