// Package store writes finished simulated games to Parquet.
//
// Two row types are exported: one MoveRow per action taken during a game and
// one SeatRow per seat once the game ends. Files are written to outDir/tmp
// and renamed into outDir when complete, so readers never observe a
// partially-written file.
package store

const (
	MoveSchema = "blokus_move_v1"
	SeatSchema = "blokus_seat_v1"

	MovePrefix = "moves"
	SeatPrefix = "seats"

	ActionPlace  = "place"
	ActionRetire = "retire"
)

// MoveRow is a single action by one player.
//
// For retire actions Shape is empty, the anchor is (-1,-1) and the cell
// lists are empty. ScoreAfter is the acting player's score after the action.
type MoveRow struct {
	GameID    string  `parquet:"game_id,dict"`
	Ply       int32   `parquet:"ply"`
	Player    int32   `parquet:"player"`
	Agent     string  `parquet:"agent,dict"`
	Action    string  `parquet:"action,dict"`
	Shape     string  `parquet:"shape,dict"`
	AnchorRow int32   `parquet:"anchor_row"`
	AnchorCol int32   `parquet:"anchor_col"`
	Flipped   bool    `parquet:"flipped"`
	Rotations int32   `parquet:"rotations"`
	CellRows  []int32 `parquet:"cell_rows"`
	CellCols  []int32 `parquet:"cell_cols"`
	// Moves is how many legal placements the player had to choose from.
	Moves      int32  `parquet:"moves"`
	ScoreAfter int32  `parquet:"score_after"`
	Source     string `parquet:"source,dict"`
}

// SeatRow is the outcome of a finished game for one seat.
type SeatRow struct {
	GameID       string `parquet:"game_id,dict"`
	Seat         int32  `parquet:"seat"`
	Agent        string `parquet:"agent,dict"`
	Score        int32  `parquet:"score"`
	Won          bool   `parquet:"won"`
	Tied         bool   `parquet:"tied"`
	PiecesPlaced int32  `parquet:"pieces_placed"`
	Size         int32  `parquet:"size"`
	Players      int32  `parquet:"players"`
	Plies        int32  `parquet:"plies"`
	Source       string `parquet:"source,dict"`
}
