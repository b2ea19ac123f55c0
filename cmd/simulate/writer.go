package main

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/brensch/blokus/store"
)

type gameWriteRequest struct {
	moves []store.MoveRow
	seats []store.SeatRow
}

// batch is one open pair of move and seat files covering the same games.
type batch struct {
	moves *store.BatchWriter[store.MoveRow]
	seats *store.BatchWriter[store.SeatRow]
}

func openBatch(outDir string) (*batch, error) {
	moves, err := store.NewBatchWriter[store.MoveRow](outDir, store.MovePrefix, store.MoveSchema)
	if err != nil {
		return nil, err
	}
	seats, err := store.NewBatchWriter[store.SeatRow](outDir, store.SeatPrefix, store.SeatSchema)
	if err != nil {
		_, _, _, _ = moves.Finalize()
		return nil, err
	}
	return &batch{moves: moves, seats: seats}, nil
}

func (b *batch) write(req gameWriteRequest) error {
	if err := b.moves.WriteRows(req.moves); err != nil {
		return err
	}
	if err := b.seats.WriteRows(req.seats); err != nil {
		return err
	}
	b.moves.NoteGameWritten()
	b.seats.NoteGameWritten()
	return nil
}

func (b *batch) finalize() {
	for _, fin := range []func() (string, int, int, error){b.moves.Finalize, b.seats.Finalize} {
		outPath, rows, games, err := fin()
		if err != nil {
			log.Error().Err(err).Int("games", games).Int("rows", rows).Msg("parquet flush failed")
			continue
		}
		if outPath != "" {
			log.Info().Str("path", outPath).Int("games", games).Int("rows", rows).Msg("parquet flush ok")
		}
	}
}

// parquetWriterLoop streams finished games into Parquet, starting new files
// every gamesPerFlush games or flushEvery, whichever comes first. It returns
// once in is closed and the last files are finalized.
func parquetWriterLoop(outDir string, gamesPerFlush int, flushEvery time.Duration, in <-chan gameWriteRequest) {
	if gamesPerFlush <= 0 {
		gamesPerFlush = 50
	}
	if flushEvery <= 0 {
		flushEvery = 30 * time.Second
	}
	ticker := time.NewTicker(flushEvery)
	defer ticker.Stop()

	var cur *batch
	pendingGames := 0
	flush := func() {
		if cur == nil {
			return
		}
		cur.finalize()
		cur = nil
		pendingGames = 0
	}
	defer flush()

	for {
		select {
		case req, ok := <-in:
			if !ok {
				return
			}
			if cur == nil {
				b, err := openBatch(outDir)
				if err != nil {
					log.Error().Err(err).Str("out_dir", outDir).Msg("open parquet batch failed, dropping game")
					continue
				}
				cur = b
			}
			if err := cur.write(req); err != nil {
				log.Error().Err(err).Msg("parquet write failed")
				continue
			}
			pendingGames++
			if pendingGames >= gamesPerFlush {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
