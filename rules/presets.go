package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brensch/blokus/game"
)

// Preset names accepted by ParsePreset besides a bare board size.
const (
	PresetMini    = "mini"
	PresetMono    = "mono"
	PresetDuo     = "duo"
	PresetClassic = "classic"
)

func corners(size int) []game.Point {
	n := size - 1
	return []game.Point{{Row: 0, Col: 0}, {Row: n, Col: n}, {Row: 0, Col: n}, {Row: n, Col: 0}}
}

// ParsePreset builds the Config for a named board. A bare number N gives an
// NxN board starting in two opposite corners, or all four corners for more
// than two players. The result is not validated until passed to New.
func ParsePreset(name string, players int) (Config, error) {
	cfg := Config{NumPlayers: players}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PresetMini:
		cfg.Size = 5
		cfg.StartPositions = []game.Point{{Row: 0, Col: 0}, {Row: 4, Col: 4}}
	case PresetMono:
		cfg.Size = 11
		cfg.StartPositions = []game.Point{{Row: 5, Col: 5}}
	case PresetDuo:
		cfg.Size = 14
		cfg.StartPositions = []game.Point{{Row: 4, Col: 4}, {Row: 9, Col: 9}}
	case PresetClassic:
		cfg.Size = 20
		cfg.StartPositions = corners(20)
	default:
		n, err := strconv.Atoi(name)
		if err != nil {
			return Config{}, fmt.Errorf("%w: unknown board %q", ErrConfiguration, name)
		}
		cfg.Size = n
		cfg.StartPositions = corners(n)
		if players <= 2 {
			cfg.StartPositions = cfg.StartPositions[:2]
		}
	}
	return cfg, nil
}
