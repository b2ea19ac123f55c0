// Package config resolves CLI settings from flags, the environment and an
// optional .env file.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvLogLevel      = "BLOKUS_LOG_LEVEL"
	EnvLogPretty     = "BLOKUS_LOG_PRETTY"
	EnvLogFile       = "BLOKUS_LOG_FILE"
	EnvBoard         = "BLOKUS_BOARD"
	EnvPlayers       = "BLOKUS_PLAYERS"
	EnvAgents        = "BLOKUS_AGENTS"
	EnvGames         = "BLOKUS_GAMES"
	EnvWorkers       = "BLOKUS_WORKERS"
	EnvOutDir        = "BLOKUS_OUT_DIR"
	EnvGamesPerFlush = "BLOKUS_GAMES_PER_FLUSH"
	EnvFlushEvery    = "BLOKUS_FLUSH_EVERY"
	EnvSeed          = "BLOKUS_SEED"
)

// Settings are the values shared by the binaries. Flags are registered with
// these as defaults, so an explicit flag always wins over the environment.
type Settings struct {
	LogLevel      string
	LogPretty     bool
	LogFile       string
	Board         string
	Players       int
	Agents        string
	Games         int
	Workers       int
	OutDir        string
	GamesPerFlush int
	FlushEvery    time.Duration
	Seed          int64
}

// Load reads .env files when present (existing environment variables take
// precedence) and returns the environment-derived settings.
func Load(envFiles ...string) Settings {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else {
		for _, f := range envFiles {
			_ = godotenv.Load(f)
		}
	}
	return FromEnv()
}

func FromEnv() Settings {
	return Settings{
		LogLevel:      getEnv(EnvLogLevel, "info"),
		LogPretty:     getEnvBool(EnvLogPretty, true),
		LogFile:       getEnv(EnvLogFile, ""),
		Board:         getEnv(EnvBoard, "duo"),
		Players:       getEnvInt(EnvPlayers, 2),
		Agents:        getEnv(EnvAgents, "random,largest"),
		Games:         getEnvInt(EnvGames, 100),
		Workers:       getEnvInt(EnvWorkers, 0),
		OutDir:        getEnv(EnvOutDir, "data/games"),
		GamesPerFlush: getEnvInt(EnvGamesPerFlush, 50),
		FlushEvery:    getEnvDuration(EnvFlushEvery, 30*time.Second),
		Seed:          getEnvInt64(EnvSeed, 0),
	}
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if n, err := strconv.Atoi(getEnv(k, "")); err == nil {
		return n
	}
	return def
}

func getEnvInt64(k string, def int64) int64 {
	if n, err := strconv.ParseInt(getEnv(k, ""), 10, 64); err == nil {
		return n
	}
	return def
}

func getEnvBool(k string, def bool) bool {
	if b, err := strconv.ParseBool(getEnv(k, "")); err == nil {
		return b
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(k, "")); err == nil {
		return d
	}
	return def
}
