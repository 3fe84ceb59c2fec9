package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	Port                     string
	DatabaseURL              string
	DefaultAnswerSeconds     int
	MaxAnswerSeconds         int
	PlayerTimeoutSeconds     int
	MaxPlayers               int
	SweepIntervalSeconds     int
	IdleRoomSeconds          int
	RoomRetentionHours       int
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
}

func Default() Config {
	return Config{
		Port:                     "8080",
		DefaultAnswerSeconds:     60,
		MaxAnswerSeconds:         600,
		PlayerTimeoutSeconds:     15,
		MaxPlayers:               0,
		SweepIntervalSeconds:     0,
		IdleRoomSeconds:          1800,
		RoomRetentionHours:       24,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("PORT"); raw != "" {
		cfg.Port = raw
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	readPositive("DEFAULT_ANSWER_SECONDS", &cfg.DefaultAnswerSeconds)
	readPositive("MAX_ANSWER_SECONDS", &cfg.MaxAnswerSeconds)
	readPositive("PLAYER_TIMEOUT_SECONDS", &cfg.PlayerTimeoutSeconds)
	readPositive("IDLE_ROOM_SECONDS", &cfg.IdleRoomSeconds)
	readPositive("ROOM_RETENTION_HOURS", &cfg.RoomRetentionHours)
	readPositive("DB_MAX_OPEN_CONNS", &cfg.DBMaxOpenConns)
	readPositive("DB_MAX_IDLE_CONNS", &cfg.DBMaxIdleConns)
	readPositive("DB_CONN_MAX_LIFETIME_SECONDS", &cfg.DBConnMaxLifetimeSeconds)
	readPositive("DB_CONN_MAX_IDLE_SECONDS", &cfg.DBConnMaxIdleTimeSeconds)
	if raw := os.Getenv("MAX_PLAYERS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.MaxPlayers = value
		}
	}
	if raw := os.Getenv("SWEEP_INTERVAL_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.SweepIntervalSeconds = value
		}
	}
	if cfg.DefaultAnswerSeconds > cfg.MaxAnswerSeconds {
		cfg.DefaultAnswerSeconds = cfg.MaxAnswerSeconds
	}
	return cfg
}

func readPositive(name string, dest *int) {
	raw := os.Getenv(name)
	if raw == "" {
		return
	}
	if value, err := strconv.Atoi(raw); err == nil && value > 0 {
		*dest = value
	}
}

func (c Config) PlayerTimeout() time.Duration {
	return time.Duration(c.PlayerTimeoutSeconds) * time.Second
}

func (c Config) IdleRoomTimeout() time.Duration {
	return time.Duration(c.IdleRoomSeconds) * time.Second
}

func (c Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}

func (c Config) RoomRetention() time.Duration {
	return time.Duration(c.RoomRetentionHours) * time.Hour
}
