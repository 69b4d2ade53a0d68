package core

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jayline-services/assist/app/core/srv"
	"github.com/jayline-services/assist/pkg/github"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}

	return *conf
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	return c
}

type CoreConfig struct {
	Addr     string      `toml:"addr"`
	Log      Log         `toml:"log"`
	Postgres PGConfig    `toml:"postgres"`
	Redis    RedisConfig `toml:"redis"`
	Site     Site        `toml:"site"`

	AI srv.AIConfig `toml:"ai"`

	Index    IndexConfig   `toml:"index"`
	GitHub   github.Config `toml:"github"`
	Security Security      `toml:"security"`
}

// Site describes the marketing site this service backs.
type Site struct {
	// ContentDir is the local checkout of the site's page sources, walked by
	// the indexer.
	ContentDir string `toml:"content_dir"`
	BaseURL    string `toml:"base_url"`
}

// IndexConfig controls the scheduled full reindex.
type IndexConfig struct {
	// Cron is a standard cron expression. Empty disables the schedule.
	Cron string `toml:"cron"`
}

type Security struct {
	// JWTSecret signs admin tokens. The service refuses admin routes when it
	// is empty.
	JWTSecret string `toml:"jwt_secret"`
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("JAYLINE_SERVICE_ADDRESS")
	c.Log.FromENV()
	c.Postgres.FromENV()
	c.Redis.FromENV()

	c.AI.Token = os.Getenv("JAYLINE_OPENAI_TOKEN")
	c.AI.Endpoint = os.Getenv("JAYLINE_OPENAI_ENDPOINT")
	c.AI.ChatModel = os.Getenv("JAYLINE_OPENAI_CHAT_MODEL")
	c.AI.EmbeddingModel = os.Getenv("JAYLINE_OPENAI_EMBEDDING_MODEL")

	c.Site.ContentDir = os.Getenv("JAYLINE_SITE_CONTENT_DIR")
	c.Site.BaseURL = os.Getenv("JAYLINE_SITE_BASE_URL")
	c.Index.Cron = os.Getenv("JAYLINE_INDEX_CRON")

	c.GitHub.Token = os.Getenv("JAYLINE_GITHUB_TOKEN")
	c.GitHub.Owner = os.Getenv("JAYLINE_GITHUB_OWNER")
	c.GitHub.Repo = os.Getenv("JAYLINE_GITHUB_REPO")
	c.GitHub.Enabled = c.GitHub.Token != ""

	c.Security.JWTSecret = os.Getenv("JAYLINE_JWT_SECRET")
}

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("JAYLINE_POSTGRESQL_DSN")
}

func (c PGConfig) FormatDSN() string {
	return c.DSN
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

func (r *RedisConfig) FromENV() {
	r.Addr = os.Getenv("JAYLINE_REDIS_ADDR")
	r.Password = os.Getenv("JAYLINE_REDIS_PASSWORD")
	if dbStr := os.Getenv("JAYLINE_REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			r.DB = db
		}
	}
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("JAYLINE_LOG_LEVEL")
	l.Path = os.Getenv("JAYLINE_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
