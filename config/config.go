// Package config loads server settings from an optional YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/laurheth/pumpkin-oubliette/dungeon"
	"github.com/laurheth/pumpkin-oubliette/services"
)

// Storage back ends
const (
	StoreJSON     = "json"
	StorePostgres = "postgres"
	StoreBolt     = "bolt"
)

// Config holds every setting of the server
type Config struct {
	Port     string         `yaml:"port"`
	Static   string         `yaml:"static"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Dungeon  DungeonConfig  `yaml:"dungeon"`
}

type DatabaseConfig struct {
	Type string `yaml:"type"`
	URL  string `yaml:"url"`
	File string `yaml:"file"`
}

type SessionConfig struct {
	HashKey string `yaml:"hash_key"`
}

type DungeonConfig struct {
	Width     int           `yaml:"width"`
	Height    int           `yaml:"height"`
	Density   float64       `yaml:"density"`
	FOVRadius int           `yaml:"fov_radius"`
	ChunkSize int           `yaml:"chunk_size"`
	StepDelay time.Duration `yaml:"step_delay"`
	Verbose   bool          `yaml:"verbose"`

	// Rooms and Hallways replace the built in flavour text when set
	Rooms    []dungeon.Flavour `yaml:"rooms"`
	Hallways []dungeon.Flavour `yaml:"hallways"`
}

// Default is the configuration used when nothing is set
func Default() *Config {
	world := services.DefaultWorldConfig()
	return &Config{
		Port: "8080",
		Database: DatabaseConfig{
			Type: StoreJSON,
			URL:  "host=localhost user=pumpkin password=pumpkin dbname=pumpkin_oubliette sslmode=disable",
			File: "db.json",
		},
		Dungeon: DungeonConfig{
			Width:     world.Width,
			Height:    world.Height,
			Density:   world.Density,
			FOVRadius: world.FOVRadius,
			ChunkSize: world.ChunkSize,
			StepDelay: world.StepDelay,
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if port := getenv("PORT"); port != "" {
		c.Port = port
	}
	if dbType := getenv("DB_TYPE"); dbType != "" {
		c.Database.Type = dbType
	}
	if url := getenv("DATABASE_URL"); url != "" {
		c.Database.URL = url
	}
	if file := getenv("DB_FILE"); file != "" {
		c.Database.File = file
	}
	if key := getenv("SESSION_HASH_KEY"); key != "" {
		c.Session.HashKey = key
	}
}

// Validate rejects settings the server cannot run with
func (c *Config) Validate() error {
	switch c.Database.Type {
	case StoreJSON, StorePostgres, StoreBolt:
	default:
		return fmt.Errorf("unknown database type %q", c.Database.Type)
	}
	d := c.Dungeon
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("dungeon size %dx%d must be positive", d.Width, d.Height)
	}
	if d.Density <= 0 || d.Density > 1 {
		return fmt.Errorf("dungeon density %v must be in (0, 1]", d.Density)
	}
	return nil
}

// World converts the dungeon block for the world service
func (c *Config) World() services.WorldConfig {
	return services.WorldConfig{
		Width:     c.Dungeon.Width,
		Height:    c.Dungeon.Height,
		Density:   c.Dungeon.Density,
		FOVRadius: c.Dungeon.FOVRadius,
		ChunkSize: c.Dungeon.ChunkSize,
		StepDelay: c.Dungeon.StepDelay,
		Verbose:   c.Dungeon.Verbose,

		RoomFlavours: c.Dungeon.Rooms,
		HallFlavours: c.Dungeon.Hallways,
	}
}
