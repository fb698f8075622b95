package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Terrain  TerrainConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	TickInterval    time.Duration
}

type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LoggingConfig struct {
	Level      string
	Format     string
	Structured bool
}

var (
	ErrInvalidTileSize = errors.New("tile size must be positive")
	ErrInvalidMapSize  = errors.New("map width and height must be positive")
)

// TerrainConfig is the numeric parameter surface of the generator. Values are clamped by
// Normalize before they reach any algorithm.
type TerrainConfig struct {
	Seed     int64
	TileSize float64
	OriginX  float64
	OriginY  float64

	MapWidth  int
	MapHeight int

	WaterFraction        float64
	MinWaterRadius       int
	MaxWaterRadius       int
	Circularity          float64
	MinWaterDistance     int
	BorderBuffer         int
	MaxPlacementAttempts int
	NoiseScale           float64
	NoiseFloor           float64

	SmoothingIterations int
	MinClusterSize      int

	SafeZoneRadius int
	SafeZoneRing   int

	TriggerDistance int
	PreloadMargin   int
	ExpansionSize   int
	ExpansionHalo   int
	CheckInterval   int

	VegetationDensity   float64
	VegetationSpacing   float64
	VegetationExclusion int
	VegetationVariants  int
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnvStr("PORT", "8080"),
			ReadTimeout:     getEnvDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvDuration("IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
			TickInterval:    getEnvDuration("TICK_INTERVAL", 50*time.Millisecond),
		},
		Database: DatabaseConfig{
			Path:            getEnvStr("DB_PATH", "./terrain.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 1),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Logging: LoggingConfig{
			Level:      getEnvStr("LOG_LEVEL", "info"),
			Format:     getEnvStr("LOG_FORMAT", "json"),
			Structured: getEnvBool("LOG_STRUCTURED", true),
		},
		Terrain: LoadTerrain(),
	}
}

// LoadTerrain reads terrain parameters from the environment on top of DefaultTerrain.
func LoadTerrain() TerrainConfig {
	d := DefaultTerrain()
	return TerrainConfig{
		Seed:     getEnvInt64("TERRAIN_SEED", d.Seed),
		TileSize: getEnvFloat("TILE_SIZE", d.TileSize),
		OriginX:  getEnvFloat("ORIGIN_X", d.OriginX),
		OriginY:  getEnvFloat("ORIGIN_Y", d.OriginY),

		MapWidth:  getEnvInt("MAP_WIDTH", d.MapWidth),
		MapHeight: getEnvInt("MAP_HEIGHT", d.MapHeight),

		WaterFraction:        getEnvFloat("WATER_FRACTION", d.WaterFraction),
		MinWaterRadius:       getEnvInt("WATER_MIN_RADIUS", d.MinWaterRadius),
		MaxWaterRadius:       getEnvInt("WATER_MAX_RADIUS", d.MaxWaterRadius),
		Circularity:          getEnvFloat("WATER_CIRCULARITY", d.Circularity),
		MinWaterDistance:     getEnvInt("WATER_MIN_DISTANCE", d.MinWaterDistance),
		BorderBuffer:         getEnvInt("WATER_BORDER_BUFFER", d.BorderBuffer),
		MaxPlacementAttempts: getEnvInt("WATER_MAX_ATTEMPTS", d.MaxPlacementAttempts),
		NoiseScale:           getEnvFloat("WATER_NOISE_SCALE", d.NoiseScale),
		NoiseFloor:           getEnvFloat("WATER_NOISE_FLOOR", d.NoiseFloor),

		SmoothingIterations: getEnvInt("SMOOTHING_ITERATIONS", d.SmoothingIterations),
		MinClusterSize:      getEnvInt("MIN_CLUSTER_SIZE", d.MinClusterSize),

		SafeZoneRadius: getEnvInt("SAFE_ZONE_RADIUS", d.SafeZoneRadius),
		SafeZoneRing:   getEnvInt("SAFE_ZONE_RING", d.SafeZoneRing),

		TriggerDistance: getEnvInt("EXPANSION_TRIGGER", d.TriggerDistance),
		PreloadMargin:   getEnvInt("EXPANSION_PRELOAD", d.PreloadMargin),
		ExpansionSize:   getEnvInt("EXPANSION_SIZE", d.ExpansionSize),
		ExpansionHalo:   getEnvInt("EXPANSION_HALO", d.ExpansionHalo),
		CheckInterval:   getEnvInt("EXPANSION_CHECK_TICKS", d.CheckInterval),

		VegetationDensity:   getEnvFloat("VEGETATION_DENSITY", d.VegetationDensity),
		VegetationSpacing:   getEnvFloat("VEGETATION_SPACING", d.VegetationSpacing),
		VegetationExclusion: getEnvInt("VEGETATION_EXCLUSION", d.VegetationExclusion),
		VegetationVariants:  getEnvInt("VEGETATION_VARIANTS", d.VegetationVariants),
	}
}

// DefaultTerrain returns the parameters used when nothing is configured.
func DefaultTerrain() TerrainConfig {
	return TerrainConfig{
		Seed:     0,
		TileSize: 1.0,

		MapWidth:  64,
		MapHeight: 64,

		WaterFraction:        0.18,
		MinWaterRadius:       2,
		MaxWaterRadius:       5,
		Circularity:          0.85,
		MinWaterDistance:     8,
		BorderBuffer:         2,
		MaxPlacementAttempts: 400,
		NoiseScale:           24.0,
		NoiseFloor:           0.25,

		SmoothingIterations: 8,
		MinClusterSize:      12,

		SafeZoneRadius: 4,
		SafeZoneRing:   2,

		TriggerDistance: 12,
		PreloadMargin:   4,
		ExpansionSize:   32,
		ExpansionHalo:   2,
		CheckInterval:   10,

		VegetationDensity:   0.04,
		VegetationSpacing:   3.0,
		VegetationExclusion: 3,
		VegetationVariants:  4,
	}
}

// Validate reports static configuration that must stop initialization.
func (c TerrainConfig) Validate() error {
	if c.TileSize <= 0 || math.IsNaN(c.TileSize) || math.IsInf(c.TileSize, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidTileSize, c.TileSize)
	}
	if c.MapWidth <= 0 || c.MapHeight <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidMapSize, c.MapWidth, c.MapHeight)
	}
	return nil
}

// Normalize clamps every tunable to a usable range. It never touches TileSize or the map
// size; those are checked by Validate instead.
func (c TerrainConfig) Normalize() TerrainConfig {
	c.WaterFraction = clampFloat(c.WaterFraction, 0, 0.9)
	c.MinWaterRadius = maxInt(c.MinWaterRadius, 1)
	c.MaxWaterRadius = maxInt(c.MaxWaterRadius, c.MinWaterRadius)
	c.Circularity = clampFloat(c.Circularity, 0, 1)
	c.MinWaterDistance = maxInt(c.MinWaterDistance, 1)
	c.BorderBuffer = maxInt(c.BorderBuffer, 0)
	c.MaxPlacementAttempts = maxInt(c.MaxPlacementAttempts, 1)
	if c.NoiseScale <= 0 {
		c.NoiseScale = 1
	}
	c.NoiseFloor = clampFloat(c.NoiseFloor, 0, 1)

	c.SmoothingIterations = maxInt(c.SmoothingIterations, 1)
	c.MinClusterSize = maxInt(c.MinClusterSize, 1)

	c.SafeZoneRadius = maxInt(c.SafeZoneRadius, 0)
	c.SafeZoneRing = maxInt(c.SafeZoneRing, 0)

	c.TriggerDistance = maxInt(c.TriggerDistance, 1)
	c.PreloadMargin = maxInt(c.PreloadMargin, 0)
	c.ExpansionSize = maxInt(c.ExpansionSize, 1)
	c.ExpansionHalo = maxInt(c.ExpansionHalo, 0)
	c.CheckInterval = maxInt(c.CheckInterval, 1)

	c.VegetationDensity = clampFloat(c.VegetationDensity, 0, 1)
	if c.VegetationSpacing < 1 {
		c.VegetationSpacing = 1
	}
	c.VegetationExclusion = maxInt(c.VegetationExclusion, 0)
	c.VegetationVariants = maxInt(c.VegetationVariants, 1)
	return c
}

// WithSeed returns a copy with the seed replaced.
func (c TerrainConfig) WithSeed(seed int64) TerrainConfig {
	c.Seed = seed
	return c
}

// WithMapSize returns a copy with the initial map size replaced.
func (c TerrainConfig) WithMapSize(width, height int) TerrainConfig {
	c.MapWidth = width
	c.MapHeight = height
	return c
}

// WithWater returns a copy with the water cluster parameters replaced.
func (c TerrainConfig) WithWater(fraction float64, minRadius, maxRadius int, circularity float64, minDistance int) TerrainConfig {
	c.WaterFraction = fraction
	c.MinWaterRadius = minRadius
	c.MaxWaterRadius = maxRadius
	c.Circularity = circularity
	c.MinWaterDistance = minDistance
	return c
}

// WithSafeZone returns a copy with the safe zone radius and ring width replaced.
func (c TerrainConfig) WithSafeZone(radius, ring int) TerrainConfig {
	c.SafeZoneRadius = radius
	c.SafeZoneRing = ring
	return c
}

// WithExpansion returns a copy with the streaming trigger parameters replaced.
func (c TerrainConfig) WithExpansion(trigger, preload, size, checkInterval int) TerrainConfig {
	c.TriggerDistance = trigger
	c.PreloadMargin = preload
	c.ExpansionSize = size
	c.CheckInterval = checkInterval
	return c
}

// WithVegetation returns a copy with the vegetation parameters replaced.
func (c TerrainConfig) WithVegetation(density, spacing float64, exclusion int) TerrainConfig {
	c.VegetationDensity = density
	c.VegetationSpacing = spacing
	c.VegetationExclusion = exclusion
	return c
}

// ResolveSeed returns the configured seed, or a time-based one when the seed is zero.
func (c TerrainConfig) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

func getEnvStr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(v, lo int) int {
	if v < lo {
		return lo
	}
	return v
}
