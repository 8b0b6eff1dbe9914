package game

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	GameTickDuration    = 50 * time.Millisecond
	DefaultScreenWidth  = 640
	DefaultScreenHeight = 480
	DefaultCellSize     = 20
	HighScoreDBPath     = "highscores.db"

	// rejection sampling gives up after this many draws per grid cell
	placementAttemptsPerCell = 4
)

// CollisionPolicy decides what happens to a session once the snake bites itself.
type CollisionPolicy int

const (
	ResetOnCollision CollisionPolicy = iota
	TerminateOnCollision
)

func (p CollisionPolicy) String() string {
	switch p {
	case ResetOnCollision:
		return "reset"
	case TerminateOnCollision:
		return "terminate"
	default:
		return "unknown"
	}
}

// DirectionPolicy decides the heading of a freshly spawned snake.
type DirectionPolicy int

const (
	RandomDirection DirectionPolicy = iota
	FixedDirection
)

type Config struct {
	// ScreenWidth and ScreenHeight are measured in the same unit as CellSize.
	ScreenWidth  int
	ScreenHeight int
	CellSize     int

	OnCollision      CollisionPolicy
	InitialDirection DirectionPolicy
	FixedDirection   Direction
	TickDuration     time.Duration
}

func DefaultConfig() Config {
	return Config{
		ScreenWidth:      DefaultScreenWidth,
		ScreenHeight:     DefaultScreenHeight,
		CellSize:         DefaultCellSize,
		OnCollision:      ResetOnCollision,
		InitialDirection: RandomDirection,
		FixedDirection:   Right,
		TickDuration:     GameTickDuration,
	}
}

// TerminalConfig builds a config where every terminal cell is one grid cell.
func TerminalConfig(cols, rows int) Config {
	cfg := DefaultConfig()
	cfg.ScreenWidth = cols
	cfg.ScreenHeight = rows
	cfg.CellSize = 1
	return cfg
}

func (c Config) Validate() error {
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: cell size %d must be positive", ErrInvalidGridSize, c.CellSize)
	}
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("%w: screen %dx%d must be positive", ErrInvalidGridSize, c.ScreenWidth, c.ScreenHeight)
	}
	if c.ScreenWidth%c.CellSize != 0 || c.ScreenHeight%c.CellSize != 0 {
		return fmt.Errorf("%w: screen %dx%d is not a multiple of cell size %d",
			ErrInvalidGridSize, c.ScreenWidth, c.ScreenHeight, c.CellSize)
	}
	if c.InitialDirection == FixedDirection && !c.FixedDirection.IsUnit() {
		return fmt.Errorf("fixed initial direction %v is not a unit vector", c.FixedDirection)
	}
	return nil
}

// GridSize returns the grid dimensions in cells. Only meaningful for a valid config.
func (c Config) GridSize() (int, int) {
	return c.ScreenWidth / c.CellSize, c.ScreenHeight / c.CellSize
}

// LoadConfigFromEnv overrides base with TORUS_* environment variables when they are set.
func LoadConfigFromEnv(base Config) (Config, error) {
	cfg := base

	if v := os.Getenv("TORUS_ON_COLLISION"); v != "" {
		switch strings.ToLower(v) {
		case "reset":
			cfg.OnCollision = ResetOnCollision
		case "terminate":
			cfg.OnCollision = TerminateOnCollision
		default:
			return base, fmt.Errorf("TORUS_ON_COLLISION: unknown policy %q", v)
		}
	}

	if v := os.Getenv("TORUS_INITIAL_DIRECTION"); v != "" {
		if strings.EqualFold(v, "random") {
			cfg.InitialDirection = RandomDirection
		} else {
			dir, err := ParseDirection(v)
			if err != nil {
				return base, fmt.Errorf("TORUS_INITIAL_DIRECTION: %w", err)
			}
			cfg.InitialDirection = FixedDirection
			cfg.FixedDirection = dir
		}
	}

	if v := os.Getenv("TORUS_TICK_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return base, fmt.Errorf("TORUS_TICK_MS: invalid tick %q", v)
		}
		cfg.TickDuration = time.Duration(ms) * time.Millisecond
	}

	return cfg, nil
}
