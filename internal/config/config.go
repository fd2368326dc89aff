// Package config loads and validates clusterplay settings from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/mpraski/clusterplay"
)

// Config holds the settings a host starts the playground with.
type Config struct {
	// Mode is the engine active at start: "kmeans" or "dbscan".
	Mode string `yaml:"mode" validate:"oneof=kmeans dbscan"`

	K      int     `yaml:"k" validate:"min=1,max=6"`
	Eps    float64 `yaml:"eps" validate:"min=10,max=100"`
	MinPts int     `yaml:"min_pts" validate:"min=2,max=12"`
	Seed   int64   `yaml:"seed"`

	// Interval is the auto-run cadence as a Go duration string, e.g. "700ms".
	Interval string `yaml:"interval" validate:"duration"`

	// Onion shows the previous centroid positions.
	Onion bool `yaml:"onion,omitempty"`

	Log Log `yaml:"log"`

	// Points are inline coordinates; PointsFile is a CSV read with XCol/YCol.
	Points     []Point `yaml:"points,omitempty" validate:"dive"`
	PointsFile string  `yaml:"points_file,omitempty"`
	XCol       int     `yaml:"x_col" validate:"min=0,nefield=YCol"`
	YCol       int     `yaml:"y_col" validate:"min=0"`
}

type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Mode:     string(clusterplay.ModeKMeans),
		K:        clusterplay.DefaultK,
		Eps:      clusterplay.DefaultEps,
		MinPts:   clusterplay.DefaultMinPts,
		Seed:     clusterplay.DefaultSeed,
		Interval: clusterplay.DefaultInterval.String(),
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		XCol: 0,
		YCol: 1,
	}
}

// Load overlays the YAML file at path on Default and validates the result.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d > 0
	})

	return v
}

// Validate checks every field against its allowed range.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// IntervalDuration returns Interval parsed. Validate guarantees it parses.
func (c *Config) IntervalDuration() time.Duration {
	d, err := time.ParseDuration(c.Interval)
	if err != nil || d <= 0 {
		return clusterplay.DefaultInterval
	}

	return d
}

// SlogLevel maps Log.Level to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
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

// Logger builds the logger described by Log.
func (c *Config) Logger() *clusterplay.Logger {
	if c.Log.Format == "json" {
		return clusterplay.NewJSONLogger(c.SlogLevel())
	}

	return clusterplay.NewTextLogger(c.SlogLevel())
}

// LoadPoints returns the configured dataset: the CSV file when set, otherwise
// the inline points.
func (c *Config) LoadPoints() ([]clusterplay.Point, error) {
	if c.PointsFile != "" {
		return clusterplay.NewImporter(c.XCol, c.YCol).Import(c.PointsFile)
	}

	p := make([]clusterplay.Point, len(c.Points))
	for i, v := range c.Points {
		p[i] = clusterplay.Point{X: v.X, Y: v.Y}
	}

	return p, nil
}

// Options translates the settings into playground options.
func (c *Config) Options() []clusterplay.Option {
	return []clusterplay.Option{
		clusterplay.WithMode(clusterplay.Mode(c.Mode)),
		clusterplay.WithK(c.K),
		clusterplay.WithEps(c.Eps),
		clusterplay.WithMinPts(c.MinPts),
		clusterplay.WithSeed(c.Seed),
		clusterplay.WithInterval(c.IntervalDuration()),
		clusterplay.WithOnion(c.Onion),
	}
}
