package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/inamate/drawkit/internal/drawing"
	"github.com/inamate/drawkit/internal/figure"
	"github.com/inamate/drawkit/internal/style"
)

type Config struct {
	Port           int     `envconfig:"PORT" default:"8080"`
	JWTSecret      string  `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	AccessKeyHash  string  `envconfig:"ACCESS_KEY_HASH"`
	AllowedOrigins string  `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	LogLevel       string  `envconfig:"LOG_LEVEL" default:"info"`
	HistorySize    int     `envconfig:"HISTORY_SIZE" default:"100"`
	DefaultFigure  string  `envconfig:"DEFAULT_FIGURE" default:"circle"`
	DefaultFill    string  `envconfig:"DEFAULT_FILL" default:"none"`
	DefaultEdge    string  `envconfig:"DEFAULT_EDGE" default:"black"`
	EdgeWidth      float64 `envconfig:"EDGE_WIDTH" default:"1"`
	LineType       string  `envconfig:"LINE_TYPE" default:"solid"`
	CornerArc      float64 `envconfig:"CORNER_ARC" default:"10"`
	CustomPaint    string  `envconfig:"CUSTOM_PAINT" default:"black"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Origins splits AllowedOrigins on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Level maps LogLevel onto a slog level.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

// Pending builds the creation style new drawings start with.
func (c *Config) Pending() (drawing.Pending, error) {
	p := drawing.DefaultPending()

	kind, err := figure.ParseKind(c.DefaultFigure)
	if err != nil {
		return p, fmt.Errorf("default figure: %w", err)
	}
	fill, err := style.ParsePaint(c.DefaultFill)
	if err != nil {
		return p, fmt.Errorf("default fill: %w", err)
	}
	edge, err := style.ParsePaint(c.DefaultEdge)
	if err != nil {
		return p, fmt.Errorf("default edge: %w", err)
	}
	lt, err := style.ParseLineType(c.LineType)
	if err != nil {
		return p, fmt.Errorf("line type: %w", err)
	}
	if c.EdgeWidth < 0 {
		return p, fmt.Errorf("edge width %v is negative", c.EdgeWidth)
	}

	p.Kind = kind
	p.Fill = fill
	p.Edge = edge
	p.LineType = lt
	p.Width = c.EdgeWidth
	p.Arc = c.CornerArc
	return p, nil
}

// Resolver resolves the wildcard paint to CustomPaint.
func (c *Config) Resolver() (style.Resolver, error) {
	p, err := style.ParsePaint(c.CustomPaint)
	if err != nil {
		return nil, fmt.Errorf("custom paint: %w", err)
	}
	if p == nil || style.IsCustom(p) {
		return nil, fmt.Errorf("custom paint %q is not a concrete color", c.CustomPaint)
	}
	return style.FixedResolver{Paint: *p}, nil
}
