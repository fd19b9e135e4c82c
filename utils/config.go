package utils

import (
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sheikhrachel/lifegrid/export"
	"github.com/sheikhrachel/lifegrid/model"
	"github.com/sheikhrachel/lifegrid/render"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("utils: invalid configuration")

// PatternConfig places a named pattern on the initial grid
type PatternConfig struct {
	Name     string `json:"name" yaml:"name"`
	X        int    `json:"x" yaml:"x"`
	Y        int    `json:"y" yaml:"y"`
	Rotation int    `json:"rotation" yaml:"rotation"` // clockwise, in degrees
	FlipH    bool   `json:"flip_h" yaml:"flip_h"`
	FlipV    bool   `json:"flip_v" yaml:"flip_v"`
	Reset    bool   `json:"reset" yaml:"reset"`
}

// ExportConfig controls periodic image snapshots
type ExportConfig struct {
	Every  int     `json:"every" yaml:"every"` // generations between snapshots, 0 disables
	Dir    string  `json:"dir" yaml:"dir"`
	Format string  `json:"format" yaml:"format"`
	Scale  float64 `json:"scale" yaml:"scale"` // grid cells per pixel
}

// Config holds the configuration for the game
type Config struct {
	Width               int           `json:"width" yaml:"width"`
	Height              int           `json:"height" yaml:"height"`
	Adjacency           string        `json:"adjacency" yaml:"adjacency"`
	FrameRate           time.Duration `json:"frame_rate" yaml:"frame_rate"`
	AutoRestart         bool          `json:"auto_restart" yaml:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold" yaml:"stagnation_threshold"`
	UseMemoryPool       bool          `json:"use_memory_pool" yaml:"use_memory_pool"`
	MaxGenerations      int           `json:"max_generations" yaml:"max_generations"`
	RandomDensity       float64       `json:"random_density" yaml:"random_density"`
	InjectionCount      int           `json:"injection_count" yaml:"injection_count"`
	Seed                int64         `json:"seed" yaml:"seed"`
	AliveColor          string        `json:"alive_color" yaml:"alive_color"`
	DeadColor           string        `json:"dead_color" yaml:"dead_color"`
	FitTerminal         bool          `json:"fit_terminal" yaml:"fit_terminal"`
	GUIScale            int           `json:"gui_scale" yaml:"gui_scale"`

	Patterns []PatternConfig `json:"patterns" yaml:"patterns"`
	Export   ExportConfig    `json:"export" yaml:"export"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               60,
		Height:              30,
		Adjacency:           "wrap",
		FrameRate:           150 * time.Millisecond,
		AutoRestart:         true,
		StagnationThreshold: 5,
		UseMemoryPool:       true,
		MaxGenerations:      1000,
		RandomDensity:       0.15,
		InjectionCount:      3,
		Seed:                42,
		AliveColor:          "yellow",
		DeadColor:           "black",
		FitTerminal:         true,
		GUIScale:            8,
		Export: ExportConfig{
			Dir:    "frames",
			Format: string(export.FormatPNG),
			Scale:  0.25,
		},
	}
}

// LoadConfig loads configuration from a JSON or YAML (.yaml, .yml) file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] grid size %dx%d", c.Width, c.Height)
	}
	if c.RandomDensity < 0 || c.RandomDensity > 1 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] random_density %v not in [0, 1]", c.RandomDensity)
	}
	if c.StagnationThreshold < 1 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] stagnation_threshold %d must be at least 1", c.StagnationThreshold)
	}
	if c.InjectionCount < 0 || c.MaxGenerations < 0 || c.GUIScale < 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative injection_count %d, max_generations %d or gui_scale %d",
			c.InjectionCount, c.MaxGenerations, c.GUIScale)
	}
	if c.FrameRate < 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative frame_rate %v", c.FrameRate)
	}
	if _, err := c.AdjacencyMode(); err != nil {
		return errors.Wrap(err, "[Validate]")
	}
	if _, err := c.Placements(); err != nil {
		return errors.Wrap(err, "[Validate]")
	}
	if _, _, err := c.TerminalColors(); err != nil {
		return errors.Wrap(err, "[Validate]")
	}
	if c.Export.Every > 0 {
		if _, err := export.ParseFormat(c.Export.Format); err != nil {
			return errors.Wrap(err, "[Validate]")
		}
		if c.Export.Scale <= 0.0001 {
			return errors.Wrapf(export.ErrInvalidScale, "[Validate] export scale %v", c.Export.Scale)
		}
	}
	return nil
}

// AdjacencyMode parses the adjacency setting
func (c Config) AdjacencyMode() (model.Adjacency, error) {
	return model.ParseAdjacency(c.Adjacency)
}

// Placements converts the configured patterns, checking names and rotations
func (c Config) Placements() ([]model.PatternPlacement, error) {
	placements := make([]model.PatternPlacement, 0, len(c.Patterns))
	for _, pc := range c.Patterns {
		if _, err := model.LookupPattern(pc.Name); err != nil {
			return nil, err
		}
		rot, err := model.ParseRotation(pc.Rotation)
		if err != nil {
			return nil, err
		}
		placements = append(placements, model.PatternPlacement{
			Name:     pc.Name,
			X:        pc.X,
			Y:        pc.Y,
			Rotation: rot,
			Flip:     model.Flip{Horizontal: pc.FlipH, Vertical: pc.FlipV},
			Reset:    pc.Reset,
		})
	}
	return placements, nil
}

// TerminalColors parses the alive and dead color names
func (c Config) TerminalColors() (alive, dead render.ANSIColor, err error) {
	if alive, err = render.ParseANSIColor(c.AliveColor); err != nil {
		return
	}
	dead, err = render.ParseANSIColor(c.DeadColor)
	return
}

// ImageColors maps the terminal colors to the RGBA values used for image export and the GUI
func (c Config) ImageColors() (alive, dead color.RGBA) {
	a, d, err := c.TerminalColors()
	if err != nil {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}, color.RGBA{A: 255}
	}
	return ansiPalette[a], ansiPalette[d]
}

var ansiPalette = map[render.ANSIColor]color.RGBA{
	render.Black:   {A: 255},
	render.Red:     {R: 205, G: 49, B: 49, A: 255},
	render.Green:   {R: 13, G: 188, B: 121, A: 255},
	render.Yellow:  {R: 229, G: 229, B: 16, A: 255},
	render.Blue:    {R: 36, G: 114, B: 200, A: 255},
	render.Magenta: {R: 188, G: 63, B: 188, A: 255},
	render.Cyan:    {R: 17, G: 168, B: 205, A: 255},
	render.White:   {R: 229, G: 229, B: 229, A: 255},
}
