package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/snapseries/snapseries/schema"
)

// Default values for configuration.
const (
	DefaultChartTitle    = "Number of chats"
	DefaultPictureWidth  = 1920
	DefaultPictureHeight = 1080
	DefaultVectorFile    = "chart.svg"
	DefaultRasterFile    = "chart.png"
	DefaultCollection    = "chats"
	DefaultTitleField    = "title"
	DefaultDateFormat    = "02.01.2006"
	DefaultPad           = 10.0
	DefaultGridStep      = 10.0
	DefaultConverter     = "convert"
	DefaultDensity       = 600
	DefaultBackground    = "#111"
	DefaultExtraHeight   = 70
	MaxPictureSide       = 16384
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for the pipeline.
// This struct is the "final, validated" config.
type Config struct {
	BaseDir       string
	ChartTitle    string
	PictureWidth  int
	PictureHeight int
	VectorFile    string
	RasterFile    string

	Metric     schema.MetricRule
	Collection string
	TitleField string
	Collapse   schema.CollapsePolicy
	DateFormat string

	Style    schema.ChartStyleName
	Pad      float64
	GridStep float64

	Raster      schema.RasterBackend
	Converter   string
	Density     int
	Background  string
	ExtraHeight int

	Output     schema.OutputMode
	OutputFile string
	TermWidth  int // Terminal width override (0 = auto-detect)

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	LogLevel  string
	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored deltas in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DirArg string

	// --- Fields from rootCmd.PersistentFlags() ---
	Dir              string  `mapstructure:"dir"`
	Title            string  `mapstructure:"title"`
	Size             string  `mapstructure:"size"`
	Metric           string  `mapstructure:"metric"`
	Collection       string  `mapstructure:"collection"`
	TitleField       string  `mapstructure:"title-field"`
	Collapse         string  `mapstructure:"collapse"`
	DateFormat       string  `mapstructure:"date-format"`
	Output           string  `mapstructure:"output"`
	OutputFile       string  `mapstructure:"output-file"`
	TermWidth        int     `mapstructure:"term-width"`
	HistoryBackend   string  `mapstructure:"history-backend"`
	HistoryDBConnect string  `mapstructure:"history-db-connect"`
	LogLevel         string  `mapstructure:"log-level"`
	Emoji            string  `mapstructure:"emoji"`
	Color            string  `mapstructure:"color"`
	Pad              float64 `mapstructure:"pad"`

	// --- Fields from renderCmd.Flags() ---
	VectorFile  string  `mapstructure:"svg-file"`
	RasterFile  string  `mapstructure:"png-file"`
	Style       string  `mapstructure:"style"`
	GridStep    float64 `mapstructure:"grid-step"`
	Raster      string  `mapstructure:"raster"`
	Converter   string  `mapstructure:"converter"`
	Density     int     `mapstructure:"density"`
	Background  string  `mapstructure:"background"`
	ExtraHeight int     `mapstructure:"extra-height"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// RasterOptions returns the conversion arguments derived from the config.
func (c *Config) RasterOptions() RasterOptions {
	return RasterOptions{
		Width:       c.PictureWidth,
		Height:      c.PictureHeight,
		ExtraHeight: c.ExtraHeight,
		Density:     c.Density,
		Background:  c.Background,
	}
}

// Params returns the config values worth recording alongside a run.
func (c *Config) Params() map[string]any {
	return map[string]any{
		"title":       c.ChartTitle,
		"size":        fmt.Sprintf("%dx%d", c.PictureWidth, c.PictureHeight),
		"metric":      string(c.Metric),
		"collection":  c.Collection,
		"collapse":    string(c.Collapse),
		"date_format": c.DateFormat,
		"style":       string(c.Style),
		"pad":         c.Pad,
		"raster":      string(c.Raster),
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processPicture(cfg, input); err != nil {
		return err
	}
	if err := processRaster(cfg, input); err != nil {
		return err
	}
	if err := validateHistoryConfig(cfg, input); err != nil {
		return err
	}
	if err := resolveBaseDir(cfg, input); err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate checks the enumerated and numeric fields of an already populated Config.
// It is used after per-request overrides, where the raw input path is skipped.
func (c *Config) Validate() error {
	if _, ok := schema.ValidMetricRules[c.Metric]; !ok {
		return fmt.Errorf("invalid metric '%s'. must be count or titled", c.Metric)
	}
	if _, ok := schema.ValidCollapsePolicies[c.Collapse]; !ok {
		return fmt.Errorf("invalid collapse policy '%s'. must be adjacent, none, global", c.Collapse)
	}
	if _, ok := schema.ValidChartStyles[c.Style]; !ok {
		return fmt.Errorf("invalid style '%s'. must be line or grid", c.Style)
	}
	if c.Collection == "" {
		return fmt.Errorf("collection field name cannot be empty")
	}
	if c.Metric == schema.TitledRule && c.TitleField == "" {
		return fmt.Errorf("title-field cannot be empty when using the %s metric", schema.TitledRule)
	}
	if c.Pad < 0 {
		return fmt.Errorf("pad must not be negative (received %g)", c.Pad)
	}
	if c.PictureWidth <= 0 || c.PictureHeight <= 0 {
		return fmt.Errorf("picture size must be positive (received %dx%d)", c.PictureWidth, c.PictureHeight)
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.ChartTitle = input.Title
	cfg.OutputFile = input.OutputFile
	cfg.TermWidth = input.TermWidth
	cfg.Collection = strings.TrimSpace(input.Collection)
	cfg.TitleField = strings.TrimSpace(input.TitleField)
	cfg.Pad = input.Pad
	cfg.LogLevel = input.LogLevel

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Strategy selection ---
	cfg.Metric = schema.MetricRule(strings.ToLower(input.Metric))
	cfg.Collapse = schema.CollapsePolicy(strings.ToLower(input.Collapse))
	cfg.Style = schema.ChartStyleName(strings.ToLower(input.Style))

	// --- 2. Date label layout ---
	cfg.DateFormat = input.DateFormat
	if cfg.DateFormat == "" {
		return fmt.Errorf("date-format cannot be empty")
	}
	probe := time.Date(2006, 1, 2, 0, 0, 0, 0, time.UTC)
	if probe.Format(cfg.DateFormat) == probe.AddDate(0, 0, 1).Format(cfg.DateFormat) {
		return fmt.Errorf("date-format %q does not distinguish calendar days", cfg.DateFormat)
	}

	// --- 3. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	// --- 4. Grid spacing ---
	if input.GridStep < 0 {
		return fmt.Errorf("grid-step must not be negative (received %g)", input.GridStep)
	}
	cfg.GridStep = input.GridStep

	return nil
}

// processPicture handles the chart title, picture size and artifact paths.
func processPicture(cfg *Config, input *ConfigRawInput) error {
	w, h, err := ParsePictureSize(input.Size)
	if err != nil {
		return err
	}
	cfg.PictureWidth = w
	cfg.PictureHeight = h

	cfg.VectorFile = strings.TrimSpace(input.VectorFile)
	if cfg.VectorFile == "" {
		return fmt.Errorf("svg-file cannot be empty")
	}
	cfg.RasterFile = strings.TrimSpace(input.RasterFile)
	return nil
}

// processRaster handles the external conversion settings.
func processRaster(cfg *Config, input *ConfigRawInput) error {
	cfg.Raster = schema.RasterBackend(strings.ToLower(input.Raster))
	if _, ok := schema.ValidRasterBackends[cfg.Raster]; !ok {
		return fmt.Errorf("invalid raster backend '%s'. must be imagemagick or none", input.Raster)
	}
	if cfg.Raster == schema.NoRaster {
		return nil
	}

	cfg.Converter = strings.TrimSpace(input.Converter)
	if cfg.Converter == "" {
		return fmt.Errorf("converter cannot be empty when raster conversion is enabled")
	}
	if cfg.RasterFile == "" {
		return fmt.Errorf("png-file cannot be empty when raster conversion is enabled")
	}
	if input.Density <= 0 {
		return fmt.Errorf("density must be greater than 0 (received %d)", input.Density)
	}
	cfg.Density = input.Density
	if input.ExtraHeight < 0 {
		return fmt.Errorf("extra-height must not be negative (received %d)", input.ExtraHeight)
	}
	cfg.ExtraHeight = input.ExtraHeight
	cfg.Background = strings.TrimSpace(input.Background)
	if cfg.Background == "" {
		return fmt.Errorf("background cannot be empty when raster conversion is enabled")
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateHistoryConfig validates the run history backend configuration.
func validateHistoryConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// resolveBaseDir resolves the snapshot directory from the positional argument or --dir.
// The positional argument takes precedence.
func resolveBaseDir(cfg *Config, input *ConfigRawInput) error {
	dir := strings.TrimSpace(input.DirArg)
	if dir == "" {
		dir = strings.TrimSpace(input.Dir)
	}
	if dir == "" {
		return fmt.Errorf("snapshot directory is required (positional argument or --dir)")
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return fmt.Errorf("cannot access snapshot directory %s: %w", absDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("snapshot path %s is not a directory", absDir)
	}
	cfg.BaseDir = filepath.Clean(absDir)
	return nil
}

// ParsePictureSize parses a "WIDTHxHEIGHT" string such as "1920x1080".
func ParsePictureSize(s string) (int, int, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid picture size '%s', expected WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid picture width in '%s': %w", s, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid picture height in '%s': %w", s, err)
	}
	if w <= 0 || h <= 0 || w > MaxPictureSide || h > MaxPictureSide {
		return 0, 0, fmt.Errorf("picture size must be between 1 and %d on each side (received %dx%d)", MaxPictureSide, w, h)
	}
	return w, h, nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
