package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/ivlev/solar2video/internal/orbit"
	"github.com/ivlev/solar2video/internal/timeline"
)

// Config holds all runtime configuration for a run.
// Values are populated from .solar2video.yaml, SOLAR2VIDEO_* env vars, and CLI flags.
type Config struct {
	Start       string        `mapstructure:"start"`
	EndDate     string        `mapstructure:"end_date"`
	StepDays    int           `mapstructure:"step_days"`
	Name        string        `mapstructure:"name"`
	RendererURL string        `mapstructure:"renderer_url"`
	ImageSize   int           `mapstructure:"image_size"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	PeriodsFile string        `mapstructure:"periods_file"`

	WorkDir        string `mapstructure:"work_dir"`
	FramesDir      string `mapstructure:"frames_dir"`
	VideoFramesDir string `mapstructure:"video_frames_dir"`
	Output         string `mapstructure:"output"`
	KeepFrames     bool   `mapstructure:"keep_frames"`
	MinFreeMB      uint64 `mapstructure:"min_free_mb"`

	Width    int     `mapstructure:"width"`
	Height   int     `mapstructure:"height"`
	FontSize float64 `mapstructure:"font_size"`
	FontPath string  `mapstructure:"font_path"`
	QR       bool    `mapstructure:"qr"`

	FPS    int    `mapstructure:"fps"`
	CRF    int    `mapstructure:"crf"`
	Preset string `mapstructure:"preset"`

	ShowStats    bool   `mapstructure:"stats"`
	BuildVersion string `mapstructure:"build_version"`
}

// SetDefaults registers built-in defaults with viper.
func SetDefaults() {
	viper.SetDefault("start", "")
	viper.SetDefault("end_date", "")
	viper.SetDefault("name", "")
	viper.SetDefault("periods_file", "")
	viper.SetDefault("font_path", "")
	viper.SetDefault("qr", false)
	viper.SetDefault("stats", false)
	viper.SetDefault("step_days", 3)
	viper.SetDefault("renderer_url", "http://localhost:8080/cgi-bin/Solar")
	viper.SetDefault("image_size", 1024)
	viper.SetDefault("http_timeout", 60*time.Second)
	viper.SetDefault("work_dir", ".")
	viper.SetDefault("frames_dir", "frames")
	viper.SetDefault("video_frames_dir", "video_frames")
	viper.SetDefault("output", "solar_timelapse.mp4")
	viper.SetDefault("keep_frames", true)
	viper.SetDefault("min_free_mb", 500)
	viper.SetDefault("width", 1920)
	viper.SetDefault("height", 1080)
	viper.SetDefault("font_size", 40)
	viper.SetDefault("fps", 30)
	viper.SetDefault("crf", 18)
	viper.SetDefault("preset", "slow")
	viper.SetDefault("build_version", "dev")
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	SetDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Path resolves p against the work directory unless it is absolute.
func (c Config) Path(p string) string {
	if filepath.IsAbs(p) || c.WorkDir == "" {
		return p
	}
	return filepath.Join(c.WorkDir, p)
}

// DateRange parses and validates the sampled span. An empty end date means
// today.
func (c Config) DateRange(today time.Time) (timeline.DateRange, error) {
	if c.Start == "" {
		return timeline.DateRange{}, &ConfigError{Field: "start", Err: errors.New("start date is required")}
	}
	start, err := timeline.ParseDate(c.Start)
	if err != nil {
		return timeline.DateRange{}, &ConfigError{Field: "start", Value: c.Start, Err: err}
	}

	end := timeline.Midnight(today)
	if c.EndDate != "" {
		end, err = timeline.ParseDate(c.EndDate)
		if err != nil {
			return timeline.DateRange{}, &ConfigError{Field: "end_date", Value: c.EndDate, Err: err}
		}
	}

	r, err := timeline.NewDateRange(start, end, c.StepDays)
	if err != nil {
		if errors.Is(err, timeline.ErrStepDays) {
			return timeline.DateRange{}, &ConfigError{Field: "step_days", Value: fmt.Sprint(c.StepDays), Err: err}
		}
		return timeline.DateRange{}, &ConfigError{Field: "end_date", Value: end.Format(timeline.DateLayout), Err: err}
	}
	return r, nil
}

// Synodic loads the orbital table (built-in or from PeriodsFile) and derives
// synodic periods.
func (c Config) Synodic() (*orbit.SynodicTable, error) {
	table := orbit.DefaultTable()
	if c.PeriodsFile != "" {
		t, err := orbit.ReadTable(c.PeriodsFile)
		if err != nil {
			return nil, &ConfigError{Field: "periods_file", Value: c.PeriodsFile, Err: err}
		}
		table = t
	}

	st, err := orbit.NewSynodicTable(table)
	if err != nil {
		return nil, &ConfigError{Field: "periods_file", Value: c.PeriodsFile, Err: err}
	}
	return st, nil
}

// Validate checks the settings that are not covered by DateRange or Synodic.
func (c Config) Validate() error {
	switch {
	case c.ImageSize <= 0:
		return &ConfigError{Field: "image_size", Value: fmt.Sprint(c.ImageSize), Err: errors.New("must be positive")}
	case c.Width <= 0 || c.Height <= 0:
		return &ConfigError{Field: "width/height", Value: fmt.Sprintf("%dx%d", c.Width, c.Height), Err: errors.New("must be positive")}
	case c.Width%2 != 0 || c.Height%2 != 0:
		return &ConfigError{Field: "width/height", Value: fmt.Sprintf("%dx%d", c.Width, c.Height), Err: errors.New("yuv420p needs even dimensions")}
	case c.FPS <= 0:
		return &ConfigError{Field: "fps", Value: fmt.Sprint(c.FPS), Err: errors.New("must be positive")}
	case c.CRF < 0 || c.CRF > 51:
		return &ConfigError{Field: "crf", Value: fmt.Sprint(c.CRF), Err: errors.New("must be within 0-51")}
	case c.FontSize <= 0:
		return &ConfigError{Field: "font_size", Value: fmt.Sprint(c.FontSize), Err: errors.New("must be positive")}
	case c.RendererURL == "":
		return &ConfigError{Field: "renderer_url", Err: errors.New("must not be empty")}
	}
	return nil
}
