package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/ivlev/solar2video/internal/orbit"
	"github.com/ivlev/solar2video/internal/timeline"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"StepDays", cfg.StepDays, 3},
		{"RendererURL", cfg.RendererURL, "http://localhost:8080/cgi-bin/Solar"},
		{"ImageSize", cfg.ImageSize, 1024},
		{"HTTPTimeout", cfg.HTTPTimeout, 60 * time.Second},
		{"FramesDir", cfg.FramesDir, "frames"},
		{"VideoFramesDir", cfg.VideoFramesDir, "video_frames"},
		{"Output", cfg.Output, "solar_timelapse.mp4"},
		{"KeepFrames", cfg.KeepFrames, true},
		{"Width", cfg.Width, 1920},
		{"Height", cfg.Height, 1080},
		{"FPS", cfg.FPS, 30},
		{"CRF", cfg.CRF, 18},
		{"Preset", cfg.Preset, "slow"},
		{"Name", cfg.Name, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	resetViper()
	viper.SetEnvPrefix("SOLAR2VIDEO")
	viper.AutomaticEnv()

	t.Setenv("SOLAR2VIDEO_STEP_DAYS", "7")
	t.Setenv("SOLAR2VIDEO_NAME", "Ada")
	t.Setenv("SOLAR2VIDEO_HTTP_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StepDays != 7 || cfg.Name != "Ada" || cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestDateRange(t *testing.T) {
	today := time.Date(2026, 1, 20, 15, 4, 5, 0, time.UTC)

	cfg := Config{Start: "1975-01-01", StepDays: 3}
	r, err := cfg.DateRange(today)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.End.Format(timeline.DateLayout); got != "2026-01-20" {
		t.Errorf("end should default to today at midnight, got %s", got)
	}
	if r.End.Hour() != 0 {
		t.Errorf("end not normalised to midnight: %v", r.End)
	}

	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"missing start", Config{StepDays: 3}, "start"},
		{"bad start", Config{Start: "1975/01/01", StepDays: 3}, "start"},
		{"bad end", Config{Start: "1975-01-01", EndDate: "tomorrow", StepDays: 3}, "end_date"},
		{"zero step", Config{Start: "1975-01-01", StepDays: 0}, "step_days"},
		{"negative step", Config{Start: "1975-01-01", StepDays: -2}, "step_days"},
		{"reversed", Config{Start: "2030-01-01", EndDate: "2020-01-01", StepDays: 3}, "end_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.DateRange(today)
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if ce.Field != tt.field {
				t.Errorf("field = %s, want %s", ce.Field, tt.field)
			}
		})
	}
}

func TestSynodic(t *testing.T) {
	st, err := Config{}.Synodic()
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Inner()) != 2 || len(st.Outer()) != 6 {
		t.Errorf("unexpected partition: %d inner, %d outer", len(st.Inner()), len(st.Outer()))
	}

	path := filepath.Join(t.TempDir(), "periods.yaml")
	data := "reference: Earth\nplanets:\n  - name: Earth\n    period_days: 365.256\n  - name: Twin\n    period_days: 365.256\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	_, err = Config{PeriodsFile: path}.Synodic()
	var ce *ConfigError
	if !errors.As(err, &ce) || !errors.Is(err, orbit.ErrReferencePeriod) {
		t.Errorf("expected ConfigError wrapping ErrReferencePeriod, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	resetViper()
	base, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"odd width", func(c *Config) { c.Width = 1921 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"crf out of range", func(c *Config) { c.CRF = 60 }},
		{"zero image size", func(c *Config) { c.ImageSize = 0 }},
		{"empty renderer", func(c *Config) { c.RendererURL = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			var ce *ConfigError
			if err := cfg.Validate(); !errors.As(err, &ce) {
				t.Errorf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestPath(t *testing.T) {
	cfg := Config{WorkDir: "/srv/run"}
	if got := cfg.Path("frames"); got != "/srv/run/frames" {
		t.Errorf("Path(frames) = %s", got)
	}
	if got := cfg.Path("/abs/out.mp4"); got != "/abs/out.mp4" {
		t.Errorf("absolute path rewritten: %s", got)
	}
}
