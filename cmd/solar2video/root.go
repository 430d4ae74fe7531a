package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ivlev/solar2video/internal/annotation"
	"github.com/ivlev/solar2video/internal/config"
	"github.com/ivlev/solar2video/internal/engine"
	"github.com/ivlev/solar2video/internal/overlay"
	"github.com/ivlev/solar2video/internal/source"
	"github.com/ivlev/solar2video/internal/store"
	"github.com/ivlev/solar2video/internal/system"
	"github.com/ivlev/solar2video/internal/timeline"
	"github.com/ivlev/solar2video/internal/video"
)

var rootCmd = &cobra.Command{
	Use:   "solar2video <start-date>",
	Short: "Render a solar system time-lapse with age and lap-count overlays",
	Long: `Fetches one Solar System Live frame per step between the start date and the
end date, annotates each with the calendar date, the age since the start date
and how many times Earth lapped (or was lapped by) the other planets, and
encodes the frames into an H.264 video.

Examples:
  solar2video 1975-01-01
  solar2video 1975-01-01 --end-date 2026-01-20 --step-days 7 --name Ada`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .solar2video.yaml)")
	pf.String("periods", "", "YAML file with orbital periods (default: built-in table)")

	f := rootCmd.Flags()
	f.String("end-date", "", "end date in YYYY-MM-DD format (default: today)")
	f.Int("step-days", 3, "days between frames")
	f.String("name", "", "name to display in the age text")
	f.String("renderer-url", "http://localhost:8080/cgi-bin/Solar", "Solar System Live CGI endpoint")
	f.Duration("http-timeout", 60*time.Second, "timeout for one frame request")
	f.String("work-dir", ".", "directory for frames, metadata and output")
	f.StringP("output", "o", "solar_timelapse.mp4", "output video path (relative to work dir)")
	f.String("font", "", "TTF/OTF/TTC font for the overlay text (default: Go Regular)")
	f.Bool("qr", false, "stamp a QR code with the frame date")
	f.Bool("keep-frames", true, "keep frame directories after encoding")
	f.Bool("stats", false, "print a performance report and append it to benchmark.log")

	bind := map[string]string{
		"periods_file": "periods",
		"end_date":     "end-date",
		"step_days":    "step-days",
		"name":         "name",
		"renderer_url": "renderer-url",
		"http_timeout": "http-timeout",
		"work_dir":     "work-dir",
		"output":       "output",
		"font_path":    "font",
		"qr":           "qr",
		"keep_frames":  "keep-frames",
		"stats":        "stats",
	}
	for key, flag := range bind {
		fl := f.Lookup(flag)
		if fl == nil {
			fl = pf.Lookup(flag)
		}
		_ = viper.BindPFlag(key, fl)
	}
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".solar2video")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("SOLAR2VIDEO")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

func runRoot(cmd *cobra.Command, args []string) error {
	viper.Set("start", args[0])
	viper.Set("build_version", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	dateRange, err := cfg.DateRange(time.Now())
	if err != nil {
		return err
	}
	synodic, err := cfg.Synodic()
	if err != nil {
		return err
	}
	cfg.Output = cfg.Path(cfg.Output)

	// Environment checks before the first renderer request
	ffmpegVersion, err := system.CheckFFmpeg("ffmpeg")
	if err != nil {
		return err
	}
	fmt.Printf("[*] %s\n", ffmpegVersion)

	freeMB, err := system.CheckFreeSpace(cfg.WorkDir, cfg.MinFreeMB)
	if err != nil {
		return err
	}
	fmt.Printf("[*] Free space in %s: %d MB\n", cfg.WorkDir, freeMB)

	frames, err := store.NewFrameStore(cfg.Path(cfg.FramesDir), cfg.Path(cfg.VideoFramesDir))
	if err != nil {
		return err
	}
	fmt.Printf("[*] Frames: %s | Video frames: %s\n", frames.RenderedDir, frames.CompositeDir)

	comp, err := overlay.NewCompositor(compositorOptions(cfg))
	if err != nil {
		return err
	}
	defer comp.Close()

	profile := video.DefaultProfile()
	profile.FPS, profile.CRF, profile.Preset = cfg.FPS, cfg.CRF, cfg.Preset

	project := engine.NewVideoProject(
		&cfg,
		dateRange,
		annotation.NewBuilder(dateRange.Start, cfg.Name, synodic),
		source.NewSolarRenderer(cfg.RendererURL, cfg.ImageSize, cfg.HTTPTimeout),
		frames,
		comp,
		video.NewFFmpegEncoder(profile, cfg.WorkDir),
	)
	if err := project.Run(context.Background()); err != nil {
		return err
	}

	fmt.Printf("[+++] Done. Generated %d frame(s) and video %s (%s..%s)\n",
		timeline.Count(dateRange), cfg.Output,
		dateRange.Start.Format(timeline.DateLayout), dateRange.End.Format(timeline.DateLayout))
	return nil
}

// compositorOptions maps the config onto the overlay layout. The rendered
// image is always scaled to the default width, whatever size was requested
// from the renderer.
func compositorOptions(cfg config.Config) overlay.Options {
	opts := overlay.DefaultOptions()
	opts.Width, opts.Height = cfg.Width, cfg.Height
	opts.FontSize, opts.FontPath = cfg.FontSize, cfg.FontPath
	opts.LineHeight = 0
	opts.QR = cfg.QR
	return opts
}
