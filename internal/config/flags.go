package config

import (
	"flag"
	"time"
)

// Overrides are command-line settings applied on top of the file.
type Overrides struct {
	ConfigPath  string
	Debug       bool
	Variant     string
	Width       int
	Height      int
	Fullscreen  bool
	Windowed    bool
	AssetsRoot  string
	CaptureSize int
	Timeout     *time.Duration
	SaveConfig  bool
}

var cli Overrides

func init() {
	flag.StringVar(&cli.ConfigPath, "config", "", "Path to config file")
	flag.BoolVar(&cli.Debug, "debug", false, "Enable debug logging")
	flag.StringVar(&cli.Variant, "variant", "", "Environment variant: cubemap, latlong or dynamic")
	flag.IntVar(&cli.Width, "width", 0, "Window width")
	flag.IntVar(&cli.Height, "height", 0, "Window height")
	flag.BoolVar(&cli.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	flag.BoolVar(&cli.Windowed, "windowed", false, "Run in windowed mode")
	flag.StringVar(&cli.AssetsRoot, "assets", "", "Directory holding the environment images")
	flag.IntVar(&cli.CaptureSize, "capture-size", 0, "Face size of the dynamic capture cube")
	flag.BoolVar(&cli.SaveConfig, "save-config", false, "Write the effective config to the user config directory and exit")
	flag.Func("load-timeout", "Asset load timeout (0 waits forever)", func(s string) error {
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		cli.Timeout = &d
		return nil
	})
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// CLI returns the parsed command-line overrides.
func CLI() Overrides {
	return cli
}

// apply writes the overrides into cfg.
func (o Overrides) apply(cfg *Config) {
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.Variant != "" {
		cfg.Scene.Variant = o.Variant
	}
	if o.Windowed {
		cfg.Window.Fullscreen = false
	}
	if o.Fullscreen {
		cfg.Window.Fullscreen = true
	}
	if o.Width > 0 {
		cfg.Window.Width = o.Width
	}
	if o.Height > 0 {
		cfg.Window.Height = o.Height
	}
	if o.AssetsRoot != "" {
		cfg.Assets.Root = o.AssetsRoot
	}
	if o.CaptureSize > 0 {
		cfg.Scene.CaptureSize = o.CaptureSize
	}
	if o.Timeout != nil {
		cfg.Assets.Timeout = *o.Timeout
	}
}
