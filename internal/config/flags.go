package config

import (
	"flag"
	"strconv"
)

// optBool is a boolean flag that remembers whether it was given.
type optBool struct {
	v *bool
}

func (o *optBool) String() string {
	if o == nil || o.v == nil {
		return ""
	}
	return strconv.FormatBool(*o.v)
}

func (o *optBool) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	o.v = &b
	return nil
}

func (o *optBool) IsBoolFlag() bool { return true }

func newOptBool(name, usage string) *optBool {
	o := &optBool{}
	flag.Var(o, name, usage)
	return o
}

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile    = flag.String("log-file", "", "Also write logs to this file")
	flagOutput     = flag.String("o", "", "Output HTML file (default: <scene dir>/<scene name>.html)")
	flagFPS        = flag.Float64("fps", 0, "Override the scene frame rate")
	flagScale      = flag.Float64("scale", 0, "Pixels per scene unit")
	flagLoop       = newOptBool("loop", "Loop animations (ANIM_LOOP)")
	flagBake       = newOptBool("bake", "Sample every frame with linear timing (ANIM_BAKE)")
	flag3D         = newOptBool("3d", "Export Z transforms and perspective (EXPORT_3D)")
	flagSwitchAxis = newOptBool("switch-axis", "Swap the Y and Z axes (SWITCH_AXIS)")
	flagCollapse   = newOptBool("collapse", "Use world-space transforms and a flat DOM (COLLAPSE_TRANSFORMS)")
	flagWatch      = newOptBool("watch", "Re-export whenever the scene file changes")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagOutput != "" {
		cfg.Export.Output = *flagOutput
	}
	if *flagFPS > 0 {
		fps := *flagFPS
		cfg.Export.FPS = &fps
	}
	if *flagScale > 0 {
		cfg.Export.Scale = *flagScale
	}

	toggles := []struct {
		flag *optBool
		dst  *bool
	}{
		{flagLoop, &cfg.Export.AnimLoop},
		{flagBake, &cfg.Export.AnimBake},
		{flag3D, &cfg.Export.Export3D},
		{flagSwitchAxis, &cfg.Export.SwitchAxis},
		{flagCollapse, &cfg.Export.CollapseTransforms},
		{flagWatch, &cfg.Watch.Enabled},
	}
	for _, t := range toggles {
		if t.flag.v != nil {
			*t.dst = *t.flag.v
		}
	}
}
