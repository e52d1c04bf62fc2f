// scene2css exports a 3D scene file as an HTML document animated with
// CSS transforms and keyframes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/scene2css/internal/config"
	"github.com/Faultbox/scene2css/internal/export"
	"github.com/Faultbox/scene2css/internal/logger"
	"github.com/Faultbox/scene2css/internal/scenefile"
)

var flagSaveConfig = flag.String("save-config", "", "Write the effective config to this file and exit")

func main() {
	flag.Usage = printUsage
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if *flagSaveConfig != "" {
		if err := cfg.SaveTo(*flagSaveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", *flagSaveConfig)
		return
	}

	if flag.NArg() != 1 {
		printUsage()
		os.Exit(1)
	}
	scenePath := flag.Arg(0)

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	out, err := exportScene(scenePath, cfg.Export)
	if err != nil {
		logger.Error("export failed", zap.String("scene", scenePath), zap.Error(err))
		if !cfg.Watch.Enabled {
			os.Exit(1)
		}
	} else {
		fmt.Println(out)
	}

	if !cfg.Watch.Enabled {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := &watcher{path: scenePath, debounce: cfg.Watch.Debounce, export: func() {
		if out, err := exportScene(scenePath, cfg.Export); err != nil {
			logger.Error("export failed", zap.String("scene", scenePath), zap.Error(err))
		} else {
			fmt.Println(out)
		}
	}}
	if err := w.run(ctx); err != nil {
		logger.Error("watch failed", zap.Error(err))
		os.Exit(1)
	}
}

// exportScene loads a scene file and writes its document. Every call
// starts from a fresh scene, so tracks never carry samples over.
func exportScene(path string, cfg config.ExportConfig) (string, error) {
	src, err := scenefile.Load(path)
	if err != nil {
		return "", err
	}
	return export.Run(src, cfg)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `scene2css - export a 3D scene as HTML/CSS

Usage:
  scene2css [options] <scene.yaml|scene.toml>

Options:
  -config <file>       Config file (default: ./scene2css.yaml, then the user config dir)
  -o <file>            Output file (default: <scene dir>/<scene name>.html)
  -3d                  Export Z transforms, perspective and preserve-3d
  -loop=false          Play animations once
  -bake=false          Emit authored keys with their timing instead of every frame
  -switch-axis         Swap the Y and Z axes
  -collapse            World-space transforms with a flat DOM
  -fps <n>             Override the scene frame rate
  -scale <n>           Pixels per scene unit (default 10)
  -watch               Re-export whenever the scene file changes
  -save-config <file>  Write the effective config and exit
  -debug               Enable debug logging
  -log-file <file>     Also write logs to a rotating file

Examples:
  scene2css robot.yaml
  scene2css -3d -bake=false -o /tmp/robot.html robot.yaml
  scene2css -collapse -watch ~/scenes/arm.toml`)
}
