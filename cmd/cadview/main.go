// Command cadview opens a model file in an orbit-camera viewer.
//
//	cadview [flags] <INPUT>
//
// Mouse: left drag rotates, middle drag pans, right drag zooms.
// Keys: F re-focus, P print the camera state, R reset the view, Escape quit.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phanxgames/cadview"
	"github.com/spf13/cobra"
)

type options struct {
	config  string
	camera  string
	script  string
	title   string
	verbose bool
	hud     bool
}

func main() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "cadview [flags] <INPUT>",
		Short: "View a 3D model with an orbit camera",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(logOut, args[0], &opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.config, "config", "c", "", "TOML configuration file")
	f.StringVar(&opts.camera, "camera", "", "camera state string or @file to restore")
	f.StringVar(&opts.script, "script", "", "JSON test script to drive the viewer")
	f.StringVar(&opts.title, "title", "", "window title (default: model name)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level and enable debug checks")
	f.BoolVar(&opts.hud, "hud", false, "show the FPS and camera overlay")
	return cmd
}

func run(logOut io.Writer, input string, opts *options) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := cadview.NewLogger(logOut, level)
	cadview.SetLogger(logger)
	logger.Info("input file", "path", input)

	cfg, err := cadview.LoadConfig(opts.config)
	if err != nil {
		logger.Error(err.Error())
		return err
	}
	rc, err := cfg.RunConfig()
	if err != nil {
		logger.Error(err.Error())
		return err
	}
	if opts.title != "" {
		rc.Title = opts.title
	}
	if opts.verbose {
		rc.Debug = true
	}
	if opts.hud {
		rc.ShowHUD = true
	}
	if opts.camera != "" {
		if rc.CameraState, err = readArg(opts.camera); err != nil {
			logger.Error(err.Error())
			return err
		}
	}
	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			logger.Error(err.Error())
			return err
		}
		if rc.Script, err = cadview.LoadTestScript(data); err != nil {
			logger.Error(err.Error())
			return err
		}
	}

	model, err := cadview.LoadModel(input)
	if err != nil {
		logger.Error(err.Error())
		return err
	}
	if rc.Title == "" || rc.Title == cadview.DefaultConfig().Window.Title {
		rc.Title = fmt.Sprintf("cadview - %s", model.Name)
	}
	if err := cadview.Run(model, rc); err != nil {
		logger.Error("viewer failed", "err", err)
		return err
	}
	return nil
}

// readArg returns s, or the trimmed contents of the file it names when it
// starts with '@'.
func readArg(s string) (string, error) {
	name, ok := strings.CutPrefix(s, "@")
	if !ok {
		return s, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
