// Command trackgen renders track description files into images, a Gazebo
// model and ground truth, optionally watching them for changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gogpu/gg"

	"trackgen/internal/generator"
	"trackgen/internal/tui"
)

func main() {
	var (
		output    = flag.String("o", "output", "output directory")
		png       = flag.Bool("png", false, "also render <name>.png")
		gazebo    = flag.Bool("gazebo", false, "generate a Gazebo model")
		truth     = flag.Bool("ground-truth", false, "write ground_truth.xml")
		truthCSV  = flag.Bool("ground-truth-csv", false, "also write ground_truth.csv")
		geoJSON   = flag.Bool("geojson", false, "write <name>.geojson")
		verbose   = flag.Bool("verbose-svg", false, "write <name>_verbose.svg with annotated anchors")
		scale     = flag.Float64("scale", generator.DefaultScale, "raster resolution in pixels per meter")
		watch     = flag.Bool("watch", false, "regenerate whenever a track file changes")
		interval  = flag.Duration("interval", time.Second, "poll interval for -watch and -preview")
		preview   = flag.Bool("preview", false, "open the terminal preview instead of generating")
		debugLogs = flag.Bool("v", false, "debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] track.xml...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if *interval <= 0 {
		fmt.Fprintf(flag.CommandLine.Output(), "-interval must be positive, got %v\n", *interval)
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *debugLogs {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if *debugLogs {
		gg.SetLogger(log.With("component", "gg"))
	}

	if *preview {
		if err := runPreview(flag.Args(), *interval); err != nil {
			log.Error("preview", "err", err)
			os.Exit(1)
		}
		return
	}

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	opts := generator.Options{
		OutputDir:      *output,
		PNG:            *png,
		Gazebo:         *gazebo,
		GroundTruth:    *truth || *truthCSV,
		GroundTruthCSV: *truthCSV,
		GeoJSON:        *geoJSON,
		Verbose:        *verbose,
		PixelScale:     *scale,
		Logger:         log,
	}

	if !*watch {
		if _, err := generator.GenerateTracks(paths, opts); err != nil {
			log.Error("generate", "err", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	failed := false
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, p := range paths {
		wg.Add(1)
		go func() {
			defer wg.Done()
			onErr := func(err error) { log.Error("generate", "track", p, "err", err) }
			err := generator.Watch(ctx, p, *interval, func() error {
				_, err := generator.Generate(p, opts)
				return err
			}, onErr)
			if err != nil {
				onErr(err)
				mu.Lock()
				failed = true
				mu.Unlock()
			}
		}()
	}
	log.Info("watching", "tracks", len(paths), "interval", *interval)
	wg.Wait()
	if failed {
		os.Exit(1)
	}
}

func runPreview(args []string, interval time.Duration) error {
	tui.ReloadInterval = interval
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	var m tea.Model = tui.New(cwd)
	if len(args) > 0 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		m = tui.NewWithPath(filepath.Dir(abs), abs)
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
