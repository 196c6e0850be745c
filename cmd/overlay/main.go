package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"text/tabwriter"

	"github.com/1broseidon/overlay/internal/config"
	"github.com/1broseidon/overlay/internal/logging"
	"github.com/1broseidon/overlay/internal/overlay"
	"github.com/1broseidon/overlay/internal/platform"
	"github.com/1broseidon/overlay/internal/surface"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitUsage   = 2
	exitConfig  = 3
	exitDecode  = 4
)

const controlTitle = "Overlay Control"

func init() {
	// Windows are owned by the thread that created them and only that
	// thread receives their messages.
	runtime.LockOSThread()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("overlay: ")

	args := os.Args[1:]
	if len(args) == 0 {
		os.Exit(runShow(nil))
	}

	switch args[0] {
	case "run":
		os.Exit(runShow(args[1:]))
	case "monitors":
		os.Exit(runMonitors(args[1:]))
	case "config":
		os.Exit(runConfig(args[1:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(exitOK)
	default:
		if len(args[0]) > 0 && args[0][0] == '-' {
			os.Exit(runShow(args))
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		printMainUsage(os.Stderr)
		os.Exit(exitUsage)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: overlay [command] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Show the overlay image on every monitor (default)")
	fmt.Fprintln(w, "  monitors            List monitors and where the image would be placed")
	fmt.Fprintln(w, "  config print        Print the effective configuration")
	fmt.Fprintln(w, "  config validate     Validate the configuration file")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -config PATH        Config file (default: overlay.yaml next to the executable)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "The image is read from overlay.png next to the executable unless the")
	fmt.Fprintln(w, "config file names another. Press Ctrl-C, or close the control window when")
	fmt.Fprintln(w, "control_window is set, to remove the overlays.")
}

func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: overlay.yaml next to the executable)")
	return fs, path
}

func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK, false
		}
		return exitUsage, false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", fs.Name())
		return exitUsage, false
	}
	return 0, true
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

func runShow(args []string) int {
	fs, path := newFlagSet("run")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: overlay run [-config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the overlay image centred on every monitor until interrupted.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	res, err := loadConfig(*path)
	if err != nil {
		log.Print(err)
		return exitConfig
	}
	cfg := res.Config

	logFile, err := res.LogFilePath()
	if err != nil {
		log.Printf("log file: %v", err)
		return exitConfig
	}
	logger, closer, err := logging.New(logging.Options{
		Level:     cfg.LogLevel,
		File:      logFile,
		MaxSizeMB: cfg.LogMaxSizeMB,
		MaxFiles:  cfg.LogMaxFiles,
	})
	if err != nil {
		log.Printf("failed to open log file: %v", err)
		return exitConfig
	}
	defer closer.Close()
	slog.SetDefault(logger)

	if res.File != "" {
		logger.Debug("configuration loaded", "file", res.File)
	}

	imagePath, err := res.RequireImage()
	if err != nil {
		logger.Error("overlay image missing", "err", err)
		return exitCode(err)
	}
	buf, err := surface.Load(imagePath)
	if err != nil {
		logger.Error("failed to load overlay image", "path", imagePath, "err", err)
		return exitCode(err)
	}
	logger.Info("image loaded", "path", imagePath, "width", buf.Width, "height", buf.Height)

	backend, err := platform.New(platform.Options{
		ClassName: cfg.ClassName,
		Display:   cfg.Display,
	})
	if err != nil {
		logger.Error("failed to open display", "err", err)
		return exitRuntime
	}
	defer backend.Close()

	handler := overlay.NewEventHandler(backend.Quit)
	ctrl := overlay.NewController(backend, overlay.NewFactory(backend, handler), logger)
	if cfg.ControlWindow {
		ctrl.ShowControl(controlTitle)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case sig := <-sigs:
			logger.Info("closing overlays", "signal", sig.String())
			ctrl.CloseAll()
		case <-done:
		}
	}()

	if err := ctrl.Serve(buf); err != nil {
		logger.Error("overlay failed", "err", err)
		return exitCode(err)
	}
	logger.Info("overlays closed")
	return exitOK
}

func runMonitors(args []string) int {
	fs, path := newFlagSet("monitors")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: overlay monitors [-config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List monitors in enumeration order with the overlay origin on each.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	res, err := loadConfig(*path)
	if err != nil {
		log.Print(err)
		return exitConfig
	}

	// The image is optional here; without it only the monitors are listed.
	var buf *surface.Buffer
	if imagePath, err := res.RequireImage(); err == nil {
		if b, err := surface.Load(imagePath); err == nil {
			buf = b
		} else {
			log.Print(err)
		}
	}

	backend, err := platform.New(platform.Options{
		ClassName: res.Config.ClassName,
		Display:   res.Config.Display,
	})
	if err != nil {
		log.Printf("failed to open display: %v", err)
		return exitRuntime
	}
	defer backend.Close()

	displays, err := backend.Displays()
	if err != nil {
		log.Print(&overlay.EnumerationError{Err: err})
		return exitRuntime
	}
	printDisplays(os.Stdout, displays, buf)
	return exitOK
}

func printDisplays(w io.Writer, displays []platform.Display, buf *surface.Buffer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if buf != nil {
		fmt.Fprintf(tw, "INDEX\tNAME\tBOUNDS\tSIZE\tPRIMARY\tORIGIN (%dx%d)\n", buf.Width, buf.Height)
	} else {
		fmt.Fprintln(tw, "INDEX\tNAME\tBOUNDS\tSIZE\tPRIMARY")
	}
	for _, d := range displays {
		primary := ""
		if d.Primary {
			primary = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%dx%d\t%s", d.Index, d.Label(), d.Bounds, d.Bounds.Width(), d.Bounds.Height(), primary)
		if buf != nil {
			p := overlay.Placement(d.Bounds, buf.Width, buf.Height)
			fmt.Fprintf(tw, "\t(%d,%d)", p.X, p.Y)
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  overlay config print [-config PATH]")
		fmt.Fprintln(os.Stderr, "  overlay config validate [-config PATH]")
		return exitUsage
	}

	switch args[0] {
	case "print":
		fs, path := newFlagSet("print")
		if code, ok := parseFlags(fs, args[1:]); !ok {
			return code
		}
		res, err := loadConfig(*path)
		if err != nil {
			log.Print(err)
			return exitConfig
		}
		data, err := res.Config.Marshal()
		if err != nil {
			log.Print(err)
			return exitRuntime
		}
		if res.File != "" {
			fmt.Printf("# file: %s\n", res.File)
		} else {
			fmt.Println("# defaults (no config file)")
		}
		if imagePath, err := res.ImagePath(); err == nil {
			fmt.Printf("# resolved_image: %s\n", imagePath)
		}
		fmt.Print(string(data))
		return exitOK

	case "validate":
		fs, path := newFlagSet("validate")
		if code, ok := parseFlags(fs, args[1:]); !ok {
			return code
		}
		res, err := loadConfig(*path)
		if err != nil {
			log.Print(err)
			return exitConfig
		}
		if _, err := res.RequireImage(); err != nil {
			log.Print(err)
			return exitConfig
		}
		fmt.Println("config: ok")
		return exitOK

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return exitUsage
	}
}

// exitCode maps a startup or runtime failure to the process exit status.
func exitCode(err error) int {
	var verr *config.ValidationError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, config.ErrImageMissing), errors.Is(err, surface.ErrNotFound), errors.As(err, &verr):
		return exitConfig
	case errors.Is(err, surface.ErrDecode):
		return exitDecode
	default:
		return exitRuntime
	}
}
