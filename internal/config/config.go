package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultImageName is the overlay image looked up next to the executable.
	DefaultImageName = "overlay.png"
	// DefaultConfigName is the optional config file next to the executable.
	DefaultConfigName = "overlay.yaml"
	// DefaultClassName is the window class (Win32) and WM_CLASS (X11) of overlays.
	DefaultClassName = "OverlayWindowClass"
)

// ErrImageMissing reports that the required overlay image does not exist.
// It is a configuration error: nothing can be shown without the image.
var ErrImageMissing = errors.New("overlay image not found")

// Config is the effective overlay configuration.
type Config struct {
	// Image is the overlay image path, relative to the config directory
	// unless absolute.
	Image string `yaml:"image"`

	LogLevel     string `yaml:"log_level"`
	LogFile      string `yaml:"log_file,omitempty"`
	LogMaxSizeMB int    `yaml:"log_max_size_mb"`
	LogMaxFiles  int    `yaml:"log_max_files"`

	// Display is the X11 display name; empty uses $DISPLAY. Ignored on Windows.
	Display string `yaml:"display,omitempty"`

	ClassName string `yaml:"class_name"`

	// ControlWindow shows a small window whose close button removes the
	// overlays. Windows only; useful when there is no console to Ctrl-C.
	ControlWindow bool `yaml:"control_window"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Image:        DefaultImageName,
		LogLevel:     "info",
		LogMaxSizeMB: 5,
		LogMaxFiles:  3,
		ClassName:    DefaultClassName,
	}
}

// ValidationError describes an invalid config value.
type ValidationError struct {
	Path string
	File string
	Line int
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %v", e.File, e.Line, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks the config for values the overlay cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Image) == "" {
		return &ValidationError{Path: "image", Err: fmt.Errorf("image is required")}
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	if c.LogMaxSizeMB < 0 {
		return &ValidationError{Path: "log_max_size_mb", Err: fmt.Errorf("log_max_size_mb must be >= 0")}
	}
	if c.LogMaxFiles < 0 {
		return &ValidationError{Path: "log_max_files", Err: fmt.Errorf("log_max_files must be >= 0")}
	}
	if strings.TrimSpace(c.ClassName) == "" {
		return &ValidationError{Path: "class_name", Err: fmt.Errorf("class_name must not be empty")}
	}
	return nil
}
