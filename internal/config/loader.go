package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/1broseidon/overlay/internal/runtimepath"
	"gopkg.in/yaml.v3"
)

// LoadResult is a loaded config plus where it came from.
type LoadResult struct {
	Config *Config
	// File is the config file that was read, empty when defaults were used.
	File string
	// BaseDir anchors relative paths in the config.
	BaseDir string
}

// DefaultConfigPath returns overlay.yaml next to the executable.
func DefaultConfigPath() (string, error) {
	return runtimepath.InExecutableDir(DefaultConfigName)
}

// Load reads the config from the default location. A missing file yields
// defaults anchored at the executable directory.
func Load() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the config at path. A missing file yields defaults
// anchored at the file's directory.
func LoadFromPath(path string) (*LoadResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	res := &LoadResult{
		Config:  DefaultConfig(),
		BaseDir: filepath.Dir(abs),
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return res, nil
		}
		return nil, fmt.Errorf("%s: failed to read: %w", abs, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: failed to parse yaml: %w", abs, err)
	}
	if err := decodeStrictYAML(data, res.Config); err != nil {
		return nil, fmt.Errorf("%s: %w", abs, err)
	}
	res.File = abs

	if err := res.Config.Validate(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.File = abs
			verr.Line = keyLine(&doc, verr.Path)
		}
		return nil, err
	}
	return res, nil
}

// ImagePath returns the absolute overlay image path.
func (r *LoadResult) ImagePath() (string, error) {
	return runtimepath.Resolve(r.BaseDir, r.Config.Image)
}

// RequireImage returns the image path, or an error wrapping ErrImageMissing
// when it does not name an existing regular file.
func (r *LoadResult) RequireImage() (string, error) {
	path, err := r.ImagePath()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageMissing, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrImageMissing, path)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a regular file", ErrImageMissing, path)
	}
	return path, nil
}

// LogFilePath returns the absolute log file path, or "" when file logging
// is disabled.
func (r *LoadResult) LogFilePath() (string, error) {
	if r.Config.LogFile == "" {
		return "", nil
	}
	return runtimepath.Resolve(r.BaseDir, r.Config.LogFile)
}

// Marshal renders the effective config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

// keyLine returns the line of a top-level key in doc, or 0.
func keyLine(doc *yaml.Node, key string) int {
	if doc == nil || len(doc.Content) == 0 {
		return 0
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return 0
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == key {
			return root.Content[i].Line
		}
	}
	return 0
}
