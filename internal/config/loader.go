package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// SourceEmbedded and SourceBuiltin name the fallbacks used when no file is found.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// Load loads the game configuration and reports where it came from.
// Search order: customPath -> ~/.flapper/configs/flappy.{yaml,toml} ->
// ./configs/flappy.{yaml,toml} -> embedded default.
//
// Files are decoded on top of Default(), so a file only needs the keys it
// overrides. A custom path that cannot be read or parsed is an error; the
// implicit locations are skipped silently when absent.
func Load(customPath string) (FlappyConfig, string, error) {
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			return cfg, customPath, err
		}
		return cfg, customPath, nil
	}

	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := LoadFile(path)
		if err != nil {
			return cfg, path, err
		}
		return cfg, path, nil
	}

	cfg := Default()
	if err := Decode(defaultFlappyYAML, FormatYAML, &cfg); err != nil {
		return Default(), SourceBuiltin, fmt.Errorf("config: embedded default is broken: %w", err)
	}
	return cfg, SourceEmbedded, nil
}

// LoadFile decodes a single YAML or TOML file, chosen by extension.
func LoadFile(path string) (FlappyConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := Decode(data, formatOf(path), &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Decode parses data in the given format over cfg.
func Decode(data []byte, format Format, cfg *FlappyConfig) error {
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
		return nil
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
}

// Encode renders cfg in the given format.
func Encode(cfg FlappyConfig, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("config: encode toml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("config: encode yaml: %w", err)
		}
		return out, nil
	}
}

func formatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".flapper", "configs")
		paths = append(paths,
			filepath.Join(dir, "flappy.yaml"),
			filepath.Join(dir, "flappy.toml"),
		)
	}
	return append(paths,
		filepath.Join("configs", "flappy.yaml"),
		filepath.Join("configs", "flappy.toml"),
	)
}
