package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gmllt/resboard/internal/store"
)

const (
	backendMemory = "memory"
	backendS3     = "s3"

	defaultListen = ":8080"
)

type Config struct {
	Listen  string         `yaml:"listen"`
	Storage string         `yaml:"storage"`
	S3      store.S3Config `yaml:"s3"`
}

// loadConfig reads the YAML config at path. A missing file yields the
// defaults: in-memory storage on :8080.
func loadConfig(path string) (*Config, error) {
	cfg := Config{Listen: defaultListen, Storage: backendMemory}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	switch c.Storage {
	case "":
		c.Storage = backendMemory
	case backendMemory:
	case backendS3:
		if c.S3.Bucket == "" {
			return errors.New("s3 storage requires s3.bucket")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}
	return nil
}
