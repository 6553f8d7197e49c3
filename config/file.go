package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape written by `spap init`. Only the settings
// gathered interactively are included; everything else keeps its default.
type File struct {
	ContentsLocation string       `yaml:"contents_location"`
	Rewrite404       string       `yaml:"rewrite404,omitempty"`
	Server           *FileServer  `yaml:"server,omitempty"`
	Storage          *FileStorage `yaml:"storage,omitempty"`
	AWS              *FileAWS     `yaml:"aws,omitempty"`
	Metrics          *FileMetrics `yaml:"metrics,omitempty"`
	Log              *FileLog     `yaml:"log,omitempty"`
}

type FileServer struct {
	Port     int    `yaml:"port,omitempty"`
	Resource string `yaml:"resource,omitempty"`
}

type FileStorage struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path,omitempty"`
}

type FileAWS struct {
	Region       string `yaml:"region,omitempty"`
	Endpoint     string `yaml:"endpoint,omitempty"`
	UsePathStyle bool   `yaml:"use_path_style,omitempty"`
}

type FileMetrics struct {
	Enabled bool `yaml:"enabled"`
}

type FileLog struct {
	Level string `yaml:"level"`
}

// Save writes the file as YAML, creating the parent directory if needed.
func (f *File) Save(path string) error {
	cleanPath := filepath.Clean(path)

	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(cleanPath, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}
