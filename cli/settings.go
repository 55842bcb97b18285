// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

const (
	fsModeWrite = 0o600
	fsModeDir   = 0o700

	DefaultURI = "http://127.0.0.1:9650"
)

// Settings are persisted between invocations of the CLI.
type Settings struct {
	URI     string `yaml:"uri"`
	KeyPath string `yaml:"key"`
}

// LoadSettings reads the settings stored at [path]. A missing file yields the
// defaults.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{URI: DefaultURI}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) Save(path string) error {
	b, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), fsModeDir); err != nil {
		return err
	}
	return os.WriteFile(path, b, fsModeWrite)
}
