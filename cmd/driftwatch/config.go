// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the serve-mode configuration file schema.
//
// Example config.yaml:
//
//	server:
//	  addr: ":12320"
//	storage:
//	  bucket: my-docs-bucket
//	  credentials_file: /etc/driftwatch/sa.json
//	  concurrency: 4
//	store:
//	  path: /var/lib/driftwatch
//	logging:
//	  level: info
//	  dir: /var/log/driftwatch
//	  json: true
type Config struct {
	Server struct {
		// Addr is the HTTP listen address. Default: ":12320"
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Storage struct {
		// Bucket is the GCS bucket holding generated documentation.
		Bucket string `yaml:"bucket"`

		// CredentialsFile is an optional service account key path.
		CredentialsFile string `yaml:"credentials_file"`

		// Concurrency bounds parallel doc fetches. Default: 4
		Concurrency int `yaml:"concurrency"`

		// ReadsPerSecond rate-limits bucket reads. Default: 50
		ReadsPerSecond float64 `yaml:"reads_per_second"`
	} `yaml:"storage"`

	Store struct {
		// Path is the report store directory. Default: "./driftwatch-data"
		Path string `yaml:"path"`
	} `yaml:"store"`

	Logging struct {
		// Level is one of debug, info, warn, error. Default: info
		Level string `yaml:"level"`

		// Dir enables file logging when set.
		Dir string `yaml:"dir"`

		// JSON switches stderr logs to JSON.
		JSON bool `yaml:"json"`
	} `yaml:"logging"`
}

// loadConfig reads and applies defaults to a serve config file.
func loadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":12320"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "./driftwatch-data"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	return &cfg, nil
}
