// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package store persists generated drift reports in an embedded BadgerDB
// database, keyed by report id, with a latest-report pointer per repo.
//
// BadgerDB gives low-latency local storage without an external database
// dependency, which suits a service whose reports are small JSON
// documents served back by id.
//
// License: BadgerDB is Apache 2.0 licensed (github.com/dgraph-io/badger).
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/AleutianAI/driftwatch/services/driftwatch/report"
)

// Store errors.
var (
	// ErrReportNotFound is returned when no report exists for the key.
	ErrReportNotFound = errors.New("report not found")
)

const (
	reportKeyPrefix = "report/"
	latestKeyPrefix = "latest/"
)

// Config holds configuration for the report store.
type Config struct {
	// Path is the directory for database files. Required unless InMemory.
	Path string

	// InMemory enables in-memory mode (no disk persistence). For tests.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Logger receives BadgerDB's internal logging. Nil disables it.
	Logger *slog.Logger
}

// DefaultConfig returns production defaults for the given path.
func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true}
}

// InMemoryConfig returns a configuration for tests: in-memory, async.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// Store is the report store.
//
// Thread Safety: Store is safe for concurrent use; BadgerDB handles
// transaction isolation internally.
type Store struct {
	db *badger.DB
}

// Open creates and opens the report store.
//
// Inputs:
//
//	cfg - Store configuration. Path is required unless InMemory is true.
//
// Outputs:
//
//	*Store - The opened store. Caller must Close() it.
//	error - Non-nil if the path is invalid or the database cannot open.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent report store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create report store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open report store: %w", err)
	}
	return &Store{db: db}, nil
}

// Put persists a report and updates the repo's latest pointer.
func (s *Store) Put(rep *report.DriftReport) error {
	if rep == nil || rep.ReportID == "" {
		return errors.New("report with a report id is required")
	}

	encoded, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode report %s: %w", rep.ReportID, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(reportKeyPrefix+rep.ReportID), encoded); err != nil {
			return err
		}
		if rep.Repo.Name != "" {
			return txn.Set([]byte(latestKeyPrefix+rep.Repo.Name), []byte(rep.ReportID))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store report %s: %w", rep.ReportID, err)
	}
	return nil
}

// Get returns the report with the given id, or ErrReportNotFound.
func (s *Store) Get(reportID string) (*report.DriftReport, error) {
	var rep report.DriftReport
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(reportKeyPrefix + reportID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rep)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load report %s: %w", reportID, err)
	}
	return &rep, nil
}

// Latest returns the most recently stored report for the repo, or
// ErrReportNotFound when the repo has none.
func (s *Store) Latest(repoName string) (*report.DriftReport, error) {
	var reportID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(latestKeyPrefix + repoName))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			reportID = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve latest report for %s: %w", repoName, err)
	}
	return s.Get(reportID)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
