// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	_ database.KeyValueReaderWriterDeleter = (*Database)(nil)
	_ database.Batch                       = (*batch)(nil)
)

type Config struct {
	CacheSize                   int64 `json:"cacheSize"`
	BytesPerSync                int   `json:"bytesPerSync"`
	WALBytesPerSync             int   `json:"walBytesPerSync"` // 0 means no background syncing
	MemTableStopWritesThreshold int   `json:"memTableStopWritesThreshold"`
	MaxOpenFiles                int   `json:"maxOpenFiles"`
	ConcurrentCompactions       int   `json:"concurrentCompactions"`
	Sync                        bool  `json:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   1024 * 1024 * 1024,
		BytesPerSync:                1024 * 1024,
		WALBytesPerSync:             1024 * 1024,
		MemTableStopWritesThreshold: 8,
		MaxOpenFiles:                4_096,
		ConcurrentCompactions:       runtime.NumCPU(),
		Sync:                        true,
	}
}

// Database is a pebble backed key-value store. It implements the subset of
// [database.Database] the VM uses.
type Database struct {
	db      *pebble.DB
	metrics *metrics

	writeOpts *pebble.WriteOptions

	closing   chan struct{}
	closed    sync.Once
	closeWait sync.WaitGroup
}

// New opens (or creates) a database at [file]. The returned registry holds the
// database metrics.
func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	// These default settings are based on https://github.com/ethereum/go-ethereum/blob/master/ethdb/pebble/pebble.go
	d := &Database{
		writeOpts: &pebble.WriteOptions{Sync: cfg.Sync},
		closing:   make(chan struct{}),
	}
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d.metrics = metrics

	cache := pebble.NewCache(cfg.CacheSize)
	defer cache.Unref()
	opts := &pebble.Options{
		Cache:                       cache,
		BytesPerSync:                cfg.BytesPerSync,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
		EventListener: &pebble.EventListener{
			CompactionBegin: d.onCompactionBegin,
			CompactionEnd:   d.onCompactionEnd,
			WriteStallBegin: d.onWriteStallBegin,
			WriteStallEnd:   d.onWriteStallEnd,
		},
	}
	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db

	d.closeWait.Add(1)
	go func() {
		defer d.closeWait.Done()
		d.collectMetrics()
	}()
	return d, registry, nil
}

func (db *Database) Close() error {
	var err error
	db.closed.Do(func() {
		close(db.closing)
		db.closeWait.Wait()
		err = db.db.Close()
	})
	return err
}

func (db *Database) HealthCheck(context.Context) (interface{}, error) {
	select {
	case <-db.closing:
		return nil, database.ErrClosed
	default:
		return nil, nil
	}
}

func (db *Database) Has(key []byte) (bool, error) {
	_, err := db.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (db *Database) Get(key []byte) ([]byte, error) {
	start := time.Now()
	data, closer, err := db.db.Get(key)
	db.metrics.getLatency.Observe(float64(time.Since(start)))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	value := make([]byte, len(data))
	copy(value, data)
	return value, closer.Close()
}

func (db *Database) Put(key []byte, value []byte) error {
	return db.db.Set(key, value, db.writeOpts)
}

func (db *Database) Delete(key []byte) error {
	return db.db.Delete(key, db.writeOpts)
}

func (db *Database) NewBatch() database.Batch {
	return &batch{db: db}
}

// batch buffers operations in memory and applies them atomically on Write.
type batch struct {
	database.BatchOps

	db *Database
}

func (b *batch) Write() error {
	pb := b.db.db.NewBatch()
	defer func() {
		_ = pb.Close()
	}()
	for _, op := range b.Ops {
		var err error
		if op.Delete {
			err = pb.Delete(op.Key, nil)
		} else {
			err = pb.Set(op.Key, op.Value, nil)
		}
		if err != nil {
			return err
		}
	}
	if err := pb.Commit(b.db.writeOpts); err != nil {
		return err
	}
	b.db.metrics.batchWrites.Inc()
	b.db.metrics.batchOps.Add(float64(len(b.Ops)))
	return nil
}

func (b *batch) Inner() database.Batch {
	return b
}
