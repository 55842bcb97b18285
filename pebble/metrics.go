// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace       = "pebble"
	metricsInterval = 10 * time.Second
)

type metrics struct {
	delayStart time.Time
	writeStall metric.Averager

	getLatency metric.Averager

	batchWrites prometheus.Counter
	batchOps    prometheus.Counter

	l0Compactions     prometheus.Counter
	otherCompactions  prometheus.Counter
	activeCompactions prometheus.Gauge

	tombstoneCount     prometheus.Gauge
	obsoleteTableSize  prometheus.Gauge
	obsoleteTableCount prometheus.Gauge
	zombieTableSize    prometheus.Gauge
	zombieTableCount   prometheus.Gauge
	obsoleteWALSize    prometheus.Gauge
	obsoleteWALCount   prometheus.Gauge
}

func newCounter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
}

func newGauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	writeStall, err := metric.NewAverager(
		"pebble_write_stall",
		"time spent waiting for disk write",
		r,
	)
	if err != nil {
		return nil, nil, err
	}
	getLatency, err := metric.NewAverager(
		"pebble_read_latency",
		"time spent waiting for db get",
		r,
	)
	if err != nil {
		return nil, nil, err
	}
	m := &metrics{
		writeStall: writeStall,
		getLatency: getLatency,

		batchWrites: newCounter("batch_writes", "number of batches committed"),
		batchOps:    newCounter("batch_ops", "number of puts and deletes committed in batches"),

		l0Compactions:     newCounter("l0_compactions", "number of l0 compactions"),
		otherCompactions:  newCounter("other_compactions", "number of l1+ compactions"),
		activeCompactions: newGauge("active_compactions", "number of active compactions"),

		tombstoneCount:     newGauge("tombstone_count", "approximate count of internal tombstones"),
		obsoleteTableSize:  newGauge("obsolete_table_size", "number of bytes present in tables no longer referenced by the db"),
		obsoleteTableCount: newGauge("obsolete_table_count", "number of table files no longer referenced by the db"),
		zombieTableSize:    newGauge("zombie_table_size", "number of bytes in unreferenced tables still held by iterators"),
		zombieTableCount:   newGauge("zombie_table_count", "number of unreferenced table files still held by iterators"),
		obsoleteWALSize:    newGauge("obsolete_wal_size", "number of bytes present in WAL no longer needed by the db"),
		obsoleteWALCount:   newGauge("obsolete_wal_count", "number of WAL files no longer needed by the db"),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.batchWrites),
		r.Register(m.batchOps),
		r.Register(m.l0Compactions),
		r.Register(m.otherCompactions),
		r.Register(m.activeCompactions),
		r.Register(m.tombstoneCount),
		r.Register(m.obsoleteTableSize),
		r.Register(m.obsoleteTableCount),
		r.Register(m.zombieTableSize),
		r.Register(m.zombieTableCount),
		r.Register(m.obsoleteWALSize),
		r.Register(m.obsoleteWALCount),
	)
	return r, m, errs.Err
}

func (db *Database) onCompactionBegin(info pebble.CompactionInfo) {
	db.metrics.activeCompactions.Inc()
	if len(info.Input) > 0 && info.Input[0].Level == 0 {
		db.metrics.l0Compactions.Inc()
	} else {
		db.metrics.otherCompactions.Inc()
	}
}

func (db *Database) onCompactionEnd(pebble.CompactionInfo) {
	db.metrics.activeCompactions.Dec()
}

func (db *Database) onWriteStallBegin(pebble.WriteStallBeginInfo) {
	db.metrics.delayStart = time.Now()
}

func (db *Database) onWriteStallEnd() {
	db.metrics.writeStall.Observe(float64(time.Since(db.metrics.delayStart)))
}

func (db *Database) collectMetrics() {
	t := time.NewTicker(metricsInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			m := db.db.Metrics()
			db.metrics.tombstoneCount.Set(float64(m.Keys.TombstoneCount))
			db.metrics.obsoleteTableSize.Set(float64(m.Table.ObsoleteSize))
			db.metrics.obsoleteTableCount.Set(float64(m.Table.ObsoleteCount))
			db.metrics.zombieTableSize.Set(float64(m.Table.ZombieSize))
			db.metrics.zombieTableCount.Set(float64(m.Table.ZombieCount))
			db.metrics.obsoleteWALSize.Set(float64(m.WAL.ObsoletePhysicalSize))
			db.metrics.obsoleteWALCount.Set(float64(m.WAL.ObsoleteFiles))
		case <-db.closing:
			return
		}
	}
}
