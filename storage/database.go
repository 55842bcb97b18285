// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/countervm/pebble"
	"github.com/ava-labs/countervm/utils"
)

// New opens the pebble database stored under [dataDir]/[namespace]. The
// returned gatherer exposes the database metrics.
func New(cfg pebble.Config, dataDir string, namespace string) (*pebble.Database, prometheus.Gatherer, error) {
	path, err := utils.InitSubDirectory(dataDir, namespace)
	if err != nil {
		return nil, nil, err
	}

	db, registry, err := pebble.New(path, cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, registry, nil
}
