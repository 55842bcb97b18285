// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	txsSubmitted      prometheus.Counter
	txsRejected       prometheus.Counter
	txsSucceeded      prometheus.Counter
	txsFailed         prometheus.Counter
	authBatchFailures prometheus.Counter
	stateChanges      prometheus.Counter
	stateOperations   prometheus.Counter
	seenTxs           prometheus.Gauge
	verifyAuth        metric.Averager
	txExecute         metric.Averager
	txCommit          metric.Averager
}

func newMetrics() (*prometheus.Registry, *Metrics, error) {
	r := prometheus.NewRegistry()

	verifyAuth, err := metric.NewAverager(
		"vm_verify_auth",
		"time spent verifying the auth of submitted transactions",
		r,
	)
	if err != nil {
		return nil, nil, err
	}
	txExecute, err := metric.NewAverager(
		"vm_tx_execute",
		"time spent executing transactions",
		r,
	)
	if err != nil {
		return nil, nil, err
	}
	txCommit, err := metric.NewAverager(
		"vm_tx_commit",
		"time spent writing transaction changes to disk",
		r,
	)
	if err != nil {
		return nil, nil, err
	}

	m := &Metrics{
		txsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "txs_submitted",
			Help:      "number of txs submitted to vm",
		}),
		txsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "txs_rejected",
			Help:      "number of txs rejected before execution",
		}),
		txsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "txs_succeeded",
			Help:      "number of txs executed successfully",
		}),
		txsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "txs_failed",
			Help:      "number of txs executed and reverted",
		}),
		authBatchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "auth_batch_failures",
			Help:      "number of auth batches that were verified again one tx at a time",
		}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "state_changes",
			Help:      "number of state changes",
		}),
		stateOperations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "state_operations",
			Help:      "number of state operations",
		}),
		seenTxs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vm",
			Name:      "seen_txs",
			Help:      "number of executed txs that have not expired",
		}),
		verifyAuth: verifyAuth,
		txExecute:  txExecute,
		txCommit:   txCommit,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.txsSubmitted),
		r.Register(m.txsRejected),
		r.Register(m.txsSucceeded),
		r.Register(m.txsFailed),
		r.Register(m.authBatchFailures),
		r.Register(m.stateChanges),
		r.Register(m.stateOperations),
		r.Register(m.seenTxs),
	)
	return r, m, errs.Err
}
