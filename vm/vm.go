// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/set"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/emap"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/trace"
	"github.com/ava-labs/countervm/tstate"
	"github.com/ava-labs/countervm/utils"
)

// VM hosts the counter program. Submitted transactions are verified and then
// executed one at a time, each against its own state view, and their changes
// are written to [db] in a single batch.
type VM struct {
	config  Config
	log     logging.Logger
	tracer  trace.Tracer
	metrics *Metrics
	clock   *mockable.Clock

	db    DB
	state state.Immutable

	genesis      *genesis.Genesis
	genesisBytes []byte
	chainID      ids.ID
	rules        *genesis.Rules
	parser       *Parser
	processor    *chain.Processor
	authEngines  map[uint8]chain.AuthEngine

	// l serializes execution
	l         sync.Mutex
	seen      *emap.EMap[*chain.Transaction]
	listeners []Listener

	resultsL      sync.RWMutex
	recent        utils.BoundedBuffer[ids.ID]
	recentResults map[ids.ID]*TxStatus

	executed atomic.Uint64
	closed   atomic.Bool
}

// TxStatus is the outcome of a recently executed transaction.
type TxStatus struct {
	Timestamp int64         `json:"timestamp"`
	Result    *chain.Result `json:"result"`
}

// New returns a VM backed by [db]. If [db] is empty, the allocations of
// [genesisBytes] are applied to it.
func New(
	ctx context.Context,
	log logging.Logger,
	tracer trace.Tracer,
	db DB,
	genesisBytes []byte,
	config Config,
) (*VM, prometheus.Gatherer, error) {
	g, err := genesis.New(genesisBytes)
	if err != nil {
		return nil, nil, err
	}
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	if config.AuthVerificationCores < 1 {
		config.AuthVerificationCores = 1
	}

	chainID := genesis.ChainID(genesisBytes)
	rules := g.Rules(chainID)
	vm := &VM{
		config:        config,
		log:           log,
		tracer:        tracer,
		metrics:       metrics,
		clock:         &mockable.Clock{},
		db:            db,
		state:         state.NewDatabaseReader(db),
		genesis:       g,
		genesisBytes:  genesisBytes,
		chainID:       chainID,
		rules:         rules,
		parser:        NewParser(rules),
		processor:     chain.NewProcessor(tracer, storage.AccountValidator{}),
		authEngines:   auth.Engines(),
		seen:          emap.NewEMap[*chain.Transaction](),
		recentResults: make(map[ids.ID]*TxStatus),
	}
	vm.recent, err = utils.NewBoundedBuffer(config.RecentResultsSize, vm.evictResult)
	if err != nil {
		return nil, nil, err
	}
	if err := vm.initializeState(ctx); err != nil {
		return nil, nil, err
	}
	vm.log.Info("initialized vm",
		zap.Stringer("chainID", chainID),
		zap.Uint32("networkID", g.NetworkID),
		zap.Int64("validityWindow", g.ValidityWindow),
	)
	return vm, registry, nil
}

func (vm *VM) initializeState(ctx context.Context) error {
	ctx, span := vm.tracer.Start(ctx, "VM.initializeState")
	defer span.End()

	stored, ok, err := storage.GetGenesis(vm.db)
	if err != nil {
		return err
	}
	if ok {
		if stored != vm.chainID {
			return fmt.Errorf("%w: stored=%s expected=%s", ErrGenesisMismatch, stored, vm.chainID)
		}
		vm.log.Info("genesis already applied", zap.Stringer("chainID", stored))
		return nil
	}

	stateKeys, err := vm.genesis.StateKeys()
	if err != nil {
		return err
	}
	ts := tstate.New(len(stateKeys))
	view := ts.NewView(stateKeys, map[string][]byte{})
	if err := vm.genesis.Load(ctx, vm.tracer, view); err != nil {
		return err
	}
	view.Commit()

	batch := vm.db.NewBatch()
	if err := ts.WriteChanges(batch); err != nil {
		return err
	}
	if err := storage.SetGenesis(batch, vm.chainID); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	vm.log.Info("applied genesis allocations",
		zap.Int("allocations", len(vm.genesis.CustomAllocation)),
	)
	return nil
}

func (vm *VM) ChainID() ids.ID {
	return vm.chainID
}

func (vm *VM) NetworkID() uint32 {
	return vm.genesis.NetworkID
}

func (vm *VM) Genesis() *genesis.Genesis {
	return vm.genesis
}

func (vm *VM) Rules() chain.Rules {
	return vm.rules
}

func (vm *VM) Parser() chain.Parser {
	return vm.parser
}

func (vm *VM) Tracer() trace.Tracer {
	return vm.tracer
}

func (vm *VM) Logger() logging.Logger {
	return vm.log
}

// Clock is used as the source of the current time when checking and
// executing transactions.
func (vm *VM) Clock() *mockable.Clock {
	return vm.clock
}

// ExecutedTxs returns the number of transactions executed since the VM
// started, including those that were reverted.
func (vm *VM) ExecutedTxs() uint64 {
	return vm.executed.Load()
}

// AddListener registers [l] to be notified of every executed transaction.
func (vm *VM) AddListener(l Listener) {
	vm.l.Lock()
	defer vm.l.Unlock()

	vm.listeners = append(vm.listeners, l)
}

// SubmitTx executes a single transaction. See [VM.Submit].
func (vm *VM) SubmitTx(ctx context.Context, tx *chain.Transaction) (*chain.Result, error) {
	results, errs := vm.Submit(ctx, []*chain.Transaction{tx})
	return results[0], errs[0]
}

// Submit verifies and executes [txs] in order.
//
// For every transaction, either the error is non-nil and the transaction was
// rejected without touching state, or the result is non-nil and the
// transaction was executed. An executed transaction may still have failed,
// in which case none of its changes were persisted.
func (vm *VM) Submit(ctx context.Context, txs []*chain.Transaction) ([]*chain.Result, []error) {
	ctx, span := vm.tracer.Start(ctx, "VM.Submit")
	defer span.End()

	results := make([]*chain.Result, len(txs))
	errs := make([]error, len(txs))
	if vm.closed.Load() {
		for i := range errs {
			errs[i] = ErrClosed
		}
		return results, errs
	}

	vm.l.Lock()
	defer vm.l.Unlock()

	vm.metrics.txsSubmitted.Add(float64(len(txs)))
	now := vm.clock.Time().UnixMilli()
	evicted := vm.seen.SetMin(now)
	vm.log.Debug("txs evicted from seen", zap.Int("len", len(evicted)))

	// Stateless checks
	verify := make([]*chain.Transaction, 0, len(txs))
	verifyIdx := make([]int, 0, len(txs))
	batchIDs := set.NewSet[ids.ID](len(txs))
	for i, tx := range txs {
		if err := vm.precheck(tx, now, batchIDs); err != nil {
			errs[i] = err
			continue
		}
		batchIDs.Add(tx.ID())
		verify = append(verify, tx)
		verifyIdx = append(verifyIdx, i)
	}

	for j, err := range vm.verifyAuth(ctx, verify) {
		if err != nil {
			errs[verifyIdx[j]] = err
		}
	}

	for i, tx := range txs {
		if errs[i] != nil {
			vm.metrics.txsRejected.Inc()
			vm.log.Debug("rejected tx",
				zap.Stringer("txID", tx.ID()),
				zap.Error(errs[i]),
			)
			continue
		}
		results[i], errs[i] = vm.execute(ctx, tx, now)
		if errs[i] != nil {
			vm.metrics.txsRejected.Inc()
		}
	}
	vm.metrics.seenTxs.Set(float64(vm.seen.Len()))
	return results, errs
}

func (vm *VM) precheck(tx *chain.Transaction, now int64, batchIDs set.Set[ids.ID]) error {
	if batchIDs.Contains(tx.ID()) || vm.seen.Any([]*chain.Transaction{tx}) {
		return fmt.Errorf("%w: %s", chain.ErrDuplicateTx, tx.ID())
	}
	return tx.PreExecute(vm.rules, now)
}

// verifyAuth verifies [txs] in batches. Because a failed batch does not
// identify the offending transaction, the auth of each transaction is then
// verified on its own.
func (vm *VM) verifyAuth(ctx context.Context, txs []*chain.Transaction) []error {
	errs := make([]error, len(txs))
	if len(txs) == 0 {
		return errs
	}
	start := time.Now()
	defer func() {
		vm.metrics.verifyAuth.Observe(float64(time.Since(start)))
	}()

	err := chain.VerifyAuth(ctx, vm.authEngines, txs, vm.config.AuthVerificationCores)
	if err == nil {
		return errs
	}
	vm.metrics.authBatchFailures.Inc()
	vm.log.Debug("auth batch verification failed", zap.Int("txs", len(txs)), zap.Error(err))
	for i, tx := range txs {
		msg, err := tx.Digest()
		if err != nil {
			errs[i] = err
			continue
		}
		if err := tx.Auth.Verify(ctx, msg); err != nil {
			errs[i] = fmt.Errorf("%w: %w", chain.ErrAuthFailed, err)
		}
	}
	return errs
}

// Assumes [vm.l] is held
func (vm *VM) execute(ctx context.Context, tx *chain.Transaction, now int64) (*chain.Result, error) {
	start := time.Now()
	ts := tstate.New(len(tx.Actions) * 2)
	result, err := vm.processor.Execute(ctx, vm.rules, vm.state, ts, tx, now)
	if err != nil {
		return nil, err
	}
	vm.metrics.txExecute.Observe(float64(time.Since(start)))

	commitStart := time.Now()
	batch := vm.db.NewBatch()
	if err := ts.WriteChanges(batch); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		return nil, err
	}
	vm.metrics.txCommit.Observe(float64(time.Since(commitStart)))
	vm.metrics.stateChanges.Add(float64(ts.PendingChanges()))
	vm.metrics.stateOperations.Add(float64(ts.OpIndex()))

	vm.seen.Add([]*chain.Transaction{tx})
	vm.executed.Inc()
	if result.Success {
		vm.metrics.txsSucceeded.Inc()
	} else {
		vm.metrics.txsFailed.Inc()
	}
	vm.recordResult(tx.ID(), now, result)
	for _, l := range vm.listeners {
		l.Executed(ctx, tx, result, now)
	}
	vm.log.Debug("executed tx",
		zap.Stringer("txID", tx.ID()),
		zap.Bool("success", result.Success),
		zap.Int("actions", len(tx.Actions)),
	)
	return result, nil
}

func (vm *VM) recordResult(txID ids.ID, timestamp int64, result *chain.Result) {
	vm.resultsL.Lock()
	defer vm.resultsL.Unlock()

	vm.recentResults[txID] = &TxStatus{Timestamp: timestamp, Result: result}
	vm.recent.Insert(txID)
}

// Assumes [vm.resultsL] is held
func (vm *VM) evictResult(txID ids.ID) {
	delete(vm.recentResults, txID)
}

// GetTxStatus returns the outcome of [txID] if it is one of the most recently
// executed transactions.
func (vm *VM) GetTxStatus(txID ids.ID) (*TxStatus, bool) {
	vm.resultsL.RLock()
	defer vm.resultsL.RUnlock()

	status, ok := vm.recentResults[txID]
	return status, ok
}

func (vm *VM) GetBalance(ctx context.Context, addr codec.Address) (uint64, error) {
	return storage.GetBalance(ctx, vm.state, addr)
}

func (vm *VM) GetAccount(ctx context.Context, addr codec.Address) (*storage.Account, bool, error) {
	return storage.GetAccount(ctx, vm.state, addr)
}

// GetCounter returns the count stored at [addr] and whether a counter record
// exists there.
func (vm *VM) GetCounter(ctx context.Context, addr codec.Address) (uint8, bool, error) {
	acct, exists, err := storage.GetAccount(ctx, vm.state, addr)
	if err != nil || !exists {
		return 0, false, err
	}
	counter, err := storage.DecodeCounter(acct.Data)
	if err != nil {
		return 0, false, err
	}
	return counter.Count, true, nil
}

// MinimumBalance returns the deposit an account of [space] bytes requires.
func (vm *VM) MinimumBalance(space int) (uint64, error) {
	return storage.RentFromRules(vm.rules).MinimumBalance(space)
}

// Close rejects any further submissions. It does not close [db].
func (vm *VM) Close() error {
	if !vm.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	vm.log.Info("vm closed", zap.Uint64("executed", vm.executed.Load()))
	return nil
}
