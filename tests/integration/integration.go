// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package integration

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/tests/workload"
	"github.com/ava-labs/countervm/vm"

	ginkgo "github.com/onsi/ginkgo/v2"
)

const (
	rentDeposit    uint64 = 953_520
	workloadTxs           = 16
	streamTimeout         = 5 * time.Second
	subscribeDelay        = 10 * time.Millisecond
)

var (
	network *Network
	dataDir string
)

// Setup starts a single node for [config]. It must be called from a
// ginkgo.BeforeSuite.
func Setup(config workload.TestNetworkConfiguration) {
	require := require.New(ginkgo.GinkgoT())

	dir, err := os.MkdirTemp("", config.Name())
	require.NoError(err)
	dataDir = dir

	i, err := newInstance(logging.NoLog{}, filepath.Join(dataDir, "0"), config.GenesisBytes())
	require.NoError(err)
	network = &Network{
		config:    config,
		instances: []*instance{i},
	}
}

// Teardown stops the network and removes its data. It must be called from a
// ginkgo.AfterSuite.
func Teardown() {
	require := require.New(ginkgo.GinkgoT())
	require.NoError(network.Close())
	require.NoError(os.RemoveAll(dataDir))
}

func genesisOf(require *require.Assertions) (*genesis.Genesis, ids.ID) {
	genesisBytes := network.Configuration().GenesisBytes()
	g, err := genesis.New(genesisBytes)
	require.NoError(err)
	return g, genesis.ChainID(genesisBytes)
}

var _ = ginkgo.Describe("[APIs]", func() {
	require := require.New(ginkgo.GinkgoT())
	ctx := context.Background()

	ginkgo.It("Ping", func() {
		workload.Ping(ctx, require, network.URIs())
	})

	ginkgo.It("GetNetwork", func() {
		g, chainID := genesisOf(require)
		workload.GetNetwork(ctx, require, network.URIs(), g.NetworkID, chainID)
	})

	ginkgo.It("GetGenesis", func() {
		workload.GetGenesis(ctx, require, network.URIs(), len(network.Configuration().AuthFactories()))
	})

	ginkgo.It("GetRent", func() {
		workload.GetRent(ctx, require, network.URIs(), rentDeposit)
	})
})

var _ = ginkgo.Describe("[Counter Workload]", func() {
	require := require.New(ginkgo.GinkgoT())
	ctx := context.Background()

	ginkgo.It("executes and streams counter transactions", func() {
		uris := network.URIs()
		subscriber, err := workload.NewTestSubscriber(uris[0])
		require.NoError(err)
		defer subscriber.Close()
		require.Eventually(func() bool {
			return network.instances[0].pubsub.Connections().Len() > 0
		}, streamTimeout, subscribeDelay)

		generator := workload.NewCounterTxGenerator(network.Configuration().AuthFactories()[0])
		w := &workload.TxWorkload{Generator: generator}
		w.GenerateTxs(ctx, require, workloadTxs, uris)

		// the stream reports the next transaction as well
		tx, confirm, err := generator.GenerateTx(ctx, uris[0])
		require.NoError(err)
		results, errs := network.SubmitTxs(ctx, []*chain.Transaction{tx})
		require.NoError(errs[0])
		require.True(results[0].Success)
		confirm(ctx, require, uris[0])
		msg := subscriber.Expect(require, tx.ID(), true, streamTimeout)
		require.Equal(results[0].Outputs, msg.Outputs)
	})
})

var _ = ginkgo.Describe("[Counter Lifecycle]", func() {
	require := require.New(ginkgo.GinkgoT())
	ctx := context.Background()

	ginkgo.It("reverts failed transactions and refunds closed records", func() {
		factory := network.Configuration().AuthFactories()[1]
		client := rpc.NewJSONRPCClient(network.URIs()[0])
		payer, err := client.Address(ctx, factory.Address())
		require.NoError(err)
		startBalance, err := client.Balance(ctx, payer)
		require.NoError(err)

		record := codec.CreateAddress(consts.RecordAddressID, ids.GenerateTestID())
		recordAddr, err := client.Address(ctx, record)
		require.NoError(err)

		// underflow reverts the initialization in the same transaction
		tx, err := network.GenerateTx(ctx, []chain.Action{
			&actions.Initialize{Counter: record},
			&actions.Decrement{Counter: record},
		}, factory)
		require.NoError(err)
		results, errs := network.SubmitTxs(ctx, []*chain.Transaction{tx})
		require.NoError(errs[0])
		require.False(results[0].Success)
		require.Contains(string(results[0].Error), actions.ErrArithmeticUnderflow.Error())
		_, exists, err := client.Counter(ctx, recordAddr)
		require.NoError(err)
		require.False(exists)
		balance, err := client.Balance(ctx, payer)
		require.NoError(err)
		require.Equal(startBalance, balance)

		// resubmitting an executed transaction is rejected
		_, errs = network.SubmitTxs(ctx, []*chain.Transaction{tx})
		require.ErrorIs(errs[0], chain.ErrDuplicateTx)

		_, result, err := client.SubmitActions(ctx, []chain.Action{
			&actions.Initialize{Counter: record},
			&actions.Set{Counter: record, Value: 42},
		}, factory)
		require.NoError(err)
		require.True(result.Success)
		balance, err = client.Balance(ctx, payer)
		require.NoError(err)
		require.Equal(startBalance-rentDeposit, balance)

		_, result, err = client.SubmitActions(ctx, []chain.Action{
			&actions.Close{Counter: record},
		}, factory)
		require.NoError(err)
		require.True(result.Success)
		output, err := vm.OutputParser.UnmarshalBytes(result.Outputs[0])
		require.NoError(err)
		closeResult, ok := output.(*actions.CloseResult)
		require.True(ok)
		require.Equal(rentDeposit, closeResult.Refund)

		balance, err = client.Balance(ctx, payer)
		require.NoError(err)
		require.Equal(startBalance, balance)
		_, exists, err = client.Counter(ctx, recordAddr)
		require.NoError(err)
		require.False(exists)
	})
})

var _ = ginkgo.Describe("[Restart]", func() {
	require := require.New(ginkgo.GinkgoT())
	ctx := context.Background()

	ginkgo.It("keeps state across restarts", func() {
		factory := network.Configuration().AuthFactories()[2]
		client := rpc.NewJSONRPCClient(network.URIs()[0])
		record := codec.CreateAddress(consts.RecordAddressID, ids.GenerateTestID())
		_, result, err := client.SubmitActions(ctx, []chain.Action{
			&actions.Initialize{Counter: record},
			&actions.Set{Counter: record, Value: 7},
		}, factory)
		require.NoError(err)
		require.True(result.Success)

		require.NoError(network.instances[0].close())
		i, err := newInstance(logging.NoLog{}, filepath.Join(dataDir, "0"), network.Configuration().GenesisBytes())
		require.NoError(err)
		network.instances[0] = i

		client = rpc.NewJSONRPCClient(network.URIs()[0])
		recordAddr, err := client.Address(ctx, record)
		require.NoError(err)
		count, exists, err := client.Counter(ctx, recordAddr)
		require.NoError(err)
		require.True(exists)
		require.Equal(uint8(7), count)

		// the genesis allocations are not applied twice
		payer, err := client.Address(ctx, factory.Address())
		require.NoError(err)
		balance, err := client.Balance(ctx, payer)
		require.NoError(err)
		require.Equal(workload.InitialBalance-rentDeposit, balance)
	})
})
