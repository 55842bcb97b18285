// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/trace"
	"github.com/ava-labs/countervm/vm"
)

var testRecord = codec.CreateAddress(consts.RecordAddressID, ids.ID{7})

func newMockVM(t *testing.T) *MockVM {
	ctrl := gomock.NewController(t)
	mvm := NewMockVM(ctrl)
	mvm.EXPECT().Genesis().Return(genesis.Default()).AnyTimes()
	mvm.EXPECT().Tracer().Return(trace.Noop).AnyTimes()
	mvm.EXPECT().Logger().Return(logging.NoLog{}).AnyTimes()
	return mvm
}

func TestServerCounter(t *testing.T) {
	require := require.New(t)

	mvm := newMockVM(t)
	mvm.EXPECT().GetCounter(gomock.Any(), testRecord).Return(uint8(42), true, nil)
	j := NewJSONRPCServer(mvm)

	req := httptest.NewRequest("POST", JSONRPCEndpoint, nil)
	reply := new(CounterReply)
	require.NoError(j.Counter(req, &AddressArgs{Address: codec.MustAddressBech32(consts.HRP, testRecord)}, reply))
	require.True(reply.Exists)
	require.Equal(uint8(42), reply.Count)

	// wrong prefix
	err := j.Counter(req, &AddressArgs{Address: codec.MustAddressBech32("other", testRecord)}, reply)
	require.ErrorIs(err, codec.ErrIncorrectHRP)
}

func TestServerAccount(t *testing.T) {
	require := require.New(t)

	mvm := newMockVM(t)
	gomock.InOrder(
		mvm.EXPECT().GetAccount(gomock.Any(), testRecord).Return(&storage.Account{
			Owner:    consts.ProgramID,
			Lamports: 953_520,
			Data:     make([]byte, storage.CounterSpace),
		}, true, nil),
		mvm.EXPECT().GetAccount(gomock.Any(), testRecord).Return(nil, false, nil),
	)
	j := NewJSONRPCServer(mvm)

	req := httptest.NewRequest("POST", JSONRPCEndpoint, nil)
	args := &AddressArgs{Address: codec.MustAddressBech32(consts.HRP, testRecord)}
	reply := new(AccountReply)
	require.NoError(j.Account(req, args, reply))
	require.True(reply.Exists)
	require.Equal(consts.ProgramID, reply.Owner)
	require.Equal(uint64(953_520), reply.Lamports)
	require.Equal(storage.CounterSpace, reply.Size)

	reply = new(AccountReply)
	require.NoError(j.Account(req, args, reply))
	require.False(reply.Exists)
}

func TestServerTx(t *testing.T) {
	require := require.New(t)

	txID := ids.GenerateTestID()
	mvm := newMockVM(t)
	mvm.EXPECT().GetTxStatus(txID).Return(&vm.TxStatus{
		Timestamp: 1000,
		Result:    &chain.Result{Success: true},
	}, true)
	mvm.EXPECT().GetTxStatus(gomock.Any()).Return(nil, false)
	j := NewJSONRPCServer(mvm)

	req := httptest.NewRequest("POST", JSONRPCEndpoint, nil)
	reply := new(TxReply)
	require.NoError(j.Tx(req, &TxArgs{TxID: txID}, reply))
	require.Equal(int64(1000), reply.Timestamp)
	require.True(reply.Result.Success)

	err := j.Tx(req, &TxArgs{TxID: ids.GenerateTestID()}, new(TxReply))
	require.ErrorIs(err, ErrTxNotFound)
}

func TestServerRent(t *testing.T) {
	require := require.New(t)

	errOverflow := errors.New("overflow")
	mvm := newMockVM(t)
	mvm.EXPECT().MinimumBalance(storage.CounterSpace).Return(uint64(953_520), nil)
	mvm.EXPECT().MinimumBalance(1<<40).Return(uint64(0), errOverflow)
	j := NewJSONRPCServer(mvm)

	req := httptest.NewRequest("POST", JSONRPCEndpoint, nil)
	reply := new(BalanceReply)
	require.NoError(j.Rent(req, &RentArgs{Size: storage.CounterSpace}, reply))
	require.Equal(uint64(953_520), reply.Amount)

	require.ErrorIs(j.Rent(req, &RentArgs{Size: -1}, reply), ErrInvalidSize)
	require.ErrorIs(j.Rent(req, &RentArgs{Size: 1 << 40}, reply), errOverflow)
}

func TestServerSubmitTxMalformed(t *testing.T) {
	require := require.New(t)

	mvm := newMockVM(t)
	mvm.EXPECT().Parser().Return(vm.NewParser(genesis.Default().Rules(ids.Empty))).AnyTimes()
	j := NewJSONRPCServer(mvm)

	req := httptest.NewRequest("POST", JSONRPCEndpoint, nil).WithContext(context.Background())
	err := j.SubmitTx(req, &SubmitTxArgs{Tx: []byte{0x01, 0x02}}, new(SubmitTxReply))
	require.Error(err)
}
