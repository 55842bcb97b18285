// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"fmt"
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/genesis"
)

type JSONRPCServer struct {
	vm VM
}

func NewJSONRPCServer(vm VM) *JSONRPCServer {
	return &JSONRPCServer{vm}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.vm.Logger().Info("ping")
	reply.Success = true
	return nil
}

type NetworkReply struct {
	NetworkID uint32 `json:"networkId"`
	ChainID   ids.ID `json:"chainId"`
}

func (j *JSONRPCServer) Network(_ *http.Request, _ *struct{}, reply *NetworkReply) (err error) {
	reply.NetworkID = j.vm.NetworkID()
	reply.ChainID = j.vm.ChainID()
	return nil
}

type GenesisReply struct {
	Genesis *genesis.Genesis `json:"genesis"`
}

func (j *JSONRPCServer) Genesis(_ *http.Request, _ *struct{}, reply *GenesisReply) (err error) {
	reply.Genesis = j.vm.Genesis()
	return nil
}

type SubmitTxArgs struct {
	Tx []byte `json:"tx"`
}

type SubmitTxReply struct {
	TxID   ids.ID        `json:"txId"`
	Result *chain.Result `json:"result"`
}

func (j *JSONRPCServer) SubmitTx(
	req *http.Request,
	args *SubmitTxArgs,
	reply *SubmitTxReply,
) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.SubmitTx")
	defer span.End()

	tx, err := chain.ParseTx(args.Tx, j.vm.Parser())
	if err != nil {
		return fmt.Errorf("%w: unable to unmarshal on public service", err)
	}
	txID := tx.ID()
	span.SetAttributes(attribute.Stringer("txID", txID))
	result, err := j.vm.SubmitTx(ctx, tx)
	if err != nil {
		j.vm.Logger().Debug("rejected transaction",
			zap.Stringer("txID", txID),
			zap.Error(err),
		)
		return err
	}
	reply.TxID = txID
	reply.Result = result
	return nil
}

type TxArgs struct {
	TxID ids.ID `json:"txId"`
}

type TxReply struct {
	Timestamp int64         `json:"timestamp"`
	Result    *chain.Result `json:"result"`
}

func (j *JSONRPCServer) Tx(_ *http.Request, args *TxArgs, reply *TxReply) error {
	status, ok := j.vm.GetTxStatus(args.TxID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTxNotFound, args.TxID)
	}
	reply.Timestamp = status.Timestamp
	reply.Result = status.Result
	return nil
}

type AddressArgs struct {
	Address string `json:"address"`
}

func (j *JSONRPCServer) parseAddress(s string) (codec.Address, error) {
	return codec.ParseAddressBech32(j.vm.Genesis().HRP, s)
}

type CounterReply struct {
	Exists bool  `json:"exists"`
	Count  uint8 `json:"count"`
}

func (j *JSONRPCServer) Counter(req *http.Request, args *AddressArgs, reply *CounterReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Counter")
	defer span.End()

	addr, err := j.parseAddress(args.Address)
	if err != nil {
		return err
	}
	count, exists, err := j.vm.GetCounter(ctx, addr)
	if err != nil {
		return err
	}
	reply.Exists = exists
	reply.Count = count
	return nil
}

type AccountReply struct {
	Exists   bool   `json:"exists"`
	Owner    ids.ID `json:"owner"`
	Lamports uint64 `json:"lamports"`
	Size     int    `json:"size"`
}

func (j *JSONRPCServer) Account(req *http.Request, args *AddressArgs, reply *AccountReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Account")
	defer span.End()

	addr, err := j.parseAddress(args.Address)
	if err != nil {
		return err
	}
	acct, exists, err := j.vm.GetAccount(ctx, addr)
	if err != nil {
		return err
	}
	reply.Exists = exists
	if !exists {
		return nil
	}
	reply.Owner = acct.OwnerID()
	reply.Lamports = acct.Lamports
	reply.Size = len(acct.Data)
	return nil
}

type BalanceReply struct {
	Amount uint64 `json:"amount"`
}

func (j *JSONRPCServer) Balance(req *http.Request, args *AddressArgs, reply *BalanceReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Balance")
	defer span.End()

	addr, err := j.parseAddress(args.Address)
	if err != nil {
		return err
	}
	balance, err := j.vm.GetBalance(ctx, addr)
	if err != nil {
		return err
	}
	reply.Amount = balance
	return nil
}

type RentArgs struct {
	Size int `json:"size"`
}

func (j *JSONRPCServer) Rent(_ *http.Request, args *RentArgs, reply *BalanceReply) error {
	if args.Size < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, args.Size)
	}
	amount, err := j.vm.MinimumBalance(args.Size)
	if err != nil {
		return err
	}
	reply.Amount = amount
	return nil
}
