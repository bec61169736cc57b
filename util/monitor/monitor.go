package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/tranvictor/fundme/util/logging"
)

var ErrReverted = errors.New("transaction reverted")

// Backend is the part of a node client the monitor polls.
type Backend interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// TxInfo is the outcome of waiting for one transaction.
type TxInfo struct {
	Hash          common.Hash
	Receipt       *types.Receipt
	Confirmations uint64
	Err           error
}

type TxMonitor struct {
	backend  Backend
	interval time.Duration
	log      *zap.Logger
}

type Option func(*TxMonitor)

// WithInterval sets the polling period. Non positive values are ignored.
func WithInterval(interval time.Duration) Option {
	return func(m *TxMonitor) {
		if interval > 0 {
			m.interval = interval
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(m *TxMonitor) {
		m.log = logging.OrNop(l)
	}
}

func NewTxMonitor(backend Backend, opts ...Option) *TxMonitor {
	m := &TxMonitor{
		backend:  backend,
		interval: time.Second,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// check returns true when polling can stop.
func (self *TxMonitor) check(ctx context.Context, hash common.Hash, confirmations uint64, info *TxInfo) bool {
	receipt, err := self.backend.TransactionReceipt(ctx, hash)
	if err != nil {
		if !errors.Is(err, ethereum.NotFound) {
			self.log.Debug("couldn't get receipt", zap.Stringer("tx", hash), zap.Error(err))
		}
		return false
	}
	info.Receipt = receipt
	if receipt.Status != types.ReceiptStatusSuccessful {
		info.Err = fmt.Errorf("tx %s in block %s: %w", hash.Hex(), receipt.BlockNumber, ErrReverted)
		return true
	}
	head, err := self.backend.BlockNumber(ctx)
	if err != nil {
		self.log.Debug("couldn't get head block", zap.Error(err))
		return false
	}
	mined := receipt.BlockNumber.Uint64()
	if head >= mined {
		info.Confirmations = head - mined + 1
	}
	return info.Confirmations >= confirmations
}

func (self *TxMonitor) periodicCheck(ctx context.Context, hash common.Hash, confirmations uint64, result chan<- TxInfo) {
	info := TxInfo{Hash: hash}
	if self.check(ctx, hash, confirmations, &info) {
		result <- info
		return
	}
	ticker := time.NewTicker(self.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			info.Err = fmt.Errorf("waiting for tx %s: %w", hash.Hex(), ctx.Err())
			result <- info
			return
		case <-ticker.C:
			if self.check(ctx, hash, confirmations, &info) {
				result <- info
				return
			}
			self.log.Debug("waiting for tx",
				zap.Stringer("tx", hash),
				zap.Uint64("confirmations", info.Confirmations),
				zap.Uint64("want", confirmations),
			)
		}
	}
}

func (self *TxMonitor) MakeWaitChannel(ctx context.Context, hash common.Hash, confirmations uint64) <-chan TxInfo {
	result := make(chan TxInfo, 1)
	go self.periodicCheck(ctx, hash, confirmations, result)
	return result
}

// WaitConfirmations blocks until the tx is mined and buried under
// confirmations blocks (counting its own), it reverted, or ctx is done. A
// zero confirmations waits for the receipt only.
func (self *TxMonitor) WaitConfirmations(ctx context.Context, hash common.Hash, confirmations uint64) (*types.Receipt, error) {
	if confirmations == 0 {
		confirmations = 1
	}
	info := <-self.MakeWaitChannel(ctx, hash, confirmations)
	return info.Receipt, info.Err
}
