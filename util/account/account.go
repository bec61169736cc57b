package account

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

type Account struct {
	signer  *KeySigner
	address common.Address
}

func NewPrivateKeyAccount(hex string) (*Account, error) {
	_, key, err := PrivateKeyFromHex(hex)
	if err != nil {
		return nil, err
	}
	return &Account{
		NewKeySigner(key),
		crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

func NewKeystoreAccount(file string, password string) (*Account, error) {
	_, key, err := PrivateKeyFromKeystore(file, password)
	if err != nil {
		return nil, err
	}
	return &Account{
		NewKeySigner(key),
		crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

func (self *Account) Address() common.Address {
	return self.address
}

func (self *Account) AddressHex() string {
	return self.address.Hex()
}

func (self *Account) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signedTx, err := self.signer.SignTx(tx, chainID)
	if err != nil {
		return tx, fmt.Errorf("couldn't sign the tx: %w", err)
	}
	return signedTx, nil
}

// TransactOpts returns fresh options for one transaction sent from this
// account on chainID.
func (self *Account) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	opts, err := self.signer.transactor(chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}
