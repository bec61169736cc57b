package account

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

type KeySigner struct {
	key *ecdsa.PrivateKey
}

func (self *KeySigner) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	opts, err := self.transactor(chainID)
	if err != nil {
		return nil, err
	}
	return opts.Signer(opts.From, tx)
}

func (self *KeySigner) transactor(chainID *big.Int) (*bind.TransactOpts, error) {
	return bind.NewKeyedTransactorWithChainID(self.key, chainID)
}

func (self *KeySigner) Address() string {
	return crypto.PubkeyToAddress(self.key.PublicKey).Hex()
}

func NewKeySigner(key *ecdsa.PrivateKey) *KeySigner {
	return &KeySigner{key}
}
