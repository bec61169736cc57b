package account

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hardhatAccount0 = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

func TestPrivateKeyFromHex(t *testing.T) {
	for _, key := range []string{DevKeys[0], DevKeys[0][2:], " " + DevKeys[0] + "\n"} {
		addr, _, err := PrivateKeyFromHex(key)
		require.NoError(t, err)
		assert.Equal(t, hardhatAccount0, addr)
	}

	_, _, err := PrivateKeyFromHex("")
	assert.Error(t, err)
	_, _, err = PrivateKeyFromHex("0x1234")
	assert.Error(t, err)
}

func TestSignTxRecoversSender(t *testing.T) {
	acc, err := NewPrivateKeyAccount(DevKeys[0])
	require.NoError(t, err)

	chainID := big.NewInt(1337)
	to := common.HexToAddress("0x02")
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     0,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(10),
		Gas:       21000,
		To:        &to,
		Value:     big.NewInt(1),
	})
	signed, err := acc.SignTx(tx, chainID)
	require.NoError(t, err)

	sender, err := types.Sender(types.LatestSignerForChainID(chainID), signed)
	require.NoError(t, err)
	assert.Equal(t, acc.Address(), sender)
}

func TestTransactOpts(t *testing.T) {
	acc, err := NewPrivateKeyAccount(DevKeys[1])
	require.NoError(t, err)

	ctx := context.Background()
	opts, err := acc.TransactOpts(ctx, big.NewInt(31337))
	require.NoError(t, err)
	assert.Equal(t, acc.Address(), opts.From)
	assert.Equal(t, ctx, opts.Context)
}

func TestNamedAccounts(t *testing.T) {
	named := DevNamedAccounts(nil)
	require.Len(t, named.All(), len(DevKeys))
	assert.Equal(t, []string{"deployer", "user"}, named.Roles())

	deployer, err := named.Named("deployer")
	require.NoError(t, err)
	assert.Equal(t, hardhatAccount0, deployer.AddressHex())

	user, err := named.Named("user")
	require.NoError(t, err)
	assert.Equal(t, "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", user.AddressHex())

	_, err = named.Named("treasury")
	assert.ErrorContains(t, err, "unknown named account")
}

func TestNamedAccountsOutOfRange(t *testing.T) {
	named, err := NamedAccountsFromKeys(DevKeys[:1], nil)
	require.NoError(t, err)

	_, err = named.Named("user")
	assert.ErrorContains(t, err, "only 1 available")

	_, err = NamedAccountsFromKeys([]string{"nothex"}, nil)
	assert.ErrorContains(t, err, "private key #0")
}
