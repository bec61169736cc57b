package account

import (
	"fmt"
	"sort"
)

// DefaultRoles maps the named accounts every script relies on to account
// indexes.
var DefaultRoles = map[string]int{
	"deployer": 0,
	"user":     1,
}

// DevKeys are the well known keys of the first accounts of hardhat and
// anvil nodes. They hold test ether only and must never be used on live
// networks.
var DevKeys = []string{
	"0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
	"0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d",
	"0x5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a",
	"0x7c852118294e51e653712a81e05800f419141751be58f605c371e15141b007a6",
	"0x47e179ec197488593b187f80a00eb0da91f1b9d0b13f8733639f19c30a34926a",
	"0x8b3a350cf5c34c9194ca85829a2df0ec3153be0318b5e2d3348e872092edffba",
}

// NamedAccounts resolves roles such as "deployer" to signing accounts.
type NamedAccounts struct {
	accounts []*Account
	roles    map[string]int
}

func NewNamedAccounts(accounts []*Account, roles map[string]int) *NamedAccounts {
	if roles == nil {
		roles = DefaultRoles
	}
	return &NamedAccounts{
		accounts: accounts,
		roles:    roles,
	}
}

// NamedAccountsFromKeys builds accounts from hex private keys, in order.
func NamedAccountsFromKeys(keys []string, roles map[string]int) (*NamedAccounts, error) {
	accounts := make([]*Account, 0, len(keys))
	for i, key := range keys {
		acc, err := NewPrivateKeyAccount(key)
		if err != nil {
			return nil, fmt.Errorf("private key #%d: %w", i, err)
		}
		accounts = append(accounts, acc)
	}
	return NewNamedAccounts(accounts, roles), nil
}

// DevNamedAccounts are the accounts of a local development node.
func DevNamedAccounts(roles map[string]int) *NamedAccounts {
	accounts, err := NamedAccountsFromKeys(DevKeys, roles)
	if err != nil {
		panic(err)
	}
	return accounts
}

func (self *NamedAccounts) Named(role string) (*Account, error) {
	index, found := self.roles[role]
	if !found {
		return nil, fmt.Errorf("unknown named account %q", role)
	}
	acc, err := self.At(index)
	if err != nil {
		return nil, fmt.Errorf("named account %q: %w", role, err)
	}
	return acc, nil
}

func (self *NamedAccounts) At(index int) (*Account, error) {
	if index < 0 || index >= len(self.accounts) {
		return nil, fmt.Errorf("account #%d is not configured, only %d available", index, len(self.accounts))
	}
	return self.accounts[index], nil
}

func (self *NamedAccounts) All() []*Account {
	return self.accounts
}

func (self *NamedAccounts) Roles() []string {
	roles := make([]string, 0, len(self.roles))
	for role := range self.roles {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}
