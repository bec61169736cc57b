package explorers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/fundme/networks"
)

const fundMeAddress = "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0"

func newTestExplorer(t *testing.T, handler http.HandlerFunc) *EtherscanLikeExplorer {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	ee := NewEtherscanLikeExplorer(srv.URL+"/v2", "KEY", 11155111)
	ee.PollInterval = time.Millisecond
	return ee
}

func TestRecommendedGasPriceIsCached(t *testing.T) {
	var calls int32
	ee := newTestExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/v2/api", r.URL.Path)
		assert.Equal(t, "gasoracle", r.URL.Query().Get("action"))
		assert.Equal(t, "11155111", r.URL.Query().Get("chainid"))
		assert.Equal(t, "KEY", r.URL.Query().Get("apikey"))
		fmt.Fprint(w, `{"status":"1","message":"OK","result":{"LastBlock":"1","SafeGasPrice":"1.5","ProposeGasPrice":"2","FastGasPrice":"3.25"}}`)
	})

	for i := 0; i < 3; i++ {
		price, err := ee.RecommendedGasPrice(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3.25, price)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetABIString(t *testing.T) {
	ee := newTestExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("address") == fundMeAddress {
			fmt.Fprint(w, `{"status":"1","message":"OK","result":"[]"}`)
			return
		}
		fmt.Fprint(w, `{"status":"0","message":"NOTOK","result":"Contract source code not verified"}`)
	})

	abi, err := ee.GetABIString(context.Background(), fundMeAddress)
	require.NoError(t, err)
	assert.Equal(t, "[]", abi)

	verified, err := ee.IsVerified(context.Background(), "0x01")
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestVerifyPollsUntilPass(t *testing.T) {
	var polls int32
	ee := newTestExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case r.Method == http.MethodPost:
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "verifysourcecode", r.PostForm.Get("action"))
			assert.Equal(t, "contracts/FundMe.sol:FundMe", r.PostForm.Get("contractname"))
			assert.Equal(t, "v0.8.8+commit.dddeac2f", r.PostForm.Get("compilerversion"))
			assert.Equal(t, "solidity-standard-json-input", r.PostForm.Get("codeformat"))
			assert.Equal(t, "00ab", r.PostForm.Get("constructorArguements"))
			assert.Equal(t, "11155111", q.Get("chainid"))
			fmt.Fprint(w, `{"status":"1","message":"OK","result":"guid-1"}`)
		case q.Get("action") == "getabi":
			fmt.Fprint(w, `{"status":"0","message":"NOTOK","result":"Contract source code not verified"}`)
		case q.Get("action") == "checkverifystatus":
			assert.Equal(t, "guid-1", q.Get("guid"))
			if atomic.AddInt32(&polls, 1) < 3 {
				fmt.Fprint(w, `{"status":"0","message":"NOTOK","result":"Pending in queue"}`)
				return
			}
			fmt.Fprint(w, `{"status":"1","message":"OK","result":"Pass - Verified"}`)
		}
	})

	err := ee.Verify(context.Background(), VerifyRequest{
		Address:         fundMeAddress,
		ContractName:    "contracts/FundMe.sol:FundMe",
		CompilerVersion: "0.8.8+commit.dddeac2f",
		SourceCode:      `{"language":"Solidity"}`,
		ConstructorArgs: "0x00ab",
	})
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&polls))
}

func TestVerifyAlreadyVerified(t *testing.T) {
	ee := newTestExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, `{"status":"0","message":"NOTOK","result":"Contract source code already verified"}`)
			return
		}
		fmt.Fprint(w, `{"status":"0","message":"NOTOK","result":"Contract source code not verified"}`)
	})
	err := ee.Verify(context.Background(), VerifyRequest{Address: fundMeAddress})
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestVerifyFailure(t *testing.T) {
	ee := newTestExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			fmt.Fprint(w, `{"status":"1","message":"OK","result":"guid-2"}`)
		case r.URL.Query().Get("action") == "getabi":
			fmt.Fprint(w, `{"status":"0","message":"NOTOK","result":"Contract source code not verified"}`)
		default:
			fmt.Fprint(w, `{"status":"0","message":"NOTOK","result":"Fail - Unable to verify"}`)
		}
	})
	err := ee.Verify(context.Background(), VerifyRequest{Address: fundMeAddress})
	assert.ErrorContains(t, err, "Fail - Unable to verify")
}

func TestHTTPErrorStatus(t *testing.T) {
	ee := newTestExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	_, err := ee.GetABIString(context.Background(), fundMeAddress)
	assert.ErrorContains(t, err, "429")
}

func TestNewExplorerForNetwork(t *testing.T) {
	ee, err := NewExplorerForNetwork(networks.Sepolia, "KEY")
	require.NoError(t, err)
	assert.Equal(t, uint64(11155111), ee.ChainID)
	assert.Contains(t, ee.RecommendedGasPriceAPIURL(), "https://api.etherscan.io/v2/api?")

	_, err = NewExplorerForNetwork(networks.Hardhat, "KEY")
	assert.Error(t, err)
}
