package explorers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const CACHE_TIME_OUT int64 = 30 // 30 seconds

var (
	ErrAlreadyVerified = errors.New("contract source code already verified")
	ErrNotVerified     = errors.New("contract source code not verified")
)

type EtherscanLikeExplorer struct {
	gpmu              sync.Mutex
	latestGasPrice    float64
	gasPriceTimestamp int64
	ChainID           uint64

	Domain string
	APIKey string

	Client       *http.Client
	PollInterval time.Duration
}

func NewEtherscanLikeExplorer(domain string, apiKey string, chainID uint64) *EtherscanLikeExplorer {
	return &EtherscanLikeExplorer{
		ChainID:      chainID,
		Domain:       strings.TrimSuffix(domain, "/"),
		APIKey:       apiKey,
		Client:       &http.Client{Timeout: 30 * time.Second},
		PollInterval: 5 * time.Second,
	}
}

// response is the envelope of every etherscan api answer. Result is a
// string for most actions and an object for the gas oracle.
type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func (r *response) IsOK() bool {
	return r.Status == "1"
}

func (r *response) resultString() string {
	s := ""
	if err := json.Unmarshal(r.Result, &s); err != nil {
		return string(r.Result)
	}
	return s
}

func (ee *EtherscanLikeExplorer) apiURL(params url.Values) string {
	params.Set("chainid", strconv.FormatUint(ee.ChainID, 10))
	if ee.APIKey != "" {
		params.Set("apikey", ee.APIKey)
	}
	return fmt.Sprintf("%s/api?%s", ee.Domain, params.Encode())
}

func (ee *EtherscanLikeExplorer) do(req *http.Request) (*response, error) {
	resp, err := ee.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s answered %s: %s", ee.Domain, resp.Status, string(body))
	}
	result := response{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("couldn't unmarshal %s, err: %w", string(body), err)
	}
	return &result, nil
}

func (ee *EtherscanLikeExplorer) get(ctx context.Context, params url.Values) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ee.apiURL(params), nil)
	if err != nil {
		return nil, err
	}
	return ee.do(req)
}

func (ee *EtherscanLikeExplorer) RecommendedGasPriceAPIURL() string {
	return ee.apiURL(url.Values{
		"module": {"gastracker"},
		"action": {"gasoracle"},
	})
}

type gasOracle struct {
	LastBlock       string `json:"LastBlock"`
	SafeGasPrice    string `json:"SafeGasPrice"`
	ProposeGasPrice string `json:"ProposeGasPrice"`
	FastGasPrice    string `json:"FastGasPrice"`
}

func (ee *EtherscanLikeExplorer) getGasPrice(ctx context.Context) (low, average, fast float64, err error) {
	resp, err := ee.get(ctx, url.Values{
		"module": {"gastracker"},
		"action": {"gasoracle"},
	})
	if err != nil {
		return 0, 0, 0, err
	}
	if !resp.IsOK() {
		return 0, 0, 0, fmt.Errorf("gas oracle: %s: %s", resp.Message, resp.resultString())
	}
	prices := gasOracle{}
	if err := json.Unmarshal(resp.Result, &prices); err != nil {
		return 0, 0, 0, fmt.Errorf("couldn't unmarshal gas oracle result, err: %w", err)
	}
	low, err = strconv.ParseFloat(prices.SafeGasPrice, 64)
	if err != nil {
		return 0, 0, 0, err
	}
	average, err = strconv.ParseFloat(prices.ProposeGasPrice, 64)
	if err != nil {
		return 0, 0, 0, err
	}
	fast, err = strconv.ParseFloat(prices.FastGasPrice, 64)
	if err != nil {
		return 0, 0, 0, err
	}
	return low, average, fast, nil
}

// RecommendedGasPrice returns the fast gas price in gwei, cached for
// CACHE_TIME_OUT seconds.
func (ee *EtherscanLikeExplorer) RecommendedGasPrice(ctx context.Context) (float64, error) {
	ee.gpmu.Lock()
	defer ee.gpmu.Unlock()

	if ee.latestGasPrice == 0 || time.Now().Unix()-ee.gasPriceTimestamp > CACHE_TIME_OUT {
		_, _, esFast, err := ee.getGasPrice(ctx)
		if err != nil {
			return 0, fmt.Errorf("etherscan gas price lookup failed: %w", err)
		}

		ee.latestGasPrice = esFast
		ee.gasPriceTimestamp = time.Now().Unix()
	}
	return ee.latestGasPrice, nil
}

func (ee *EtherscanLikeExplorer) GetABIString(ctx context.Context, address string) (string, error) {
	resp, err := ee.get(ctx, url.Values{
		"module":  {"contract"},
		"action":  {"getabi"},
		"address": {address},
	})
	if err != nil {
		return "", err
	}
	if !resp.IsOK() {
		result := resp.resultString()
		if strings.Contains(strings.ToLower(result), "not verified") {
			return "", fmt.Errorf("%s: %w", address, ErrNotVerified)
		}
		return "", fmt.Errorf("error from %s: %s: %s", ee.Domain, resp.Message, result)
	}
	return resp.resultString(), nil
}

// IsVerified asks the explorer whether the source of address is public.
func (ee *EtherscanLikeExplorer) IsVerified(ctx context.Context, address string) (bool, error) {
	_, err := ee.GetABIString(ctx, address)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotVerified) {
		return false, nil
	}
	return false, err
}

// VerifyRequest is a solc standard json input verification.
type VerifyRequest struct {
	Address string
	// ContractName is the fully qualified "<source>:<name>".
	ContractName    string
	CompilerVersion string
	SourceCode      string
	// ConstructorArgs is the hex abi encoding of the arguments, no 0x.
	ConstructorArgs string
}

// VerifySourceCode submits the source and returns the guid of the
// verification job.
func (ee *EtherscanLikeExplorer) VerifySourceCode(ctx context.Context, r VerifyRequest) (string, error) {
	compiler := r.CompilerVersion
	if !strings.HasPrefix(compiler, "v") {
		compiler = "v" + compiler
	}
	form := url.Values{
		"module":          {"contract"},
		"action":          {"verifysourcecode"},
		"contractaddress": {r.Address},
		"sourceCode":      {r.SourceCode},
		"codeformat":      {"solidity-standard-json-input"},
		"contractname":    {r.ContractName},
		"compilerversion": {compiler},
		// the misspelling is part of the api
		"constructorArguements": {strings.TrimPrefix(r.ConstructorArgs, "0x")},
	}
	if ee.APIKey != "" {
		form.Set("apikey", ee.APIKey)
	}
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		ee.apiURL(url.Values{}),
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := ee.do(req)
	if err != nil {
		return "", err
	}
	result := resp.resultString()
	if !resp.IsOK() {
		if isAlreadyVerified(result) {
			return "", fmt.Errorf("%s: %w", r.Address, ErrAlreadyVerified)
		}
		return "", fmt.Errorf("verification of %s rejected: %s", r.Address, result)
	}
	return result, nil
}

// VerificationStatus is the state of a submitted verification job.
type VerificationStatus int

const (
	StatusPending VerificationStatus = iota
	StatusVerified
	StatusFailed
)

func (ee *EtherscanLikeExplorer) CheckVerifyStatus(ctx context.Context, guid string) (VerificationStatus, string, error) {
	resp, err := ee.get(ctx, url.Values{
		"module": {"contract"},
		"action": {"checkverifystatus"},
		"guid":   {guid},
	})
	if err != nil {
		return StatusPending, "", err
	}
	result := resp.resultString()
	switch {
	case resp.IsOK():
		return StatusVerified, result, nil
	case strings.Contains(strings.ToLower(result), "pending"):
		return StatusPending, result, nil
	case isAlreadyVerified(result):
		return StatusVerified, result, ErrAlreadyVerified
	default:
		return StatusFailed, result, nil
	}
}

// WaitForVerification polls the job until the explorer decides.
func (ee *EtherscanLikeExplorer) WaitForVerification(ctx context.Context, guid string) error {
	ticker := time.NewTicker(ee.PollInterval)
	defer ticker.Stop()
	for {
		status, result, err := ee.CheckVerifyStatus(ctx, guid)
		if err != nil {
			return err
		}
		switch status {
		case StatusVerified:
			return nil
		case StatusFailed:
			return fmt.Errorf("verification failed: %s", result)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Verify submits the source of a contract and waits for the outcome. An
// already verified contract yields ErrAlreadyVerified.
func (ee *EtherscanLikeExplorer) Verify(ctx context.Context, r VerifyRequest) error {
	verified, err := ee.IsVerified(ctx, r.Address)
	if err == nil && verified {
		return fmt.Errorf("%s: %w", r.Address, ErrAlreadyVerified)
	}
	guid, err := ee.VerifySourceCode(ctx, r)
	if err != nil {
		return err
	}
	return ee.WaitForVerification(ctx, guid)
}

func isAlreadyVerified(result string) bool {
	return strings.Contains(strings.ToLower(result), "already verified")
}
