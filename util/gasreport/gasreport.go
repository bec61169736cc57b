// Package gasreport collects the gas used by deployments and contract calls
// and prices it in a fiat currency.
package gasreport

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"sort"
	"sync"

	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tranvictor/fundme/util/logging"
)

// DeploymentMethod is the method name deployments are recorded under.
const DeploymentMethod = "deployment"

// MethodStats is the gas used by every recorded call of one method.
type MethodStats struct {
	Contract string
	Method   string
	GasUsed  []uint64
}

func (s MethodStats) Calls() int {
	return len(s.GasUsed)
}

func (s MethodStats) Min() uint64 {
	if len(s.GasUsed) == 0 {
		return 0
	}
	result := s.GasUsed[0]
	for _, g := range s.GasUsed[1:] {
		result = min(result, g)
	}
	return result
}

func (s MethodStats) Max() uint64 {
	var result uint64
	for _, g := range s.GasUsed {
		result = max(result, g)
	}
	return result
}

// Avg is rounded down.
func (s MethodStats) Avg() uint64 {
	if len(s.GasUsed) == 0 {
		return 0
	}
	var sum uint64
	for _, g := range s.GasUsed {
		sum += g
	}
	return sum / uint64(len(s.GasUsed))
}

type Options struct {
	Enabled bool
	// Currency is the fiat currency of the cost column, USD by default.
	Currency string
	// Token is the native token symbol gas is paid in.
	Token string
	// OutputFile, when set, receives the report instead of the terminal.
	OutputFile string
	GasPrice   GasPriceSource
	Quotes     QuoteSource
	Log        *zap.Logger
}

// Reporter is safe for concurrent use. A disabled reporter drops every
// record.
type Reporter struct {
	mu    sync.Mutex
	opts  Options
	stats map[string]*MethodStats
	log   *zap.Logger
}

func NewReporter(opts Options) *Reporter {
	if opts.Currency == "" {
		opts.Currency = "USD"
	}
	if opts.Token == "" {
		opts.Token = "ETH"
	}
	return &Reporter{
		opts:  opts,
		stats: map[string]*MethodStats{},
		log:   logging.OrNop(opts.Log),
	}
}

func (r *Reporter) Enabled() bool {
	return r != nil && r.opts.Enabled
}

func (r *Reporter) OutputFile() string {
	return r.opts.OutputFile
}

func (r *Reporter) Record(contract, method string, gasUsed uint64) {
	if !r.Enabled() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := contract + "." + method
	s, found := r.stats[key]
	if !found {
		s = &MethodStats{Contract: contract, Method: method}
		r.stats[key] = s
	}
	s.GasUsed = append(s.GasUsed, gasUsed)
}

// Stats returns a copy of the statistics ordered by contract, then method.
func (r *Reporter) Stats() []MethodStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]MethodStats, 0, len(r.stats))
	for _, s := range r.stats {
		result = append(result, MethodStats{
			Contract: s.Contract,
			Method:   s.Method,
			GasUsed:  append([]uint64(nil), s.GasUsed...),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Contract != result[j].Contract {
			return result[i].Contract < result[j].Contract
		}
		return result[i].Method < result[j].Method
	})
	return result
}

// Report is the rendered form of the statistics.
type Report struct {
	Headers []string
	Rows    [][]string
}

// pricing returns the fiat price of one unit of gas, or nil when it can't
// be known.
func (r *Reporter) pricing(ctx context.Context) *big.Float {
	if r.opts.GasPrice == nil || r.opts.Quotes == nil {
		return nil
	}
	gasPrice, err := r.opts.GasPrice.GasPrice(ctx)
	if err != nil {
		r.log.Warn("couldn't get gas price for the gas report", zap.Error(err))
		return nil
	}
	quote, err := r.opts.Quotes.Quote(ctx, r.opts.Token, r.opts.Currency)
	if err != nil {
		r.log.Warn("couldn't get token price for the gas report", zap.Error(err))
		return nil
	}
	// fiat per gas = gasPrice(wei) / 1e18 * quote
	perGas := new(big.Float).SetInt(gasPrice)
	perGas.Quo(perGas, big.NewFloat(1e18))
	return perGas.Mul(perGas, big.NewFloat(quote))
}

func (r *Reporter) Build(ctx context.Context) Report {
	p := message.NewPrinter(language.English)
	perGas := r.pricing(ctx)
	report := Report{
		Headers: []string{
			"Contract", "Method", "Min", "Max", "Avg", "# calls",
			fmt.Sprintf("%s (avg)", r.opts.Currency),
		},
	}
	for _, s := range r.Stats() {
		cost := ""
		if perGas != nil {
			fiat, _ := new(big.Float).Mul(perGas, new(big.Float).SetUint64(s.Avg())).Float64()
			cost = p.Sprintf("%.2f", fiat)
		}
		report.Rows = append(report.Rows, []string{
			s.Contract,
			s.Method,
			p.Sprintf("%d", s.Min()),
			p.Sprintf("%d", s.Max()),
			p.Sprintf("%d", s.Avg()),
			p.Sprintf("%d", s.Calls()),
			cost,
		})
	}
	return report
}

// TableUI is the part of the terminal UI the report is drawn with.
type TableUI interface {
	Table(headers []string, rows [][]string)
}

// Render writes the report to the output file when one is configured,
// to u otherwise. A disabled reporter renders nothing.
func (r *Reporter) Render(ctx context.Context, u TableUI) error {
	if !r.Enabled() {
		return nil
	}
	report := r.Build(ctx)
	if r.opts.OutputFile != "" {
		return r.writeFile(report)
	}
	u.Table(report.Headers, report.Rows)
	return nil
}

func (r *Reporter) writeFile(report Report) error {
	f, err := os.Create(r.opts.OutputFile)
	if err != nil {
		return fmt.Errorf("couldn't create gas report file: %w", err)
	}
	defer f.Close()

	table := tablewriter.NewWriter(f)
	headers := make([]any, 0, len(report.Headers))
	for _, h := range report.Headers {
		headers = append(headers, h)
	}
	table.Header(headers...)
	for _, row := range report.Rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	return f.Sync()
}
