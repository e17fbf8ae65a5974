// Package universe builds the static set of tickers eligible for
// collection from the basic-info cache CSV.
package universe

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cnquotes/internal/domain"
)

// basicInfoColumns is the column count of the basic-info cache CSV:
// code, name, net_profit, total_market_value, circulating_market_value,
// industry, per, pbr, roe, gross_margin, net_margin, board_code.
const basicInfoColumns = 12

// Header is the basic-info cache CSV header row.
var Header = []string{
	"code", "name", "net_profit", "total_market_value",
	"circulating_market_value", "industry", "per", "pbr", "roe",
	"gross_margin", "net_margin", "board_code",
}

// Universe is the ordered, immutable set of eligible tickers with their
// basic info. Construct once at startup via Load and share by handle;
// reload only on an explicit refresh.
type Universe struct {
	tickers []string
	stocks  map[string]domain.BasicInfo
}

// Load reads the basic-info cache at path and constructs the universe.
// Rows without a circulating market value are dropped (no longer listed),
// as are names carrying a delisting/ST/new-listing marker. Codes are
// exchange-prefixed once here; the prefix never changes afterwards.
// A missing or unreadable cache is a startup-fatal error for the caller:
// without it no universe exists.
func Load(path string) (*Universe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening basic-info cache %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading basic-info cache %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("basic-info cache %s has no data rows", path)
	}

	u := &Universe{stocks: make(map[string]domain.BasicInfo, len(records)-1)}
	for _, row := range records[1:] {
		if len(row) < basicInfoColumns {
			continue
		}
		info := domain.BasicInfo{
			Code:                   strings.TrimSpace(row[0]),
			Name:                   strings.TrimSpace(row[1]),
			NetProfit:              row[2],
			TotalMarketValue:       row[3],
			CirculatingMarketValue: row[4],
			Industry:               row[5],
			PER:                    row[6],
			PBR:                    row[7],
			ROE:                    row[8],
			GrossMargin:            row[9],
			NetMargin:              row[10],
			BoardCode:              row[11],
		}
		if strings.TrimSpace(info.CirculatingMarketValue) == "" {
			continue
		}
		if info.Code == "" || domain.IsBadName(info.Name) {
			continue
		}
		ticker := domain.WithPrefix(info.Code)
		if _, dup := u.stocks[ticker]; dup {
			continue
		}
		u.stocks[ticker] = info
		u.tickers = append(u.tickers, ticker)
	}

	if len(u.tickers) == 0 {
		return nil, fmt.Errorf("basic-info cache %s yielded an empty universe", path)
	}
	return u, nil
}

// Tickers returns all tickers in load order. Callers must not modify the
// returned slice.
func (u *Universe) Tickers() []string { return u.tickers }

// Count returns the number of tickers in the universe.
func (u *Universe) Count() int { return len(u.tickers) }

// Get returns the basic info for a prefixed ticker.
func (u *Universe) Get(ticker string) (domain.BasicInfo, bool) {
	info, ok := u.stocks[ticker]
	return info, ok
}

// Batches partitions the universe into contiguous batches of at most size
// tickers, preserving universe order. The last batch may be shorter.
func (u *Universe) Batches(size int) [][]string {
	if size <= 0 {
		size = len(u.tickers)
	}
	var batches [][]string
	for i := 0; i < len(u.tickers); i += size {
		end := min(i+size, len(u.tickers))
		batches = append(batches, u.tickers[i:end])
	}
	return batches
}

// CountByExchange returns ticker counts keyed by exchange prefix.
func (u *Universe) CountByExchange() map[string]int {
	counts := make(map[string]int, 3)
	for _, ticker := range u.tickers {
		if len(ticker) >= 2 {
			counts[ticker[:2]]++
		}
	}
	return counts
}

// ---------------------------------------------------------------------------
// Refresh: explicit basic-info cache rebuild
// ---------------------------------------------------------------------------

// Provider fetches fresh basic info from an external info source. The
// bootstrap provider itself lives outside this module; collection only
// ever reads the cache it writes.
type Provider interface {
	FetchBasicInfo(ctx context.Context) ([]domain.BasicInfo, error)
}

// Refresh fetches basic info from the provider and rewrites the cache CSV
// at path. The collector picks the new cache up on its next Load.
func Refresh(ctx context.Context, p Provider, path string) error {
	infos, err := p.FetchBasicInfo(ctx)
	if err != nil {
		return fmt.Errorf("fetching basic info: %w", err)
	}
	if len(infos) == 0 {
		return fmt.Errorf("provider returned no basic info")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating cache %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("writing cache header: %w", err)
	}
	for _, info := range infos {
		row := []string{
			info.Code, info.Name, info.NetProfit, info.TotalMarketValue,
			info.CirculatingMarketValue, info.Industry, info.PER, info.PBR,
			info.ROE, info.GrossMargin, info.NetMargin, info.BoardCode,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing cache row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
