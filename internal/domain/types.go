// Package domain defines the core types shared across the cnquotes
// pipeline: real-time quote snapshots, basic stock info, and the
// exchange-prefix rules for A-share ticker codes.
package domain

import "strings"

// Exchange prefixes for A-share ticker codes.
const (
	ExchangeShanghai = "sh"
	ExchangeShenzhen = "sz"
	ExchangeBeijing  = "bj"
)

// shanghaiPrefixes are the numeric code prefixes assigned to the Shanghai
// exchange; beijingPrefixes to the Beijing exchange. Everything else is
// Shenzhen.
var (
	shanghaiPrefixes = []string{"600", "601", "603", "605", "688", "900"}
	beijingPrefixes  = []string{"8", "43"}
)

// badNameMarkers flag stocks excluded from the universe: delisting (退),
// special treatment (ST), and new listings (N).
var badNameMarkers = []string{"退", "ST", "N"}

// ---------------------------------------------------------------------------
// Quote — one real-time snapshot from the quote feed
// ---------------------------------------------------------------------------

// Quote is a single real-time snapshot for one ticker: the ticker plus the
// 32 positional fields of the wire line, in wire order. All fields keep the
// feed's raw string representation — persistence appends them verbatim to
// CSV and duplicate detection is exact-row equality, so re-encoding through
// numeric types would only lose information. The struct is comparable.
type Quote struct {
	Ticker                string // exchange-prefixed code, e.g. "sh600345"
	Name                  string
	TodayOpeningPrice     string
	YesterdayClosingPrice string
	CurrentPrice          string
	TodayMaxPrice         string
	TodayMinPrice         string
	MaxBuyPrice           string // best bid
	MinSellPrice          string // best ask
	SharesOfTraded        string
	AmountOfTraded        string
	BuyOneApply           string
	BuyOnePrice           string
	BuyTwoApply           string
	BuyTwoPrice           string
	BuyThreeApply         string
	BuyThreePrice         string
	BuyFourApply          string
	BuyFourPrice          string
	BuyFiveApply          string
	BuyFivePrice          string
	SellOneApply          string
	SellOnePrice          string
	SellTwoApply          string
	SellTwoPrice          string
	SellThreeApply        string
	SellThreePrice        string
	SellFourApply         string
	SellFourPrice         string
	SellFiveApply         string
	SellFivePrice         string
	Date                  string // yyyy-mm-dd
	Time                  string // hh:mm:ss
}

// QuoteFieldCount is the number of comma-separated fields consumed from a
// wire line after the ticker. The feed may send more; the rest carry no
// meaning for us and are discarded.
const QuoteFieldCount = 32

// QuoteHeader is the CSV header row for persisted quote files. Order
// matches the Quote struct and the wire format.
var QuoteHeader = []string{
	"ticker", "name",
	"today_opening_price", "yesterday_closing_price", "current_price",
	"today_max_price", "today_min_price",
	"max_buy_price", "min_sell_price",
	"shares_of_traded", "amount_of_traded",
	"buy_one_apply", "buy_one_price",
	"buy_two_apply", "buy_two_price",
	"buy_three_apply", "buy_three_price",
	"buy_four_apply", "buy_four_price",
	"buy_five_apply", "buy_five_price",
	"sell_one_apply", "sell_one_price",
	"sell_two_apply", "sell_two_price",
	"sell_three_apply", "sell_three_price",
	"sell_four_apply", "sell_four_price",
	"sell_five_apply", "sell_five_price",
	"date", "time",
}

// NewQuote builds a Quote from a ticker and exactly QuoteFieldCount wire
// fields. Callers are responsible for the length check.
func NewQuote(ticker string, fields []string) Quote {
	return Quote{
		Ticker:                ticker,
		Name:                  fields[0],
		TodayOpeningPrice:     fields[1],
		YesterdayClosingPrice: fields[2],
		CurrentPrice:          fields[3],
		TodayMaxPrice:         fields[4],
		TodayMinPrice:         fields[5],
		MaxBuyPrice:           fields[6],
		MinSellPrice:          fields[7],
		SharesOfTraded:        fields[8],
		AmountOfTraded:        fields[9],
		BuyOneApply:           fields[10],
		BuyOnePrice:           fields[11],
		BuyTwoApply:           fields[12],
		BuyTwoPrice:           fields[13],
		BuyThreeApply:         fields[14],
		BuyThreePrice:         fields[15],
		BuyFourApply:          fields[16],
		BuyFourPrice:          fields[17],
		BuyFiveApply:          fields[18],
		BuyFivePrice:          fields[19],
		SellOneApply:          fields[20],
		SellOnePrice:          fields[21],
		SellTwoApply:          fields[22],
		SellTwoPrice:          fields[23],
		SellThreeApply:        fields[24],
		SellThreePrice:        fields[25],
		SellFourApply:         fields[26],
		SellFourPrice:         fields[27],
		SellFiveApply:         fields[28],
		SellFivePrice:         fields[29],
		Date:                  fields[30],
		Time:                  fields[31],
	}
}

// Row returns the quote as a CSV record in QuoteHeader order.
func (q Quote) Row() []string {
	return []string{
		q.Ticker, q.Name,
		q.TodayOpeningPrice, q.YesterdayClosingPrice, q.CurrentPrice,
		q.TodayMaxPrice, q.TodayMinPrice,
		q.MaxBuyPrice, q.MinSellPrice,
		q.SharesOfTraded, q.AmountOfTraded,
		q.BuyOneApply, q.BuyOnePrice,
		q.BuyTwoApply, q.BuyTwoPrice,
		q.BuyThreeApply, q.BuyThreePrice,
		q.BuyFourApply, q.BuyFourPrice,
		q.BuyFiveApply, q.BuyFivePrice,
		q.SellOneApply, q.SellOnePrice,
		q.SellTwoApply, q.SellTwoPrice,
		q.SellThreeApply, q.SellThreePrice,
		q.SellFourApply, q.SellFourPrice,
		q.SellFiveApply, q.SellFivePrice,
		q.Date, q.Time,
	}
}

// ---------------------------------------------------------------------------
// BasicInfo — one row of the basic-info cache
// ---------------------------------------------------------------------------

// BasicInfo holds the fundamental data for one stock, loaded once from the
// basic-info cache CSV. Read-only after universe construction.
type BasicInfo struct {
	Code                   string // numeric code, no exchange prefix
	Name                   string
	NetProfit              string
	TotalMarketValue       string
	CirculatingMarketValue string
	Industry               string
	PER                    string // price-earnings ratio
	PBR                    string // price-book ratio
	ROE                    string
	GrossMargin            string
	NetMargin              string
	BoardCode              string
}

// ---------------------------------------------------------------------------
// Ticker code helpers
// ---------------------------------------------------------------------------

// WithPrefix zero-pads a numeric stock code to six digits and prepends its
// exchange prefix: codes starting with 600/601/603/605/688/900 → sh, codes
// starting with 8/43 → bj, everything else → sz.
func WithPrefix(code string) string {
	for len(code) < 6 {
		code = "0" + code
	}
	for _, p := range shanghaiPrefixes {
		if strings.HasPrefix(code, p) {
			return ExchangeShanghai + code
		}
	}
	for _, p := range beijingPrefixes {
		if strings.HasPrefix(code, p) {
			return ExchangeBeijing + code
		}
	}
	return ExchangeShenzhen + code
}

// ValidPrefix reports whether a prefixed ticker starts with a known
// exchange marker.
func ValidPrefix(ticker string) bool {
	return strings.HasPrefix(ticker, ExchangeShenzhen) ||
		strings.HasPrefix(ticker, ExchangeShanghai) ||
		strings.HasPrefix(ticker, ExchangeBeijing)
}

// IsBadName reports whether a stock name marks it as delisted, under
// special treatment, or newly listed — all excluded from the universe.
func IsBadName(name string) bool {
	for _, marker := range badNameMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}
