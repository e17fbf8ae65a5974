package feed

import (
	"strings"
	"testing"
)

const sampleLine = `var hq_str_bj836826="盖世食品,8.320,8.290,8.250,8.320,8.210,8.210,8.250,32277,265894.070,867,8.210,3463,8.200,500,8.190,9611,8.160,614,8.150,5718,8.250,1720,8.290,58209,8.300,2100,8.320,4740,8.340,2023-04-13,15:30:11,00,18.9312,0.0000,0,10065940,B,T";`

func TestParseLine(t *testing.T) {
	q, err := ParseLine(sampleLine)
	if err != nil {
		t.Fatalf("ParseLine returned error: %v", err)
	}
	if q == nil {
		t.Fatal("ParseLine returned no quote")
	}
	if q.Ticker != "bj836826" {
		t.Errorf("Ticker = %q, want bj836826", q.Ticker)
	}
	if q.Name != "盖世食品" {
		t.Errorf("Name = %q", q.Name)
	}
	if q.TodayOpeningPrice != "8.320" || q.CurrentPrice != "8.250" {
		t.Errorf("prices = %q/%q", q.TodayOpeningPrice, q.CurrentPrice)
	}
	if q.SellFivePrice != "8.340" {
		t.Errorf("SellFivePrice = %q, want 8.340", q.SellFivePrice)
	}
	// Exactly 32 fields are consumed: date and time are the last two,
	// trailing extra fields are discarded.
	if q.Date != "2023-04-13" || q.Time != "15:30:11" {
		t.Errorf("Date/Time = %q/%q", q.Date, q.Time)
	}
}

func TestParseLineNoResult(t *testing.T) {
	for _, line := range []string{
		"",
		"   \t  ",
		`var hq_str_sh600000="";`,
	} {
		q, err := ParseLine(line)
		if err != nil {
			t.Errorf("ParseLine(%q) error = %v, want nil", line, err)
		}
		if q != nil {
			t.Errorf("ParseLine(%q) = %+v, want no result", line, q)
		}
	}
}

func TestParseLineMalformed(t *testing.T) {
	for _, line := range []string{
		"bad string",
		`var hq_str_hk836826="a,b";`, // unknown exchange prefix
		`var hq_str_sh600000="a,b,c";`,            // too few fields
		`var hq_str_sh600000=` + strings.Repeat("x,", 40) + `x;`, // not quote-delimited
	} {
		q, err := ParseLine(line)
		if err == nil {
			t.Errorf("ParseLine(%q) should fail", line)
		}
		if q != nil {
			t.Errorf("ParseLine(%q) returned quote despite error", line)
		}
	}
}

func TestParseResponse(t *testing.T) {
	// Three tickers requested, the second has no data, plus a broken line.
	body := sampleLine + "\n" +
		`var hq_str_sz000001="";` + "\n" +
		"garbage line\n" +
		strings.ReplaceAll(sampleLine, "bj836826", "sh600345") + "\n"

	quotes, badLines := ParseResponse(body)
	if len(quotes) != 2 {
		t.Fatalf("ParseResponse produced %d quotes, want 2", len(quotes))
	}
	if badLines != 1 {
		t.Errorf("badLines = %d, want 1", badLines)
	}
	// Line order is preserved.
	if quotes[0].Ticker != "bj836826" || quotes[1].Ticker != "sh600345" {
		t.Errorf("quotes order = %s, %s", quotes[0].Ticker, quotes[1].Ticker)
	}
}
