package feed

import (
	"fmt"
	"strings"

	"cnquotes/internal/domain"
)

// ParseLine parses one line of the feed response, of the form
//
//	var hq_str_<ticker>="<field>,<field>,...";
//
// It returns (nil, nil) for empty lines and for tickers with no current
// data (the feed answers those with an empty quoted payload), a Quote for
// well-formed lines, and an error for structurally broken lines. An error
// is scoped to the single line and must never abort sibling lines.
func ParseLine(line string) (*domain.Quote, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	eq := strings.Index(line, "=")
	if eq < 0 {
		return nil, fmt.Errorf("no assignment in line %q", line)
	}
	left, data := line[:eq], line[eq+1:]

	// The last 8 characters left of '=' are the prefixed ticker.
	if len(left) < 8 {
		return nil, fmt.Errorf("line %q too short for a ticker", line)
	}
	ticker := left[len(left)-8:]
	if !domain.ValidPrefix(ticker) {
		return nil, fmt.Errorf("unknown exchange prefix in ticker %q", ticker)
	}

	// `"";` is what the feed sends for a ticker without data: not an error,
	// just no result.
	if len(data) <= 3 {
		return nil, nil
	}

	payload := strings.TrimSuffix(data, ";")
	if len(payload) < 2 || payload[0] != '"' || payload[len(payload)-1] != '"' {
		return nil, fmt.Errorf("payload not quote-delimited in line %q", line)
	}
	payload = payload[1 : len(payload)-1]

	fields := strings.Split(payload, ",")
	if len(fields) < domain.QuoteFieldCount {
		return nil, fmt.Errorf("line for %s has %d fields, want %d", ticker, len(fields), domain.QuoteFieldCount)
	}
	// The feed sends more fields than we consume; the rest carry no meaning.
	q := domain.NewQuote(ticker, fields[:domain.QuoteFieldCount])
	return &q, nil
}

// ParseResponse parses a full multi-line response body. Line order is
// preserved in the result. Lines that fail to parse are counted and
// skipped; lines with no data are skipped silently.
func ParseResponse(body string) (quotes []domain.Quote, badLines int) {
	for _, line := range strings.Split(body, "\n") {
		q, err := ParseLine(line)
		if err != nil {
			badLines++
			continue
		}
		if q != nil {
			quotes = append(quotes, *q)
		}
	}
	return quotes, badLines
}
