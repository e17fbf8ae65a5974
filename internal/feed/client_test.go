package feed

import (
	"context"
	"testing"
	"time"

	"github.com/h2non/gock"

	"cnquotes/internal/util"
)

const feedHost = "https://hq.sinajs.cn"

func newTestClient() *Client {
	c := NewClient(feedHost+"/list=", 3*time.Second)
	gock.InterceptClient(c.HTTPClient)
	return c
}

func TestFetch(t *testing.T) {
	defer gock.Off()

	gock.New(feedHost).
		Get("/list=").
		Reply(200).
		BodyString(sampleLine + "\n")

	c := newTestClient()
	body, err := c.Fetch(context.Background(), []string{"bj836826"})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	quotes, _ := ParseResponse(body)
	if len(quotes) != 1 || quotes[0].Ticker != "bj836826" {
		t.Fatalf("unexpected quotes: %+v", quotes)
	}
}

func TestFetchBadStatus(t *testing.T) {
	defer gock.Off()

	gock.New(feedHost).
		Get("/list=").
		Reply(456).
		BodyString("Forbidden")

	c := newTestClient()
	if _, err := c.Fetch(context.Background(), []string{"sh600345"}); err == nil {
		t.Fatal("Fetch should fail on a non-200 status")
	}
}

func TestFetchFailureSentinel(t *testing.T) {
	defer gock.Off()

	gock.New(feedHost).
		Get("/list=").
		Reply(200).
		BodyString("FAILED")

	c := newTestClient()
	if _, err := c.Fetch(context.Background(), []string{"sh600345"}); err == nil {
		t.Fatal("Fetch should fail on the failure sentinel")
	}
}

func TestFetchSendsBrowserHeaders(t *testing.T) {
	defer gock.Off()

	gock.New(feedHost).
		Get("/list=").
		MatchHeader("Referer", "https://finance.sina.com.cn").
		MatchHeader("Accept", `\*/\*`).
		Reply(200).
		BodyString(sampleLine)

	c := newTestClient()
	if _, err := c.Fetch(context.Background(), []string{"bj836826"}); err != nil {
		t.Fatalf("Fetch with header match returned error: %v", err)
	}
}

// Two transient failures followed by a success must yield the result
// exactly once.
func TestFetchRetriesThenSucceeds(t *testing.T) {
	defer gock.Off()

	gock.New(feedHost).Get("/list=").Reply(502).BodyString("bad gateway")
	gock.New(feedHost).Get("/list=").Reply(200).BodyString("FAILED")
	gock.New(feedHost).Get("/list=").Reply(200).BodyString(sampleLine)

	c := newTestClient()

	var body string
	successes := 0
	err := util.Retry(context.Background(), 3, 0, func() error {
		text, err := c.Fetch(context.Background(), []string{"bj836826"})
		if err != nil {
			return err
		}
		body = text
		successes++
		return nil
	})
	if err != nil {
		t.Fatalf("Retry returned error: %v", err)
	}
	if successes != 1 {
		t.Errorf("fetch succeeded %d times, want exactly 1", successes)
	}
	quotes, _ := ParseResponse(body)
	if len(quotes) != 1 {
		t.Errorf("parsed %d quotes from final attempt, want 1", len(quotes))
	}
}

func TestFetchRetriesExhausted(t *testing.T) {
	defer gock.Off()

	for i := 0; i < 3; i++ {
		gock.New(feedHost).Get("/list=").Reply(502).BodyString("bad gateway")
	}

	c := newTestClient()
	attempts := 0
	err := util.Retry(context.Background(), 3, 0, func() error {
		attempts++
		_, err := c.Fetch(context.Background(), []string{"sh600345"})
		return err
	})
	if err == nil {
		t.Fatal("Retry should surface the final fetch error")
	}
	if attempts != 3 {
		t.Errorf("fetch attempted %d times, want 3", attempts)
	}
}
