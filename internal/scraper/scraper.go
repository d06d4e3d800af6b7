package scraper

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/chromedp/chromedp"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/handball-tv/internal/schedule"
)

const (
	ScheduleURL = "https://danskhaandbold.dk/tv-program"
	UserAgent   = "handball-tv/1.0 (github.com/pfrederiksen/handball-tv)"
	Timeout     = 90 * time.Second
	MaxRetries  = 2
)

const (
	// listingSelector marks a rendered match card. The page arrives as an
	// empty shell and fills in client-side, so document readiness alone
	// observes a page without listings.
	listingSelector = "main .match-card"

	// viewportWidth and viewportHeight pin a desktop viewport; the mobile
	// layout collapses the programme into a different structure.
	viewportWidth  = 1280
	viewportHeight = 720

	// settleDelay gives client-side rendering time to finish after the
	// scroll nudge below.
	settleDelay = time.Second

	// scrollPixels is how far to scroll to trigger lazy-loaded listings.
	// The full programme fits well within this on every layout seen so far.
	scrollPixels = 4000
)

// Scraper renders the schedule page and extracts its visible text lines.
type Scraper struct {
	url       string
	userAgent string
	timeout   time.Duration
	retries   uint64
}

// New creates a Scraper. Empty or zero arguments fall back to the package
// defaults.
func New(url, userAgent string, timeout time.Duration) *Scraper {
	s := &Scraper{
		url:       url,
		userAgent: userAgent,
		timeout:   timeout,
		retries:   MaxRetries,
	}
	if s.url == "" {
		s.url = ScheduleURL
	}
	if s.userAgent == "" {
		s.userAgent = UserAgent
	}
	if s.timeout <= 0 {
		s.timeout = Timeout
	}
	return s
}

// URL returns the page this scraper targets.
func (s *Scraper) URL() string {
	return s.url
}

// FetchLines renders the schedule page and returns its normalized text
// lines, ready for schedule.Parse.
func (s *Scraper) FetchLines(ctx context.Context) ([]string, error) {
	rendered, err := s.renderHTML(ctx)
	if err != nil {
		return nil, err
	}
	return ExtractLines(strings.NewReader(rendered))
}

// renderHTML drives headless Chromium with retries. Each attempt gets a
// fresh browser context; a timed-out one cannot be reused.
func (s *Scraper) renderHTML(ctx context.Context) (string, error) {
	var rendered string
	render := func() error {
		var err error
		rendered, err = s.renderOnce(ctx)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.retries), ctx)
	if err := backoff.Retry(render, policy); err != nil {
		return "", fmt.Errorf("rendering %s: %w", s.url, err)
	}
	return rendered, nil
}

func (s *Scraper) renderOnce(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.UserAgent(s.userAgent))
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var rendered string
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		chromedp.Navigate(s.url),
		chromedp.WaitVisible(listingSelector, chromedp.ByQuery),
		chromedp.Evaluate(fmt.Sprintf("window.scrollBy(0, %d)", scrollPixels), nil),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &rendered, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", s.url, err)
	}
	return rendered, nil
}

// ExtractLines flattens an HTML document into its visible text lines, one
// line per text node, normalized and with empties dropped. Script, style and
// noscript bodies are not visible text and are skipped.
func ExtractLines(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			lines = append(lines, strings.Split(n.Data, "\n")...)
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range doc.Nodes {
		walk(root)
	}

	return schedule.NormalizeLines(lines), nil
}
