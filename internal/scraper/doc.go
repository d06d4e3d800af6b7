// Package scraper fetches the danskhaandbold.dk TV programme page and
// flattens it into the text lines the schedule parser consumes.
//
// The page is client-side rendered and lazy-loads listings on scroll, so a
// plain HTTP GET returns an empty shell. The scraper drives headless Chromium
// instead: navigate, wait for the body, nudge the scroll position, then take
// the rendered DOM. Failed renders are retried with exponential backoff.
package scraper
