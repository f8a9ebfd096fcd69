// Package crawler finds the faculty listing page by crawling a site
// breadth-first from a seed URL.
//
// # Architecture
//
// The Engine owns a FIFO frontier and a visited set for the duration of
// one run. Each dequeued URL is fetched, handed to the PageStore, parsed
// and checked by the TargetDetector. A match ends the run at once and the
// rest of the frontier is dropped. Any other page contributes its links,
// filtered by the LinkExtractor, to the back of the frontier.
//
// Design decision: The engine does not use a crawling framework because:
//  1. Stopping at the first matching page needs control of the queue
//  2. Breadth-first order must be exact so the stop point is repeatable
//  3. Only one request is ever in flight
//
// # Components
//
//   - Engine: the crawl loop and its terminal states
//   - Fetcher / HTTPFetcher: HTTP retrieval with gzip, deflate and brotli decoding
//   - LinkExtractor: origin-relative link resolution and suffix filter
//   - TargetDetector: marked heading and phrase test
//   - URLSet: insertion-ordered URL set
//
// # Unavailable pages
//
// A page that fails to download, answers with a non-2xx status or is not
// HTML is logged and skipped. It is not marked visited, but it is not
// fetched again in the same run either.
//
// # Usage
//
//	fetcher := crawler.NewHTTPFetcher(crawler.WithTimeout(30 * time.Second))
//	detector := crawler.NewTargetDetector("cpp-h1", "Permanent Faculty")
//	engine, err := crawler.NewEngine(seed, fetcher, detector, crawler.WithPageStore(db))
//	if err != nil {
//	    return err
//	}
//	result, err := engine.Run(ctx)
package crawler
