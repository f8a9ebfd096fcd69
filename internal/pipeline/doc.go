// Package pipeline runs a facultyscan job as a sequence of steps.
//
// A crawl run is CrawlStep, ExtractStep and StoreStep. Re-extraction from
// the page store swaps the crawl for LoadPageStep, and extraction from
// local files uses FilesStep, which fans the files out over a
// BatchProcessor. Every step receives the shared Run and records its
// outcome in Run.Report.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. The three entry points share the extract and store steps unchanged
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context between steps
package pipeline
