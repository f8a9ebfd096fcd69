// Package main provides the entry point for the facultyscan CLI.
//
// facultyscan crawls a department website breadth-first until it finds the
// faculty listing page, stores every page it fetched, extracts one record
// per faculty member and replaces the stored record set with the result.
//
// Usage:
//
//	facultyscan crawl [seed-url]
//	facultyscan extract [html-file...]
//	facultyscan records
//
// See --help for all available options.
package main

// main is the entry point for facultyscan.
func main() {
	Execute()
}
