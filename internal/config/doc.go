// Package config provides configuration structures and utilities for
// facultyscan. It defines the crawl seed, target page detection, record
// extraction, HTTP and storage settings, and report preferences, together
// with the .facultyscan YAML file that can set any of them.
package config
