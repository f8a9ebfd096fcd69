// Package model defines the core data structures used throughout facultyscan.
//
// This package contains the following main types:
//   - Page: A fetched web page as handed to the page store and detectors
//   - FacultyRecord: One structured record extracted from the target page
//   - Report: The outcome of one run, rendered by the report package
//   - Summary: Completeness counts over a record set
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The crawler, extractor, database and report packages all
// need these types, so centralizing them prevents import cycles.
package model
