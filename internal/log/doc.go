// Package log builds the application logger on top of log/slog and keeps
// credentials out of log output.
//
// Crawls can be configured with request headers (a session cookie for a
// staff-only directory, say) and the PostgreSQL store takes a DSN that
// usually carries a password. Both end up in log attributes. The
// RedactHandler masks them:
//   - credential keys (authorization, cookie, dsn, password, token, ...)
//   - token-shaped values (JWT, Bearer, Basic)
//   - the password part of URLs and key/value DSNs, keeping the host
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, log.Options{Verbose: true})
//	slog.SetDefault(logger)
//
//	logger.Info("database opened", "dsn", "postgres://app:s3cret@db/faculty")
//	// dsn=postgres://app:***REDACTED***@db/faculty
package log
