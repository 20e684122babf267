// Package logger provides the structured logging interface used across icons8dl.
//
// It wraps zerolog and is always constructed explicitly and handed to the
// components that need it; there is no package-level logger.
//
//	log, err := logger.New(&cfg.Logging)
//	if err != nil {
//	    return err
//	}
//	defer logger.Close(log)
//
//	fetcher := catalog.NewFetcher(client, cache, catalog.Options{}, log.WithField("component", "catalog"))
//
// A download run writes JSON records to download-log-YYYYMMDD-HHMMSS.log in the
// target directory (see RunLogFileName). Setting Console mirrors them to stderr
// in a human readable form.
//
// Tests use NewTestLogger to capture messages, or NewNopLogger to discard them.
package logger
