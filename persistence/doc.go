// Package persistence is the durable tier of the reading cache.
//
// A Store keeps two tables in one SQLite file: works, keyed by the work id,
// and content, keyed by the namespaced cache key with a JSON payload. Rows
// never expire; they stay until overwritten or cleared.
//
// The file is opened lazily by the first operation. Opening reads
// PRAGMA user_version and, when the file predates SchemaVersion, creates both
// tables and stamps the version inside one transaction.
//
// Every database failure is a *StorageError that matches ErrStorageUnavailable,
// so callers can treat the tier as optional:
//
//	var text library.AnalysisText
//	err := store.GetContent(ctx, key, &text)
//	switch {
//	case errors.Is(err, persistence.ErrNotFound):
//		// miss
//	case errors.Is(err, persistence.ErrStorageUnavailable):
//		// log and fall through to the provider
//	}
package persistence
