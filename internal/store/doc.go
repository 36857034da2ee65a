// Package store defines the persistence interfaces of the LingoFlow API:
// stores for users, catalog words, vocabulary entries and review records,
// plus the best-effort Cache interface backing the review queue snapshot.
//
// Implementations live under internal/platform (postgres, redis). Stores
// expose WithTx so a service can run multiple operations inside one
// database transaction; RunInTransaction owns the begin/commit/rollback
// lifecycle.
package store
