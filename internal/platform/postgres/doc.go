// Package postgres provides the PostgreSQL implementations of the store
// interfaces. All stores run on a store.DBTX, so they work identically on
// a *sql.DB pool and inside a *sql.Tx; WithTx rebinds a store to an open
// transaction. Database errors are normalized through MapError so callers
// only ever see the sentinel errors defined in the store package.
package postgres
