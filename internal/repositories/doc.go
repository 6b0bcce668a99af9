// Package repositories implements SQLite persistence for review state.
//
// Key Implementations:
//   - [KeepStore] : the keyed decision store; track IDs the user chose to
//     always keep live as a JSON array under the "keep" key
//   - [RemovalLog] : append-only audit of committed removals per session
//
// The keep store is deliberately forgiving on the read side: missing or
// malformed rows yield an empty cache so a damaged database never blocks a
// review run. Writes report errors but callers treat them as warnings.
package repositories
