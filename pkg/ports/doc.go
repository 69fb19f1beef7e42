/*
Package ports defines the driven ports (interfaces) of the functree generator.

These interfaces decouple fixture generation from the places fixtures end up,
so the same corpus logic works with an in-memory map or a Redis server.

# Key Interfaces

  - CorpusStore: persists fixtures by their content-derived ID.

RunCorpusStoreContract is a shared test suite every CorpusStore adapter runs.
*/
package ports
