// Package core contains the domain events emitted by the circulation of catalogued records.
//
// Events are plain structs built from scalars with Build* factories. They describe what happened,
// they are never read back to rebuild state.
package core
