// Package catalog holds the records of the library keyed by their unique integer id.
//
// The Catalog is the source of truth for whether a record exists and what state it is in.
// Every Record owns its WaitList; removing the Record drops the WaitList with it.
package catalog
