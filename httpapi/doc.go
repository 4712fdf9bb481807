// Package httpapi exposes a circulation.Sequencer over HTTP with fiber.
//
// Routes:
//
//	POST /operations            body is one command line, e.g. BorrowBook(5, 10, 1)
//	GET  /records/:id           snapshot of one record
//	GET  /records?from=&to=     snapshots of a range of records
//	GET  /records/:id/nearest   exact record or its nearest neighbors
//	GET  /flip-count            current flip count
//
// Every response is JSON. Operation responses include the text the batch runner would print.
package httpapi
