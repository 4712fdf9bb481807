// Package parser turns command lines such as `BorrowBook(5, 10, 1)` into circulation operations.
//
// Supported commands:
//
//	InsertBook(id, "title", "author", "Yes"|"No")
//	PrintBook(id)
//	PrintBooks(from, to)
//	BorrowBook(patron, id, priority)
//	ReturnBook(patron, id)
//	DeleteBook(id)
//	FindClosestBook(id)
//	ColorFlipCount()
//	Quit()
//
// Command names are case-sensitive. Quoted arguments keep their spaces and commas.
package parser
