// Package report renders circulation results in the plain text format of the batch output file.
package report
