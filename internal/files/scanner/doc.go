// Package scanner finds file sequences on a filesystem.
//
// The scanner package is responsible for:
//   - Listing a directory or glob and grouping the result into sequences
//   - Walking a directory tree and grouping each directory's files
//   - Resolving a glob or a "%04d" pattern string to a single sequence
//
// The scanner is designed to be filesystem-agnostic through the use of
// filesystem.FileSystemProvider interface, enabling both production use
// with the OS filesystem and testing with in-memory filesystems.
package scanner
