// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// Listing, globbing and walking go through FileSystemProvider; copy and move
// additionally need WritableFileSystem. Both are implemented for the OS and
// in memory, so scanners and transfers can be tested without touching disk.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
