// Package files provides file-related functionality organized into sub-packages.
//
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - scanner: Sequence discovery over a filesystem
//
// # Usage
//
//	fileScanner, err := scanner.NewScanner(cfg)
//	seqs, err := fileScanner.Sequences("./renders")
//	seq, err := fileScanner.Resolve("./renders/shot.%04d.exr")
package files
