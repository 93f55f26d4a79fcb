// Package services holds the operations behind the frameseq commands that
// touch file contents: stat summaries, sequence comparison and copying or
// moving whole sequences.
//
// SequenceService works against a filesystem.WritableFileSystem so every
// operation can be tested on the in-memory filesystem. Transfers ask the
// injected frameseq.Approver before replacing an existing frame and run
// each file operation through a retry executor that only retries transient
// errors such as EBUSY.
package services
