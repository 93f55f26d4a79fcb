// Package config resolves the frameseq.Config used by the command line tool.
//
// Sources, lowest precedence first: built-in defaults, frameseq.yaml, a .env
// file in the working directory, files named with --env-file, and the
// process environment. Command flags are applied on top by the cli package.
package config
