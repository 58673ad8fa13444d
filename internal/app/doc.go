// Package app loads the CLI configuration and wires application
// dependencies.
//
// Configuration comes from config.yaml in the organo home directory (written
// with defaults on first run), an optional .env file next to it, and
// ORGANO_-prefixed environment variables, in increasing order of precedence.
// NewWire builds the stores, session manager, backend client, history
// database and services from it, exposing them via the Wire struct for
// commands to use.
package app
