// Package commands defines the organo CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login, logout, whoami   Manage the signed-in session
//   - subjects, groups        Browse and edit subjects and their groups
//   - topics, epigraphs       Browse and edit the topics of a subject
//   - concepts, questions     Browse and edit the content of a topic
//   - outline                 Print every topic of a subject with its concepts
//   - exam                    Generate an exam or take one against the clock
//   - analytics               Show exam results for a subject
//   - backups, invite         Administrative operations
//   - voice                   Navigate with spoken commands read from a transcript source
//   - history                 Show recorded voice commands and backend calls
//
// # Implementation
//
// The root command loads the configuration from the home directory and builds
// the dependency graph (stores, session manager, backend client, services,
// history database) before any subcommand runs. Errors reaching the root are
// printed as short messages by category; the full chain goes to the log.
package commands
