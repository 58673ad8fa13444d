// Package content serves the subject hierarchy to both command surfaces.
// Teacher writes go straight to the backend; the student outline is
// assembled here from concurrent per-topic fetches.
package content
