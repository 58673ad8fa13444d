// Package exam generates exams, runs them against a countdown and submits
// the answers. When the countdown runs out the answers given so far are
// submitted automatically. Nothing about a running exam is persisted.
package exam
