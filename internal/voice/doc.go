// Package voice turns recognized speech into discrete navigation commands.
//
// Normalize folds a transcript (lowercase, diacritics stripped via NFD,
// trimmed). MatchIntent scans an ordered list of keyword sets and returns the
// first intent with a keyword contained in the text, or contained by it. No
// scoring, no fuzzy matching; no match is a silent no-op.
//
// Listener keeps a Recognizer session running while listening is on,
// restarting it whenever the session ends or fails, and hands the buffered
// transcript to a Handler. A handled transcript clears the buffer so the same
// words do not trigger twice.
package voice
