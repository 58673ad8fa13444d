// Package navigation turns voice transcripts into moves between screens.
//
// The service keeps a stack of screens rooted at home. Each transcript is
// normalized and matched against the keyword sets of the current screen;
// a match pushes, pops or opens a topic, and every evaluation is written to
// the command history.
package navigation
