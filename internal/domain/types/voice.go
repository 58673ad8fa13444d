package types

import "time"

// Intent is a discrete command recognized from speech.
type Intent string

// String returns the string form of the intent.
func (i Intent) String() string { return string(i) }

// Screen names a place in the client's navigation.
type Screen string

// String returns the string form of the screen.
func (s Screen) String() string { return string(s) }

// KeywordSet binds an intent to the phrases that trigger it.
type KeywordSet struct {
	Intent   Intent   `json:"intent" mapstructure:"intent"`
	Keywords []string `json:"keywords" mapstructure:"keywords"`
}

// Command is one evaluated utterance, matched or not.
type Command struct {
	Transcript string    `json:"transcript"`
	Normalized string    `json:"normalized"`
	Screen     Screen    `json:"screen"`
	Intent     Intent    `json:"intent,omitempty"`
	Topic      string    `json:"topic,omitempty"`
	At         time.Time `json:"at"`
}

// Matched reports whether the utterance resolved to an intent.
func (c Command) Matched() bool { return c.Intent != "" }
