// Package validate performs the client-side required-field checks done before
// a payload is sent to the backend. Messages are translated (es, en) and keyed
// by the JSON field name so they can be shown next to the offending input.
package validate
