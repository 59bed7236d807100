// Package prefs is a small persistent key/value store for tool
// preferences.
//
// Values are typed on access (Int, Float, Bool, String) and every getter
// takes the default to return when a key is missing or holds a value of
// another kind. [File] keeps the values in a YAML document on disk; [New]
// returns an in-memory store for tests and one-shot runs.
package prefs
