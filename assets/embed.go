// Package assets holds data compiled into the binary.
package assets

import _ "embed"

// wordsJSON is the built-in word list used when no other source is reachable.
//
//go:embed words.json
var wordsJSON []byte

// Words returns the raw built-in word list (a JSON array of {"word","meaning"}).
func Words() []byte {
	return wordsJSON
}
