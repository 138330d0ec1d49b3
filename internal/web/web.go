package web

import (
	_ "embed"
)

//go:embed index.html
var formPage []byte

// FormPage is the static submission form served at GET /.
func FormPage() []byte {
	return formPage
}
