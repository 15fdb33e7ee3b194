package lang

import (
	"github.com/smacker/go-tree-sitter/ruby"
)

func init() {
	// No dedicated QueryKind: ruby exercises the default assignment-style
	// template, which its grammar shares with python's shape.
	Languages["ruby"] = &Language{
		Name: "ruby",
		lang: ruby.GetLanguage(),
	}
}
