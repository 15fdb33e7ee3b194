package lang

import (
	"github.com/smacker/go-tree-sitter/javascript"
)

func init() {
	Languages["javascript"] = &Language{
		Name:      "javascript",
		QueryKind: QueryDeclarator,
		lang:      javascript.GetLanguage(),
	}
}
