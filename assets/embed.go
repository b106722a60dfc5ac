// Package assets embeds the default word lists and the SQLite migrations.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed words/*.txt
var wordsFS embed.FS

//go:embed sql/*.sql
var sqlFS embed.FS

// Words returns the embedded category lists, one <category>.txt per category.
func Words() fs.FS {
	sub, err := fs.Sub(wordsFS, "words")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migrations returns the embedded *.sql migrations, applied in lexical order.
func Migrations() fs.FS {
	sub, err := fs.Sub(sqlFS, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}
