package cmd

import (
	"fmt"

	"github.com/go-joy/joy/internal/lexer"
	"github.com/go-joy/joy/internal/reader"
	"github.com/go-joy/joy/internal/token"
)

// dumpTokenStream prints every token the lexer produces for src, one per
// line. A debugging aid for inspecting the lexer/reader pipeline.
func dumpTokenStream(src, name string) {
	l := lexer.New(src, lexer.WithFile(name))
	for {
		tok := l.Next()
		fmt.Println(tok.String())
		if tok.Type == token.EOF {
			return
		}
	}
}

// dumpPhrases prints the reader's parsed phrases for src: definition sets
// render as "name == body ;" lines, term sequences render as their list
// literal form.
func dumpPhrases(src, name string) {
	r := reader.New(src, name)
	phrases, err := r.ReadProgram()
	for _, p := range phrases {
		if p.IsDefinitions() {
			for _, d := range p.Definitions {
				fmt.Printf("%s == %s ;\n", d.Name, d.Body.String())
			}
			continue
		}
		fmt.Println(p.Terms.String())
	}
	if err != nil {
		fmt.Println("parse error:", err)
	}
}
