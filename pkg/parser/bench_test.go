package parser_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/mdtree/pkg/mdast"
	"github.com/yaklabco/mdtree/pkg/parser"
)

var benchDoc = strings.Repeat(`# Heading

A paragraph with *emphasis*, **strong text**, a [link](https://example.com),
and some `+"`inline code`"+`.

> A blockquote with a lazy
continuation line.

- first item
- second item with *nested emphasis*
  - a sub item

`+"```go\npackage main\n\nfunc main() {}\n```"+`

[ref]: https://example.com/ref "Reference"

Text using [ref] and [another][ref].

`, 20)

func BenchmarkParse(b *testing.B) {
	for range b.N {
		if _, err := parser.Parse(benchDoc); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse_EmphasisHeavy(b *testing.B) {
	src := strings.Repeat("*a* **b** ***c*** *d**e*f ", 400)
	b.ResetTimer()
	for range b.N {
		if _, err := parser.Parse(src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSerialize(b *testing.B) {
	doc, err := parser.Parse(benchDoc)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for range b.N {
		_ = mdast.Serialize(doc.Root)
	}
}
