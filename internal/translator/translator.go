package translator

import (
	"errors"
	"fmt"
	"io"

	"github.com/iley/hackvm/internal/asm"
	"github.com/iley/hackvm/internal/codegen"
	"github.com/iley/hackvm/internal/lexer"
	"github.com/iley/hackvm/internal/parser"
)

// Source is one VM translation unit. Name is the file's base name without
// the extension; it qualifies the unit's static symbols. Path is the full
// input path used in diagnostics; it falls back to Name when empty.
type Source struct {
	Name   string
	Path   string
	Reader io.Reader
}

type Options struct {
	// Bootstrap controls whether the output starts with the stack setup and
	// the Sys.init call. Disable it for translating library fragments that
	// are linked into a bootstrapped program elsewhere.
	Bootstrap bool
}

// Translate runs all sources through a single code generator, in the order
// given, and renders the combined assembly to out. The generator's label
// counters span the whole run, which keeps generated labels unique across
// source boundaries. The first fault aborts the run; nothing is written to
// out unless every source translates cleanly.
func Translate(out io.Writer, sources []Source, opts Options) error {
	if len(sources) == 0 {
		return errors.New("no input sources")
	}

	gen := codegen.New()
	if opts.Bootstrap {
		gen.WriteBootstrap()
	}

	for _, src := range sources {
		if err := translateSource(gen, src); err != nil {
			return err
		}
	}

	asm.Format(out, gen.Instructions())
	return nil
}

func translateSource(gen *codegen.Generator, src Source) error {
	gen.SetFile(src.Name)

	path := src.Path
	if path == "" {
		path = src.Name
	}

	lex := lexer.New(src.Reader, path)
	for {
		line, err := lex.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		cmd, err := parser.ParseLine(line)
		if err != nil {
			return err
		}

		if err := gen.Generate(cmd); err != nil {
			return fmt.Errorf("generating code: %w", err)
		}
	}
}
