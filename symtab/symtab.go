// Package symtab loads plain-text symbol listings and demangles their
// entries on demand.
package symtab

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"
	"sync"

	"github.com/skdltmxn/borland-go/demangle"
)

// Symbol is one entry of a symbol listing.
type Symbol struct {
	name          string
	demangledName string
	demangledOnce sync.Once
	ok            bool
}

// Name returns the raw (possibly mangled) symbol name.
func (s *Symbol) Name() string { return s.name }

// DemangledName returns the demangled name. Names that do not demangle
// are returned unchanged, as opaque symbols.
func (s *Symbol) DemangledName() string {
	s.demangle()
	return s.demangledName
}

// IsMangled reports whether the raw name carries the mangling sigil.
func (s *Symbol) IsMangled() bool {
	return demangle.IsMangled(s.name)
}

// Demangles reports whether the raw name demangles successfully.
func (s *Symbol) Demangles() bool {
	s.demangle()
	return s.ok
}

func (s *Symbol) demangle() {
	s.demangledOnce.Do(func() {
		name, err := demangle.Demangle(s.name)
		if err != nil {
			s.demangledName = s.name
			return
		}
		s.demangledName = name
		s.ok = true
	})
}

// Table holds the symbols of one listing in input order.
type Table struct {
	symbols []*Symbol
}

// Load reads a symbol listing with one raw symbol per line. Blank lines
// and lines starting with '#' are skipped; on lines with multiple
// whitespace-separated fields the last field is taken as the name, which
// accepts common nm-style listings unchanged.
func Load(r io.Reader) (*Table, error) {
	t := &Table{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		name := fields[len(fields)-1]
		t.symbols = append(t.symbols, &Symbol{name: name})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("symtab: failed to read listing: %w", err)
	}

	return t, nil
}

// Len returns the number of symbols in the table.
func (t *Table) Len() int {
	return len(t.symbols)
}

// All iterates over all symbols in input order.
func (t *Table) All() iter.Seq[*Symbol] {
	return func(yield func(*Symbol) bool) {
		for _, s := range t.symbols {
			if !yield(s) {
				return
			}
		}
	}
}

// Mangled iterates over the symbols that carry the mangling sigil.
func (t *Table) Mangled() iter.Seq[*Symbol] {
	return func(yield func(*Symbol) bool) {
		for _, s := range t.symbols {
			if !s.IsMangled() {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}
