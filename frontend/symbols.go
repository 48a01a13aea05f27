package frontend

import (
	"sync"

	"github.com/broady/typeormlint/tsast"
)

// SymbolTable resolves type references against the declarations of a
// set of files. Names are global across files; the first declaration
// of a name wins.
type SymbolTable struct {
	mu      sync.RWMutex
	aliases map[string]*tsast.TypeAlias
	names   map[string]bool
}

var _ tsast.Checker = (*SymbolTable)(nil)

// NewSymbolTable returns a table populated from files.
func NewSymbolTable(files ...*tsast.File) *SymbolTable {
	t := &SymbolTable{
		aliases: make(map[string]*tsast.TypeAlias),
		names:   make(map[string]bool),
	}
	for _, f := range files {
		t.Add(f)
	}
	return t
}

// Add records the declarations of f.
func (t *SymbolTable) Add(f *tsast.File) {
	if f == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, a := range f.Aliases {
		if _, ok := t.aliases[a.Name]; !ok && !t.names[a.Name] {
			t.aliases[a.Name] = a
		}
	}
	for _, name := range f.TypeNames {
		if _, ok := t.aliases[name]; !ok {
			t.names[name] = true
		}
	}
}

// ResolveReference implements tsast.Checker. Generic aliases are
// instantiated when the argument count matches the parameter count.
func (t *SymbolTable) ResolveReference(ref *tsast.Reference) (tsast.Symbol, bool) {
	if t == nil || ref == nil {
		return tsast.Symbol{}, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if a, ok := t.aliases[ref.Name]; ok {
		typ := a.Type
		if len(a.Params) > 0 {
			if len(a.Params) != len(ref.TypeArgs) {
				return tsast.Symbol{}, false
			}
			bind := make(map[string]tsast.TypeNode, len(a.Params))
			for i, p := range a.Params {
				bind[p] = ref.TypeArgs[i]
			}
			typ = substitute(typ, bind, 0)
		}
		return tsast.Symbol{Name: a.Name, Type: typ}, true
	}
	if t.names[ref.Name] {
		return tsast.Symbol{Name: ref.Name}, true
	}
	return tsast.Symbol{}, false
}

func substitute(n tsast.TypeNode, bind map[string]tsast.TypeNode, depth int) tsast.TypeNode {
	if n == nil || depth > maxWalkDepth {
		return n
	}
	switch n := n.(type) {
	case *tsast.Reference:
		if len(n.TypeArgs) == 0 {
			if b, ok := bind[n.Name]; ok {
				return b
			}
			return n
		}
		args := make([]tsast.TypeNode, len(n.TypeArgs))
		for i, a := range n.TypeArgs {
			args[i] = substitute(a, bind, depth+1)
		}
		return tsast.NewReference(n.Span(), n.Name, args...)
	case *tsast.Array:
		return tsast.NewArray(n.Span(), substitute(n.Element, bind, depth+1))
	case *tsast.Union:
		members := make([]tsast.TypeNode, len(n.Members))
		for i, m := range n.Members {
			members[i] = substitute(m, bind, depth+1)
		}
		return tsast.NewUnion(n.Span(), members...)
	case *tsast.Parenthesized:
		return tsast.NewParenthesized(n.Span(), substitute(n.Inner, bind, depth+1))
	default:
		return n
	}
}
