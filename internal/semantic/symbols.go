package semantic

import (
	"monkey/token"
)

type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolParameter
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolParameter:
		return "parameter"
	}
	return "variable"
}

type Symbol struct {
	Name string
	Kind SymbolKind
	Span token.Span // the name in its first binding

	Used bool

	// ready is set once the binding's value has been analyzed. Names in
	// the current scope can only be used after that point.
	ready bool
}

// SymbolTable is one function scope. If blocks share the scope of the
// function around them.
type SymbolTable struct {
	symbols map[string]*Symbol
	order   []*Symbol
	parent  *SymbolTable
}

func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		symbols: make(map[string]*Symbol),
		parent:  parent,
	}
}

// Define binds name in this scope. Redefining a name keeps the first
// symbol.
func (st *SymbolTable) Define(name string, kind SymbolKind, span token.Span) *Symbol {
	if symbol, exists := st.symbols[name]; exists {
		return symbol
	}
	symbol := &Symbol{
		Name: name,
		Kind: kind,
		Span: span,
	}
	st.symbols[name] = symbol
	st.order = append(st.order, symbol)
	return symbol
}

func (st *SymbolTable) Lookup(name string) *Symbol {
	if symbol, exists := st.symbols[name]; exists {
		return symbol
	}
	if st.parent != nil {
		return st.parent.Lookup(name)
	}
	return nil
}

func (st *SymbolTable) LookupLocal(name string) *Symbol {
	if symbol, exists := st.symbols[name]; exists {
		return symbol
	}
	return nil
}

// Symbols returns this scope's symbols in definition order.
func (st *SymbolTable) Symbols() []*Symbol {
	return st.order
}

// Names lists every name visible from this scope.
func (st *SymbolTable) Names() []string {
	var names []string
	seen := make(map[string]bool)
	for t := st; t != nil; t = t.parent {
		for _, s := range t.order {
			if !seen[s.Name] {
				seen[s.Name] = true
				names = append(names, s.Name)
			}
		}
	}
	return names
}
