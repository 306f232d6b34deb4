package semantic

import (
	"fmt"
	"sort"

	"github.com/tliron/commonlog"

	"monkey/internal/ast"
	"monkey/internal/errors"
	"monkey/internal/evaluator"
)

var log = commonlog.GetLogger("monkey.semantic")

// Analyzer finds likely mistakes in a program without running it. All
// findings are warnings: a name that looks undefined may sit in a branch
// that never runs.
type Analyzer struct {
	diags    []errors.Diagnostic
	scope    *SymbolTable
	builtins map[string]bool
}

func NewAnalyzer() *Analyzer {
	builtins := make(map[string]bool)
	for _, name := range evaluator.BuiltinNames() {
		builtins[name] = true
	}
	return &Analyzer{builtins: builtins}
}

// Analyze is a shortcut for NewAnalyzer().Analyze(program).
func Analyze(program *ast.Program) []errors.Diagnostic {
	return NewAnalyzer().Analyze(program)
}

// Analyze returns warnings ordered by position. The program must have
// parsed without errors.
func (a *Analyzer) Analyze(program *ast.Program) []errors.Diagnostic {
	a.diags = nil
	a.scope = NewSymbolTable(nil)
	if program == nil {
		return nil
	}

	// Unused top-level bindings are not reported: they are what a file
	// or a REPL session leaves behind for later input.
	a.hoist(program.Statements)
	a.block(program.Statements)

	sort.SliceStable(a.diags, func(i, j int) bool {
		return a.diags[i].Span.Start < a.diags[j].Span.Start
	})
	log.Debugf("%d warning(s)", len(a.diags))
	return a.diags
}

// hoist declares every let of a scope up front, including lets inside if
// blocks, so function bodies can refer to names bound later.
func (a *Analyzer) hoist(stmts []ast.Stmt) {
	for _, s := range stmts {
		ast.Walk(s, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.FunctionLit:
				return false
			case *ast.LetStmt:
				if !a.builtins[n.Name.Value] {
					a.scope.Define(n.Name.Value, kindOf(n.Value), n.Name.Span)
				}
			}
			return true
		})
	}
}

func kindOf(value ast.Expr) SymbolKind {
	if _, ok := value.(*ast.FunctionLit); ok {
		return SymbolFunction
	}
	return SymbolVariable
}

func (a *Analyzer) block(stmts []ast.Stmt) {
	for i, s := range stmts {
		a.stmt(s)
		if _, ok := s.(*ast.ReturnStmt); ok && i+1 < len(stmts) {
			a.warn(errors.NewWarning(errors.WarningUnreachableCode,
				"unreachable statement after return", stmts[i+1].NodeSpan()).Build())
			// still walk the rest so its uses count
			for _, rest := range stmts[i+1:] {
				a.stmt(rest)
			}
			return
		}
	}
}

func (a *Analyzer) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.LetStmt:
		a.expr(s.Value)
		name := s.Name.Value
		if a.builtins[name] {
			a.warn(errors.NewWarning(errors.WarningShadowedBuiltin,
				fmt.Sprintf("'%s' is a builtin; this binding is never read", name), s.Name.Span).
				WithHelp("choose another name").
				Build())
			return
		}
		if sym := a.scope.LookupLocal(name); sym != nil {
			sym.ready = true
		}
	case *ast.ReturnStmt:
		a.expr(s.Value)
	case *ast.ExprStmt:
		a.expr(s.Expr)
	case *ast.BlockStmt:
		a.block(s.Statements)
	}
}

func (a *Analyzer) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Ident:
		a.resolve(e)
	case *ast.ArrayLit:
		for _, el := range e.Elements {
			a.expr(el)
		}
	case *ast.HashLit:
		for _, pair := range e.Pairs {
			a.expr(pair.Key)
			a.expr(pair.Value)
		}
	case *ast.FunctionLit:
		a.function(e)
	case *ast.PrefixExpr:
		a.expr(e.Right)
	case *ast.InfixExpr:
		a.expr(e.Left)
		a.expr(e.Right)
	case *ast.IfExpr:
		a.expr(e.Condition)
		a.block(e.Consequence.Statements)
		if e.Alternative != nil {
			a.block(e.Alternative.Statements)
		}
	case *ast.CallExpr:
		a.expr(e.Function)
		for _, arg := range e.Arguments {
			a.expr(arg)
		}
	case *ast.IndexExpr:
		a.expr(e.Left)
		a.expr(e.Index)
	}
}

func (a *Analyzer) function(fn *ast.FunctionLit) {
	a.scope = NewSymbolTable(a.scope)
	defer func() { a.scope = a.scope.parent }()

	for _, p := range fn.Parameters {
		if a.builtins[p.Value] {
			a.warn(errors.NewWarning(errors.WarningShadowedBuiltin,
				fmt.Sprintf("'%s' is a builtin; this parameter is never read", p.Value), p.Span).
				WithHelp("choose another name").
				Build())
			continue
		}
		a.scope.Define(p.Value, SymbolParameter, p.Span).ready = true
	}

	a.hoist(fn.Body.Statements)
	a.block(fn.Body.Statements)

	for _, sym := range a.scope.Symbols() {
		if sym.Kind == SymbolParameter || sym.Used {
			continue
		}
		a.warn(errors.NewWarning(errors.WarningUnusedBinding,
			fmt.Sprintf("unused %s '%s'", sym.Kind, sym.Name), sym.Span).
			WithHelp("remove the binding or use its value").
			Build())
	}
}

// resolve marks the symbol an identifier reads. A name in the current
// scope counts only once its let has run; names in enclosing scopes are
// visible from anywhere, since a function body runs after the scope
// around it has been set up.
func (a *Analyzer) resolve(id *ast.Ident) {
	if a.builtins[id.Value] {
		return
	}
	if sym := a.scope.LookupLocal(id.Value); sym != nil && sym.ready {
		sym.Used = true
		return
	}
	if a.scope.parent != nil {
		if sym := a.scope.parent.Lookup(id.Value); sym != nil {
			sym.Used = true
			return
		}
	}

	b := errors.NewWarning(errors.WarningUndefinedName,
		fmt.Sprintf("identifier not found: %s", id.Value), id.Span).
		WithNote("evaluating this expression fails")
	candidates := append(a.scope.Names(), evaluator.BuiltinNames()...)
	for _, s := range errors.DidYouMean(errors.FindSimilar(id.Value, candidates)) {
		b.WithSuggestion(s)
	}
	a.warn(b.Build())
}

func (a *Analyzer) warn(d errors.Diagnostic) {
	a.diags = append(a.diags, d)
}
