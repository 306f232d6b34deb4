package errors

// Error codes shared by the interpreter front end, the CLI and the
// language server.
//
// Error code ranges:
// E0100-E0199: Syntax errors
// E0200-E0299: Lexical errors
// E0300-E0399: Runtime errors
// W0400-W0499: Lint warnings

const (
	// E0100: Token missing where the grammar requires it
	ErrorExpectedToken = "E0100"

	// E0101: Token that cannot begin an expression
	ErrorNoPrefixParse = "E0101"

	// E0102: let name or parameter that is not an identifier
	ErrorInvalidIdentifier = "E0102"

	// E0103: Integer literal out of range
	ErrorInvalidInteger = "E0103"

	// E0200: Character outside the language's alphabet
	ErrorUnexpectedCharacter = "E0200"

	// E0201: String literal without a closing quote
	ErrorUnterminatedString = "E0201"

	ErrorIdentifierNotFound = "E0300"
	ErrorTypeMismatch       = "E0301"
	ErrorUnknownOperator    = "E0302"
	ErrorWrongArgumentCount = "E0303"
	ErrorNotAFunction       = "E0304"
	ErrorUnusableHashKey    = "E0305"
	ErrorIndexNotSupported  = "E0306"
	ErrorInvalidArgument    = "E0307"
	ErrorDivisionByZero     = "E0308"
	ErrorCallDepthExceeded  = "E0309"

	WarningUnusedBinding   = "W0400"
	WarningUndefinedName   = "W0401"
	WarningUnreachableCode = "W0402"
	WarningShadowedBuiltin = "W0403"
)

// Describe returns a one-line explanation for an error code, or "" when
// the code is unknown.
func Describe(code string) string {
	return descriptions[code]
}

var descriptions = map[string]string{
	ErrorExpectedToken:       "the parser needed a specific token here",
	ErrorNoPrefixParse:       "this token cannot start an expression",
	ErrorInvalidIdentifier:   "names bound by let and fn parameters must be identifiers",
	ErrorInvalidInteger:      "integer literals must fit in 64 bits",
	ErrorUnexpectedCharacter: "the character is not part of the language",
	ErrorUnterminatedString:  "string literals must end with a closing quote",
	ErrorIdentifierNotFound:  "the name is not bound in any enclosing scope",
	ErrorTypeMismatch:        "the operator's operands have different types",
	ErrorUnknownOperator:     "the operator is not defined for these operand types",
	ErrorWrongArgumentCount:  "the call passes a different number of arguments than the function takes",
	ErrorNotAFunction:        "only functions and builtins can be called",
	ErrorUnusableHashKey:     "only integers, booleans and strings can be hash keys",
	ErrorIndexNotSupported:   "only arrays and hashes can be indexed",
	ErrorInvalidArgument:     "a builtin received an argument of the wrong type",
	ErrorDivisionByZero:      "integer division by zero",
	ErrorCallDepthExceeded:   "the call stack grew past the configured limit",
	WarningUnusedBinding:     "a let inside a function binds a name nothing reads",
	WarningUndefinedName:     "no enclosing scope binds the name before it is read",
	WarningUnreachableCode:   "statements after a return never run",
	WarningShadowedBuiltin:   "builtins are looked up first, so the binding is never read",
}
