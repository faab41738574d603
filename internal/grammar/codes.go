package grammar

// Diagnostic codes. 1xxx are errors, 3xxx warnings. Lexical errors keep the
// lexer's LEX codes.
const (
	CodeSyntax           = "GRM1001"
	CodeDuplicateRule    = "GRM1002"
	CodeUndefinedSymbol  = "GRM1003"
	CodeMissingStart     = "GRM1004"
	CodeUnknownStart     = "GRM1005"
	CodeDuplicateStart   = "GRM1006"
	CodeActionNotAllowed = "GRM1007"

	CodeUnusedRule  = "GRM3001"
	CodeUnusedToken = "GRM3002"
	CodeExtraSource = "GRM3003"
)
