package lexer

// Diagnostic codes reported by the lexer. 1xxx are errors, 3xxx warnings.
const (
	CodeUnknownChar         = "LEX1001"
	CodeUnterminatedString  = "LEX1002"
	CodeUnterminatedComment = "LEX1003"
	CodeBadNumber           = "LEX1004"

	CodeEmptySource = "LEX3001"
)
