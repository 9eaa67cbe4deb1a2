package diag

// Codes raised by the engines themselves.
const (
	CodeUnknown       Code = "D000"
	CodeInvalidChar   Code = "L001"
	CodeNoProgress    Code = "L002"
	CodeExpectedToken Code = "P001"
	CodeNoAlternative Code = "P002"
	CodeEmptyInput    Code = "P003"
)

// Builtin is the catalog of engine diagnostics.
var Builtin = NewCatalog(
	Definition{CodeUnknown, "undefined diagnostic", "no definition for diagnostic code `{0}`"},
	Definition{CodeInvalidChar, "invalid character", "`{0}` is an invalid character"},
	Definition{CodeNoProgress, "scanner stalled", "no rule consumed input at `{0}`"},
	Definition{CodeExpectedToken, "unexpected token", "expected {0}, found {1}"},
	Definition{CodeNoAlternative, "no match", "no alternative of {0} matches {1}"},
	Definition{CodeEmptyInput, "empty input", "cannot parse an empty token sequence"},
)
