package diag

import "hkanno/internal/source"

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Pos      source.Position
}

func New(sev Severity, code Code, pos source.Position, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Pos:      pos,
		Message:  msg,
	}
}

func NewError(code Code, pos source.Position, msg string) Diagnostic {
	return New(SevError, code, pos, msg)
}

func NewWarning(code Code, pos source.Position, msg string) Diagnostic {
	return New(SevWarning, code, pos, msg)
}
