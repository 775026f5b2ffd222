package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Line shape
	SynInfo          Code = 1000
	SynInvalidTime   Code = 1001
	SynBadNumber     Code = 1002
	SynTrailingInput Code = 1003

	// Event arguments
	EvtInfo           Code = 2000
	EvtMissingAxis    Code = 2001
	EvtMissingDegrees Code = 2002
	EvtMissingText    Code = 2003

	// Payload instructions
	PieInfo             Code = 3000
	PieUnknownInstr     Code = 3001
	PieArity            Code = 3002
	PieMissingAt        Code = 3003
	PieMissingName      Code = 3004
	PieUnknownNamespace Code = 3005

	// IO and engine
	IOInfo        Code = 4000
	IOLoadFailed  Code = 4001
	IOSaveFailed  Code = 4002
	IOPreviewFail Code = 4003
)

var codeDescription = map[Code]string{
	UnknownCode:         "Unknown error",
	SynInfo:             "Line information",
	SynInvalidTime:      "Invalid time",
	SynBadNumber:        "Malformed number",
	SynTrailingInput:    "Unexpected trailing input",
	EvtInfo:             "Event information",
	EvtMissingAxis:      "Missing animmotion axis",
	EvtMissingDegrees:   "Missing animrotation degrees",
	EvtMissingText:      "Missing annotation text",
	PieInfo:             "Payload information",
	PieUnknownInstr:     "Unknown payload instruction",
	PieArity:            "Too few payload parameters",
	PieMissingAt:        "Missing '@' before instruction",
	PieMissingName:      "Missing instruction name",
	PieUnknownNamespace: "Unknown payload namespace",
	IOInfo:              "I/O information",
	IOLoadFailed:        "Load failed",
	IOSaveFailed:        "Save failed",
	IOPreviewFail:       "Preview failed",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("EVT%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("PIE%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
