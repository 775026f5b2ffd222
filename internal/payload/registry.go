// Package payload holds the registry of payload-interpreter instructions that
// may be embedded in annotation text as PIE.@NAME|param|param.
package payload

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Namespace is the dispatch prefix that introduces an instruction.
const Namespace = "PIE"

// Instruction describes one registered instruction. Arity is derived from
// Params, and so are the snippet and documentation.
type Instruction struct {
	Name    string
	Params  []string
	Summary string
}

var registry = []Instruction{
	{Name: "SGVB", Params: []string{"graphVariable", "bool"}, Summary: "Set an animation boolean variable."},
	{Name: "SGVF", Params: []string{"graphVariable", "float"}, Summary: "Set an animation float variable."},
	{Name: "SGVI", Params: []string{"graphVariable", "int"}, Summary: "Set an animation integer variable."},
	{
		Name: "CASTSPELL",
		Params: []string{
			"spellID", "esp", "effectiveness", "magnitude", "selfTargeting",
			"HealthReq", "HealthCost", "StaminaReq", "StaminaCost", "MagickaReq", "MagickaCost",
		},
		Summary: "Cast a spell on the actor. Spell may stay on actor.",
	},
	{Name: "APPLYSPELL", Params: []string{"spellID", "esp"}, Summary: "Apply a spell instantly."},
	{Name: "UNAPPLYSPELL", Params: []string{"spellID", "esp"}, Summary: "Remove a spell effect."},
	{Name: "SETGHOST", Params: []string{"bool"}, Summary: "Make the actor ghost (invincible)."},
	{
		Name:    "PLAYPARTICLE",
		Params:  []string{"nifPath", "bodyPartIndex", "scale", "playTime", "flags", "X", "Y", "Z"},
		Summary: "Play a nif particle effect on the actor.",
	},
}

var byName = func() map[string]int {
	m := make(map[string]int, len(registry))
	for i, ins := range registry {
		m[fold(ins.Name)] = i
	}
	return m
}()

func fold(s string) string {
	return cases.Fold().String(s)
}

// All returns the registered instructions in declaration order.
func All() []Instruction {
	out := make([]Instruction, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds an instruction by name, ignoring case.
func Lookup(name string) (Instruction, bool) {
	i, ok := byName[fold(name)]
	if !ok {
		return Instruction{}, false
	}
	return registry[i], true
}

// IsNamespace reports whether s names the dispatch prefix, ignoring case.
func IsNamespace(s string) bool {
	return s != "" && fold(s) == fold(Namespace)
}

// Arity is the number of parameters the instruction expects.
func (ins Instruction) Arity() int {
	return len(ins.Params)
}

// Snippet is the completion snippet inserted after '@', e.g. SGVB|${1:graphVariable}|${2:bool}.
func (ins Instruction) Snippet() string {
	var b strings.Builder
	b.WriteString(ins.Name)
	for i, p := range ins.Params {
		fmt.Fprintf(&b, "|${%d:%s}", i+1, p)
	}
	return b.String()
}

// Usage renders the call shape, e.g. PIE.@SGVB|<graphVariable>|<bool>.
func (ins Instruction) Usage() string {
	var b strings.Builder
	b.WriteString(Namespace)
	b.WriteString(".@")
	b.WriteString(ins.Name)
	for _, p := range ins.Params {
		b.WriteString("|<")
		b.WriteString(p)
		b.WriteString(">")
	}
	return b.String()
}

// Documentation is markdown with the usage block followed by the summary.
func (ins Instruction) Documentation() string {
	return "```hkanno\n" + ins.Usage() + "\n```\n" + ins.Summary
}

// Param returns the name of the i-th (0-based) parameter or "" when out of range.
func (ins Instruction) Param(i int) string {
	if i < 0 || i >= len(ins.Params) {
		return ""
	}
	return ins.Params[i]
}
