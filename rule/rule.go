// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rule holds the inference-rule and derivation-tree data model.
package rule

import (
	"strings"

	"github.com/inference-engine/toolbox/judgement"
	"github.com/inference-engine/toolbox/subst"
)

// Rule is a named inference rule. Variables appearing in a rule are
// implicitly universally quantified and local to that rule; each use
// during search must rename them fresh (see package prove).
type Rule struct {
	Name       string
	Premises   []judgement.Judgement
	Conclusion judgement.Judgement
}

// New builds a rule with the given premises.
func New(name string, premises []judgement.Judgement, conclusion judgement.Judgement) Rule {
	return Rule{Name: name, Premises: premises, Conclusion: conclusion}
}

// Taut builds a zero-premise rule (an axiom/tautology).
func Taut(name string, conclusion judgement.Judgement) Rule {
	return Rule{Name: name, Conclusion: conclusion}
}

// IsAxiom reports whether r has no premises.
func (r Rule) IsAxiom() bool { return len(r.Premises) == 0 }

// RenameVariables renames every variable occurring in r (premises and
// conclusion) via f, threading state the way judgement.RenameVariables
// does.
func RenameVariables[S any](r Rule, state S, f func(state S, name string) (string, S)) (Rule, S) {
	newPremises := make([]judgement.Judgement, len(r.Premises))
	for i, p := range r.Premises {
		var renamed judgement.Judgement
		renamed, state = judgement.RenameVariables(p, state, f)
		newPremises[i] = renamed
	}
	newConclusion, state := judgement.RenameVariables(r.Conclusion, state, f)
	return Rule{Name: r.Name, Premises: newPremises, Conclusion: newConclusion}, state
}

// String renders r in the textual rule form from the public interface:
// premises separated by four spaces, a "name-------" bar, then the
// conclusion on the following line.
func (r Rule) String() string {
	var sb strings.Builder
	for i, p := range r.Premises {
		if i > 0 {
			sb.WriteString("    ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteByte('\n')
	sb.WriteString(r.Name)
	sb.WriteString(strings.Repeat("-", max(1, len(r.Conclusion.String())+2-len(r.Name))))
	sb.WriteByte('\n')
	sb.WriteString(r.Conclusion.String())
	return sb.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Derivation is a proof tree: a rule label, the (possibly partly-ground)
// conclusion it establishes, and one sub-derivation for each premise, in
// the order in which the prover established them (a permutation of the
// rule's premise order).
type Derivation struct {
	RuleLabel  string
	Conclusion judgement.Judgement
	Premises   []*Derivation
}

// ApplySubstitution returns a new Derivation with θ applied to every
// conclusion in the tree.
func (d *Derivation) ApplySubstitution(θ *subst.Subst) *Derivation {
	if d == nil {
		return nil
	}
	newPremises := make([]*Derivation, len(d.Premises))
	for i, p := range d.Premises {
		newPremises[i] = p.ApplySubstitution(θ)
	}
	return &Derivation{
		RuleLabel:  d.RuleLabel,
		Conclusion: subst.Apply(d.Conclusion, θ),
		Premises:   newPremises,
	}
}

// String renders a single-line debug form of the derivation, distinct
// from the fixed-width tree rendering in package prettyprint.
func (d *Derivation) String() string {
	if d == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString(d.RuleLabel)
	sb.WriteByte('[')
	for i, p := range d.Premises {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString("] => ")
	sb.WriteString(d.Conclusion.String())
	return sb.String()
}
