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

// Package toolbox is the public façade over the formal-systems engine: a
// term algebra (package judgement), a unifier (package unify), a
// backtracking top-down prover (package prove), and a fixed-width proof
// tree renderer (package prettyprint). Most callers only need the
// constructors re-exported here, rule.New/rule.Taut, and prove.NewSystem.
package toolbox

import (
	"github.com/inference-engine/toolbox/judgement"
	"github.com/inference-engine/toolbox/prettyprint"
	"github.com/inference-engine/toolbox/prove"
	"github.com/inference-engine/toolbox/rule"
)

// Var constructs a variable term.
func Var(name string) judgement.Judgement { return judgement.Var(name) }

// Constant constructs a zero-arity operator term.
func Constant(name string) judgement.Judgement { return judgement.Constant(name) }

// Atom is an alias for Constant, matching the public interface's
// terminology for a zero-arity operator used as a named proposition.
func Atom(name string) judgement.Judgement { return judgement.Constant(name) }

// Operator constructs a predicate applied to subjects.
func Operator(predicate string, subjects ...judgement.Judgement) judgement.Judgement {
	return judgement.Op(predicate, subjects...)
}

// Op is the terse builder: a predicate name plus its subject list.
func Op(predicate string, subjects ...judgement.Judgement) judgement.Judgement {
	return judgement.Op(predicate, subjects...)
}

// Rule builds a named inference rule with the given premises.
func Rule(name string, premises []judgement.Judgement, conclusion judgement.Judgement) rule.Rule {
	return rule.New(name, premises, conclusion)
}

// Tautology builds a zero-premise rule (an axiom).
func Tautology(name string, conclusion judgement.Judgement) rule.Rule {
	return rule.Taut(name, conclusion)
}

// NewSystem builds a FormalSystem: axioms tried in declaration order,
// bounded to maxDerivationHeight.
func NewSystem(axioms []rule.Rule, maxDerivationHeight uint16, opts ...prove.Option) (*prove.System, error) {
	return prove.NewSystem(axioms, maxDerivationHeight, opts...)
}

// ToStringTree renders a derivation as a conventional proof tree: premises
// above the bar, conclusion at the bottom.
func ToStringTree(d *rule.Derivation) string {
	return prettyprint.ToStringTree(d)
}
