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

// Package subst implements the unification table: a finite map from
// variable names to judgements, with walk/apply/occurs semantics.
package subst

import (
	"strings"

	"github.com/inference-engine/toolbox/judgement"
)

// Subst is a finite map from variable names to judgements. The zero value
// is an empty, usable substitution.
type Subst struct {
	bindings map[string]judgement.Judgement
}

// New returns an empty substitution.
func New() *Subst {
	return &Subst{bindings: make(map[string]judgement.Judgement)}
}

// Clone returns a deep-enough copy of s: a new map with the same bindings,
// so that mutating the clone never affects s. Judgement values themselves
// are immutable and need not be copied.
func (s *Subst) Clone() *Subst {
	cp := make(map[string]judgement.Judgement, len(s.bindings))
	for k, v := range s.bindings {
		cp[k] = v
	}
	return &Subst{bindings: cp}
}

// Get returns the judgement bound to name, or nil if unbound.
func (s *Subst) Get(name string) judgement.Judgement {
	if s == nil {
		return nil
	}
	return s.bindings[name]
}

// Bind records that name maps to j. The caller is responsible for having
// already run the occurs-check; Bind itself does not check.
func (s *Subst) Bind(name string, j judgement.Judgement) {
	if s.bindings == nil {
		s.bindings = make(map[string]judgement.Judgement)
	}
	s.bindings[name] = j
}

// Domain returns the set of bound variable names.
func (s *Subst) Domain() []string {
	names := make([]string, 0, len(s.bindings))
	for k := range s.bindings {
		names = append(names, k)
	}
	return names
}

// Walk follows v through s until it reaches a non-variable term or a
// variable with no binding, per the public walk(v, θ) contract.
func Walk(v judgement.Variable, s *Subst) judgement.Judgement {
	current := judgement.Judgement(v)
	seen := map[string]bool{}
	for {
		cv, ok := current.(judgement.Variable)
		if !ok {
			return current
		}
		if seen[cv.Name] {
			// Can only happen if the occurs-check was bypassed; walk
			// terminates defensively rather than looping forever.
			return current
		}
		seen[cv.Name] = true
		bound := s.Get(cv.Name)
		if bound == nil {
			return cv
		}
		current = bound
	}
}

// Apply traverses j, replacing every variable v by Walk(v, s), then
// recursing into the result until a fixed point (no visible variable is
// mapped) is reached. Apply always terminates because the unifier's
// occurs-check guarantees s can never contain a cyclic mapping.
func Apply(j judgement.Judgement, s *Subst) judgement.Judgement {
	switch t := j.(type) {
	case judgement.Variable:
		walked := Walk(t, s)
		if wv, ok := walked.(judgement.Variable); ok && wv.Name == t.Name {
			return wv
		}
		return Apply(walked, s)
	case judgement.Operator:
		if len(t.Subjects) == 0 {
			return t
		}
		newSubjects := make([]judgement.Judgement, len(t.Subjects))
		for i, sub := range t.Subjects {
			newSubjects[i] = Apply(sub, s)
		}
		return judgement.Operator{Predicate: t.Predicate, Subjects: newSubjects}
	default:
		return j
	}
}

// Occurs reports whether, after walking j through s, the variable name
// appears inside any reachable term. This is the occurs-check: it is
// called before binding a variable to prevent infinite (cyclic) terms.
func Occurs(name string, j judgement.Judgement, s *Subst) bool {
	switch t := j.(type) {
	case judgement.Variable:
		bound := s.Get(t.Name)
		if bound == nil {
			return t.Name == name
		}
		return Occurs(name, bound, s)
	case judgement.Operator:
		for _, sub := range t.Subjects {
			if Occurs(name, sub, s) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// String returns a readable debug form, e.g. "{ x->f(y) y->a() }".
func (s *Subst) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for k, v := range s.bindings {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteString("->")
		sb.WriteString(v.String())
	}
	sb.WriteString(" }")
	return sb.String()
}
