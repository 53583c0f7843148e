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

// Package judgement contains the term algebra shared by the rest of the
// toolbox: variables and predicate-applied operators, immutable and
// structurally compared.
package judgement

import (
	"strconv"
	"strings"

	"bitbucket.org/creachadair/stringset"
)

// Judgement is either a Variable or an Operator. Implementations are
// immutable: every transformation returns a new value.
type Judgement interface {
	// Marker method, restricts implementations to this package.
	isJudgement()

	// String returns the canonical textual form described in the public
	// interface: "pred(a, b)" for operators, the bare name for variables.
	String() string

	// Equals reports structural equality.
	Equals(Judgement) bool
}

// Variable is a placeholder identified by name. Two variables are equal
// iff their names are equal.
type Variable struct {
	Name string
}

// Var constructs a Variable.
func Var(name string) Variable { return Variable{Name: name} }

func (Variable) isJudgement() {}

func (v Variable) String() string { return v.Name }

// Equals reports whether j is a Variable with the same name.
func (v Variable) Equals(j Judgement) bool {
	o, ok := j.(Variable)
	return ok && v.Name == o.Name
}

// Operator is a predicate symbol applied to an ordered sequence of
// subjects. An Operator with zero subjects is a constant.
type Operator struct {
	Predicate string
	Subjects  []Judgement
}

// Op constructs an Operator. It is the terse builder mentioned in the
// public façade: a predicate name plus its subjects.
func Op(predicate string, subjects ...Judgement) Operator {
	return Operator{Predicate: predicate, Subjects: subjects}
}

// Constant constructs a zero-arity Operator.
func Constant(name string) Operator { return Operator{Predicate: name} }

func (Operator) isJudgement() {}

func (o Operator) String() string {
	var sb strings.Builder
	sb.WriteString(o.Predicate)
	sb.WriteByte('(')
	for i, s := range o.Subjects {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(s.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Equals reports whether j is an Operator with the same predicate and
// pairwise-equal subjects in the same order.
func (o Operator) Equals(j Judgement) bool {
	other, ok := j.(Operator)
	if !ok || o.Predicate != other.Predicate || len(o.Subjects) != len(other.Subjects) {
		return false
	}
	for i, s := range o.Subjects {
		if !s.Equals(other.Subjects[i]) {
			return false
		}
	}
	return true
}

// IsConstant reports whether o has no subjects.
func (o Operator) IsConstant() bool { return len(o.Subjects) == 0 }

// VariablesOf returns the set of variable names occurring in j, collected
// in post-order.
func VariablesOf(j Judgement) stringset.Set {
	vars := stringset.New()
	collectVariables(j, vars)
	return vars
}

func collectVariables(j Judgement, into stringset.Set) {
	switch t := j.(type) {
	case Variable:
		into.Add(t.Name)
	case Operator:
		for _, s := range t.Subjects {
			collectVariables(s, into)
		}
	}
}

// RenameVariables traverses j, replacing every Variable name n by
// f(state, n). state is threaded through the traversal so f can track
// renaming decisions (e.g. a consistent rename map).
func RenameVariables[S any](j Judgement, state S, f func(state S, name string) (string, S)) (Judgement, S) {
	switch t := j.(type) {
	case Variable:
		newName, newState := f(state, t.Name)
		return Variable{Name: newName}, newState
	case Operator:
		if len(t.Subjects) == 0 {
			return t, state
		}
		newSubjects := make([]Judgement, len(t.Subjects))
		for i, s := range t.Subjects {
			var renamed Judgement
			renamed, state = RenameVariables(s, state, f)
			newSubjects[i] = renamed
		}
		return Operator{Predicate: t.Predicate, Subjects: newSubjects}, state
	default:
		return j, state
	}
}

// NextName implements the fresh-naming discipline from the public
// contract: split n into a leading non-digit prefix and a trailing
// all-digit suffix; if the suffix parses as an unsigned integer, return
// prefix + (suffix+1); otherwise return n + "1".
func NextName(n string) string {
	i := len(n)
	for i > 0 && n[i-1] >= '0' && n[i-1] <= '9' {
		i--
	}
	base, digits := n[:i], n[i:]
	if digits == "" {
		return n + "1"
	}
	k, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return n + "1"
	}
	return base + strconv.FormatUint(k+1, 10)
}
