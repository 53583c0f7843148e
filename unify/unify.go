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

// Package unify implements first-order syntactic unification with an
// occurs-check, threading an accumulating substitution.
package unify

import (
	"fmt"

	"github.com/inference-engine/toolbox/judgement"
	"github.com/inference-engine/toolbox/subst"
)

// Kind classifies why unification failed.
type Kind int

const (
	// Occurs indicates an attempt to bind a variable to a term containing
	// that same variable (a recursive, infinite term).
	Occurs Kind = iota
	// PredicateMismatch indicates two operators with different predicates.
	PredicateMismatch
	// ArityMismatch indicates two operators with the same predicate but a
	// different number of subjects.
	ArityMismatch
)

func (k Kind) String() string {
	switch k {
	case Occurs:
		return "occurs"
	case PredicateMismatch:
		return "predicate mismatch"
	case ArityMismatch:
		return "arity mismatch"
	default:
		return "unknown"
	}
}

// Error reports a unification failure.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func occursErr(name string, t judgement.Judgement) *Error {
	return &Error{Kind: Occurs, msg: fmt.Sprintf("Recursive unification: %s occurs in %s", name, t)}
}

func predicateMismatchErr(p1, p2 string) *Error {
	return &Error{Kind: PredicateMismatch, msg: fmt.Sprintf("different predicates: %s != %s", p1, p2)}
}

func arityMismatchErr(n1, n2 int) *Error {
	return &Error{Kind: ArityMismatch, msg: fmt.Sprintf("predicates with different arities: %d and %d", n1, n2)}
}

// UnifyInto attempts to unify a and b, mutating θ with any new bindings.
// On failure, θ may already contain bindings made before the failing
// sub-unification; callers that need to discard a failed attempt must
// have cloned θ beforehand (see package prove).
func UnifyInto(a, b judgement.Judgement, θ *subst.Subst) error {
	av, aIsVar := a.(judgement.Variable)
	bv, bIsVar := b.(judgement.Variable)

	switch {
	case aIsVar && bIsVar && av.Name == bv.Name:
		return nil

	case aIsVar || bIsVar:
		var v judgement.Variable
		var t judgement.Judgement
		if aIsVar {
			v, t = av, b
		} else {
			v, t = bv, a
		}
		if bound := θ.Get(v.Name); bound != nil {
			return UnifyInto(t, bound, θ)
		}
		if subst.Occurs(v.Name, t, θ) {
			return occursErr(v.Name, t)
		}
		θ.Bind(v.Name, t)
		return nil

	default:
		ao, aIsOp := a.(judgement.Operator)
		bo, bIsOp := b.(judgement.Operator)
		if !aIsOp || !bIsOp {
			return predicateMismatchErr(a.String(), b.String())
		}
		if ao.Predicate != bo.Predicate {
			return predicateMismatchErr(ao.Predicate, bo.Predicate)
		}
		if len(ao.Subjects) != len(bo.Subjects) {
			return arityMismatchErr(len(ao.Subjects), len(bo.Subjects))
		}
		for i := range ao.Subjects {
			if err := UnifyInto(ao.Subjects[i], bo.Subjects[i], θ); err != nil {
				return err
			}
		}
		return nil
	}
}

// Unify attempts to unify a and b starting from an empty substitution,
// returning the full substitution on success.
func Unify(a, b judgement.Judgement) (*subst.Subst, error) {
	θ := subst.New()
	if err := UnifyInto(a, b, θ); err != nil {
		return nil, err
	}
	return θ, nil
}
