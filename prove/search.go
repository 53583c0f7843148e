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

package prove

import (
	"fmt"

	"bitbucket.org/creachadair/stringset"

	"github.com/inference-engine/toolbox/judgement"
	"github.com/inference-engine/toolbox/rule"
	"github.com/inference-engine/toolbox/subst"
	"github.com/inference-engine/toolbox/unify"
)

// Verify searches for a derivation of goal under s's axioms, bounded by
// s.MaxDerivationHeight. On success, the final substitution is applied to
// every conclusion in the returned tree.
//
// Verify is a synchronous, pure function of (s, goal): the only mutable
// state, a loop-breaker set of previously-failed subgoals, is local to
// this call.
func (s *System) Verify(goal judgement.Judgement) (*rule.Derivation, bool) {
	d, θ, ok := s.search(stringset.New(), subst.New(), goal, 0)
	if !ok {
		return nil, false
	}
	return d.ApplySubstitution(θ), true
}

// MustVerify is like Verify but panics if no derivation is found. It is a
// convenience for call sites that know, by construction, that goal is
// provable — tests and short example programs chiefly.
func (s *System) MustVerify(goal judgement.Judgement) *rule.Derivation {
	d, ok := s.Verify(goal)
	if !ok {
		panic(fmt.Sprintf("prove: no derivation for %s", goal))
	}
	return d
}

// VerifyAll returns up to limit distinct derivations of goal, found by
// re-running search while excluding, at the top level, every axiom that
// rooted a previously found derivation. At most one derivation is returned
// per top-level axiom: other premise orderings or sub-derivations under an
// axiom already used are not searched. It is a bounded generalization of
// Verify's "first success wins" tie-break, useful for exploring alternate
// proofs and for testing search determinism; it does not change what
// Verify itself returns.
func (s *System) VerifyAll(goal judgement.Judgement, limit int) []*rule.Derivation {
	var found []*rule.Derivation
	exclude := map[string]bool{}
	for len(found) < limit {
		d, θ, ok := s.searchExcluding(stringset.New(), subst.New(), goal, 0, exclude)
		if !ok {
			break
		}
		resolved := d.ApplySubstitution(θ)
		found = append(found, resolved)
		exclude[resolved.RuleLabel] = true
	}
	return found
}

// search implements the recursive backtracking proof search from the
// public contract: depth bound, subgoal pruning via a canonically-renamed
// key, axiom iteration in declaration order, and premise-permutation
// enumeration in lexicographic order, with the first success winning.
func (s *System) search(bin stringset.Set, θ *subst.Subst, goal judgement.Judgement, height uint16) (*rule.Derivation, *subst.Subst, bool) {
	return s.searchExcluding(bin, θ, goal, height, nil)
}

func (s *System) searchExcluding(bin stringset.Set, θ *subst.Subst, goal judgement.Judgement, height uint16, exclude map[string]bool) (*rule.Derivation, *subst.Subst, bool) {
	if height > s.maxDerivationHeight {
		return nil, nil, false
	}

	key := normalize(goal, θ)
	if bin.Contains(key) {
		return nil, nil, false
	}

	forbidden := forbiddenNames(goal, θ)

	for _, axiom := range s.axioms {
		if exclude != nil && height == 0 && exclude[axiom.Name] {
			continue
		}

		freshened := freshenRule(axiom, forbidden)

		θ0 := θ.Clone()
		if err := unify.UnifyInto(goal, freshened.Conclusion, θ0); err != nil {
			if s.logger != nil && s.logger.V(2) {
				s.logger.Infof("prove: axiom %s does not match %s: %v", axiom.Name, goal, err)
			}
			continue
		}

		for _, order := range premisePermutations(freshened.Premises) {
			current := θ0.Clone()
			var subderivs []*rule.Derivation
			ok := true
			for _, premise := range order {
				d, extended, success := s.searchExcluding(bin, current, premise, height+1, nil)
				if !success {
					ok = false
					break
				}
				current = extended
				subderivs = append(subderivs, d)
			}
			if ok {
				if s.logger != nil && s.logger.V(2) {
					s.logger.Infof("prove: %s proves %s", axiom.Name, goal)
				}
				return &rule.Derivation{
					RuleLabel:  freshened.Name,
					Conclusion: goal,
					Premises:   subderivs,
				}, current, true
			}
		}
	}

	if s.logger != nil && s.logger.V(1) {
		s.logger.Infof("prove: exhausted axioms for %s, pruning subgoal key %q", goal, key)
	}
	bin.Add(key)
	return nil, nil, false
}

// normalize computes the loop-breaker key for goal under θ: apply θ, then
// rename every variable to canonical placeholders x1, x2, ... in
// first-encountered order, then stringify.
func normalize(goal judgement.Judgement, θ *subst.Subst) string {
	applied := subst.Apply(goal, θ)
	type state struct {
		next   int
		byName map[string]string
	}
	st := state{next: 0, byName: map[string]string{}}
	renamed, _ := judgement.RenameVariables(applied, st, func(st state, name string) (string, state) {
		if canon, ok := st.byName[name]; ok {
			return canon, st
		}
		st.next++
		canon := fmt.Sprintf("x%d", st.next)
		st.byName[name] = canon
		return canon, st
	})
	return renamed.String()
}

// forbiddenNames collects variables_of(goal) ∪ domain(θ) ∪ the variables
// occurring in every judgement θ binds a variable to, the forbidden set
// used to freshen axiom variables before each unification attempt.
func forbiddenNames(goal judgement.Judgement, θ *subst.Subst) stringset.Set {
	forbidden := judgement.VariablesOf(goal)
	for _, name := range θ.Domain() {
		forbidden.Add(name)
		if bound := θ.Get(name); bound != nil {
			forbidden = forbidden.Union(judgement.VariablesOf(bound))
		}
	}
	return forbidden
}

// freshenRule renames every variable in r by repeatedly applying
// judgement.NextName until the result is outside forbidden. A variable
// already absent from forbidden is left unrenamed. Multiple occurrences
// of the same original name within r are renamed consistently; the
// forbidden set itself is not extended as each variable is chosen, which
// matches the reference fresh-naming discipline this is grounded on.
func freshenRule(r rule.Rule, forbidden stringset.Set) rule.Rule {
	memo := map[string]string{}
	renamed, _ := rule.RenameVariables(r, memo, func(memo map[string]string, name string) (string, map[string]string) {
		if already, ok := memo[name]; ok {
			return already, memo
		}
		candidate := name
		for forbidden.Contains(candidate) {
			candidate = judgement.NextName(candidate)
		}
		memo[name] = candidate
		return candidate, memo
	})
	return renamed
}

// premisePermutations returns every permutation of premises in
// lexicographic order of index sequence, the order in which package
// prove tries them.
func premisePermutations(premises []judgement.Judgement) [][]judgement.Judgement {
	n := len(premises)
	if n == 0 {
		return [][]judgement.Judgement{{}}
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	var results [][]judgement.Judgement
	var permute func(prefix []int, remaining []int)
	permute = func(prefix []int, remaining []int) {
		if len(remaining) == 0 {
			order := make([]judgement.Judgement, n)
			for i, idx := range prefix {
				order[i] = premises[idx]
			}
			results = append(results, order)
			return
		}
		for i, idx := range remaining {
			nextRemaining := make([]int, 0, len(remaining)-1)
			nextRemaining = append(nextRemaining, remaining[:i]...)
			nextRemaining = append(nextRemaining, remaining[i+1:]...)
			permute(append(append([]int{}, prefix...), idx), nextRemaining)
		}
	}
	permute(nil, indices)
	return results
}
