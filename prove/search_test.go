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
	"testing"

	"github.com/inference-engine/toolbox/judgement"
	"github.com/inference-engine/toolbox/rule"
)

func zero() judgement.Judgement   { return judgement.Constant("zero") }
func succ(n judgement.Judgement) judgement.Judgement { return judgement.Op("succ", n) }
func empty() judgement.Judgement  { return judgement.Constant("empty") }
func node(a, b judgement.Judgement) judgement.Judgement { return judgement.Op("node", a, b) }

// natSystem mirrors the Peano-arithmetic-over-trees example used
// throughout the public interface's own walkthrough: nat, sum, max and
// tree height (hgt), bounded to a derivation height of 8.
func natSystem(t *testing.T) *System {
	t.Helper()
	axioms := []rule.Rule{
		rule.New("succ", []judgement.Judgement{judgement.Op("nat", judgement.Var("n"))}, judgement.Op("nat", succ(judgement.Var("n")))),
		rule.Taut("zero", judgement.Op("nat", zero())),
		rule.New("tree",
			[]judgement.Judgement{judgement.Op("tree", judgement.Var("a1")), judgement.Op("tree", judgement.Var("a2"))},
			judgement.Op("tree", node(judgement.Var("a1"), judgement.Var("a2")))),
		rule.Taut("empty", judgement.Op("tree", judgement.Constant("empty"))),
		rule.Taut("s1", judgement.Op("sum", judgement.Var("n"), zero(), judgement.Var("n"))),
		rule.New("s2",
			[]judgement.Judgement{judgement.Op("sum", judgement.Var("n"), judgement.Var("m"), judgement.Var("p"))},
			judgement.Op("sum", judgement.Var("n"), succ(judgement.Var("m")), succ(judgement.Var("p")))),
		rule.Taut("max1", judgement.Op("max", judgement.Var("n"), zero(), judgement.Var("n"))),
		rule.Taut("max2", judgement.Op("max", zero(), judgement.Var("n"), judgement.Var("n"))),
		rule.New("max3",
			[]judgement.Judgement{judgement.Op("max", judgement.Var("n"), judgement.Var("m"), judgement.Var("p"))},
			judgement.Op("max", succ(judgement.Var("n")), succ(judgement.Var("m")), succ(judgement.Var("p")))),
		rule.Taut("h1", judgement.Op("hgt", judgement.Constant("empty"), zero())),
		rule.New("h2",
			[]judgement.Judgement{
				judgement.Op("hgt", judgement.Var("t1"), judgement.Var("n1")),
				judgement.Op("hgt", judgement.Var("t2"), judgement.Var("n2")),
				judgement.Op("max", judgement.Var("n1"), judgement.Var("n2"), judgement.Var("n")),
			},
			judgement.Op("hgt", node(judgement.Var("t1"), judgement.Var("t2")), succ(judgement.Var("n")))),
	}
	s, err := NewSystem(axioms, 8)
	if err != nil {
		t.Fatalf("NewSystem() failed: %v", err)
	}
	return s
}

func TestVerifyNatFormalSystem(t *testing.T) {
	s := natSystem(t)

	tests := []struct {
		name string
		goal judgement.Judgement
		want bool
	}{
		{name: "nat(zero)", goal: judgement.Op("nat", zero()), want: true},
		{name: "sum(zero, zero, zero)", goal: judgement.Op("sum", zero(), zero(), zero()), want: true},
		{name: "sum(zero, succ(zero), zero) is false", goal: judgement.Op("sum", zero(), succ(zero()), zero()), want: false},
		{
			name: "max(succ(zero), succ(succ(zero)), succ(succ(zero)))",
			goal: judgement.Op("max", succ(zero()), succ(succ(zero())), succ(succ(zero()))),
			want: true,
		},
		{
			name: "hgt(node(empty, empty), succ(zero))",
			goal: judgement.Op("hgt", node(empty(), empty()), succ(zero())),
			want: true,
		},
		{
			name: "hgt(node(empty, node(empty, empty)), succ(succ(zero)))",
			goal: judgement.Op("hgt", node(empty(), node(empty(), empty())), succ(succ(zero()))),
			want: true,
		},
		{
			name: "hgt(node(empty, node(empty, empty)), succ(zero)) is false",
			goal: judgement.Op("hgt", node(empty(), node(empty(), empty())), succ(zero())),
			want: false,
		},
		{
			name: "hgt(node(empty, node(empty, empty)), x) with free variable",
			goal: judgement.Op("hgt", node(empty(), node(empty(), empty())), judgement.Var("x")),
			want: true,
		},
	}
	for _, test := range tests {
		_, ok := s.Verify(test.goal)
		if ok != test.want {
			t.Errorf("%s: Verify(%v) ok = %v, want %v", test.name, test.goal, ok, test.want)
		}
	}
}

func TestVerifyAppliesSubstitutionThroughout(t *testing.T) {
	s := natSystem(t)
	d, ok := s.Verify(judgement.Op("hgt", node(empty(), node(empty(), empty())), judgement.Var("x")))
	if !ok {
		t.Fatalf("Verify() failed, want success")
	}
	want := judgement.Op("hgt", node(empty(), node(empty(), empty())), succ(succ(zero())))
	if d.Conclusion.String() != want.String() {
		t.Errorf("root conclusion = %v, want %v", d.Conclusion, want)
	}
	nodes := []*rule.Derivation{d}
	for len(nodes) > 0 {
		n := nodes[0]
		nodes = append(nodes[1:], n.Premises...)
		for _, v := range judgement.VariablesOf(n.Conclusion).Elements() {
			t.Errorf("resolved derivation still has free variable %q in %v", v, n.Conclusion)
		}
	}
}

func TestVerifyUnreachableGoalFails(t *testing.T) {
	s := natSystem(t)
	if _, ok := s.Verify(judgement.Op("nat", judgement.Constant("banana"))); ok {
		t.Errorf("Verify(nat(banana)) succeeded, want failure")
	}
}

func TestMustVerifyPanicsOnFailure(t *testing.T) {
	s := natSystem(t)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("MustVerify did not panic on an unprovable goal")
		}
	}()
	s.MustVerify(judgement.Op("nat", judgement.Constant("banana")))
}

func TestMustVerifySucceeds(t *testing.T) {
	s := natSystem(t)
	d := s.MustVerify(judgement.Op("nat", zero()))
	if d == nil {
		t.Errorf("MustVerify(nat(zero)) returned nil derivation")
	}
}

func TestVerifyRespectsDerivationHeightBound(t *testing.T) {
	axioms := []rule.Rule{
		rule.Taut("zero", judgement.Op("nat", zero())),
		rule.New("succ", []judgement.Judgement{judgement.Op("nat", judgement.Var("n"))}, judgement.Op("nat", succ(judgement.Var("n")))),
	}
	s, err := NewSystem(axioms, 2)
	if err != nil {
		t.Fatalf("NewSystem() failed: %v", err)
	}
	goal := judgement.Op("nat", succ(succ(succ(succ(zero())))))
	if _, ok := s.Verify(goal); ok {
		t.Errorf("Verify(%v) succeeded under a height bound of 2, want failure", goal)
	}
}

func TestNewSystemRejectsMalformedAxioms(t *testing.T) {
	tests := []struct {
		name   string
		axioms []rule.Rule
	}{
		{name: "empty name", axioms: []rule.Rule{{Name: "", Conclusion: zero()}}},
		{name: "nil conclusion", axioms: []rule.Rule{{Name: "bad"}}},
		{name: "nil premise", axioms: []rule.Rule{{Name: "bad", Conclusion: zero(), Premises: []judgement.Judgement{nil}}}},
	}
	for _, test := range tests {
		if _, err := NewSystem(test.axioms, 8); err == nil {
			t.Errorf("%s: NewSystem() succeeded, want validation error", test.name)
		}
	}
}

func TestNewSystemAggregatesAllErrors(t *testing.T) {
	axioms := []rule.Rule{
		{Name: "", Conclusion: nil},
	}
	_, err := NewSystem(axioms, 8)
	if err == nil {
		t.Fatalf("NewSystem() succeeded, want aggregated validation error")
	}
	msg := err.Error()
	if !contains(msg, "empty rule name") || !contains(msg, "nil conclusion") {
		t.Errorf("NewSystem() error = %q, want it to mention both defects", msg)
	}
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) V(level int) bool { return true }
func (r *recordingLogger) Infof(format string, args ...any) {
	r.lines = append(r.lines, format)
}

func TestWithLoggerReceivesTrace(t *testing.T) {
	rec := &recordingLogger{}
	axioms := []rule.Rule{rule.Taut("zero", judgement.Op("nat", zero()))}
	s, err := NewSystem(axioms, 4, WithLogger(rec))
	if err != nil {
		t.Fatalf("NewSystem() failed: %v", err)
	}
	if _, ok := s.Verify(judgement.Op("nat", judgement.Constant("banana"))); ok {
		t.Fatalf("Verify() unexpectedly succeeded")
	}
	if len(rec.lines) == 0 {
		t.Errorf("WithLogger logger recorded no trace lines for a failed search")
	}
}

func TestPremisePermutations(t *testing.T) {
	premises := []judgement.Judgement{judgement.Var("a"), judgement.Var("b"), judgement.Var("c")}
	perms := premisePermutations(premises)
	if len(perms) != 6 {
		t.Fatalf("premisePermutations(3 items) returned %d orderings, want 6", len(perms))
	}
	seen := map[string]bool{}
	for _, p := range perms {
		if len(p) != 3 {
			t.Errorf("permutation has %d elements, want 3: %v", len(p), p)
		}
		key := p[0].String() + p[1].String() + p[2].String()
		if seen[key] {
			t.Errorf("duplicate permutation %v", p)
		}
		seen[key] = true
	}
}

func TestPremisePermutationsEmpty(t *testing.T) {
	perms := premisePermutations(nil)
	if len(perms) != 1 || len(perms[0]) != 0 {
		t.Errorf("premisePermutations(nil) = %v, want a single empty ordering", perms)
	}
}
