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

// Package prove implements the backtracking, top-down proof search: it
// unifies a goal against rule conclusions, renames rule variables fresh
// per attempt, enumerates premise orderings, and bounds search depth with
// a loop-breaker over previously-failed, canonically-renamed subgoals.
package prove

import (
	"fmt"

	log "github.com/golang/glog"
	"go.uber.org/multierr"

	"github.com/inference-engine/toolbox/rule"
)

// System is a formal system: an ordered collection of axioms together
// with a search-depth bound. Values are immutable once built; the only
// mutation during a call to Verify is inside the prover's local scratch
// state, so a *System is safe for concurrent Verify/VerifyAll/MustVerify
// calls from multiple goroutines.
type System struct {
	axioms             []rule.Rule
	maxDerivationHeight uint16

	logger    logger
	verbosity int
}

// Logger is the minimal surface prove needs from glog, expressed as an
// interface so tests can swap in a recording stub without depending on
// glog's process-wide verbosity flags.
type Logger interface {
	V(level int) bool
	Infof(format string, args ...any)
}

type logger = Logger

type glogLogger struct{}

func (glogLogger) V(level int) bool { return bool(log.V(log.Level(level))) }
func (glogLogger) Infof(format string, args ...any) {
	log.Infof(format, args...)
}

// Option configures a System at construction time.
type Option func(*System)

// WithLogger overrides the logger used for search tracing. The default is
// github.com/golang/glog at its process-wide verbosity.
func WithLogger(l Logger) Option {
	return func(s *System) { s.logger = l }
}

// WithVerbosity records v on the System. Search does not read it: trace
// lines are always requested at the fixed levels V(1) and V(2) of the
// configured logger, whatever v is.
func WithVerbosity(v int) Option {
	return func(s *System) { s.verbosity = v }
}

// NewSystem builds a FormalSystem from axioms tried in the given order,
// bounded to maxDerivationHeight. It validates every axiom (non-empty
// name, non-nil conclusion, no nil premises) and returns every problem
// found, aggregated with multierr, rather than failing on the first
// defect.
func NewSystem(axioms []rule.Rule, maxDerivationHeight uint16, opts ...Option) (*System, error) {
	var errs error
	for i, ax := range axioms {
		if ax.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("axiom %d: empty rule name", i))
		}
		if ax.Conclusion == nil {
			errs = multierr.Append(errs, fmt.Errorf("axiom %d (%s): nil conclusion", i, ax.Name))
		}
		for j, p := range ax.Premises {
			if p == nil {
				errs = multierr.Append(errs, fmt.Errorf("axiom %d (%s): nil premise at index %d", i, ax.Name, j))
			}
		}
	}
	if errs != nil {
		return nil, errs
	}

	s := &System{
		axioms:              axioms,
		maxDerivationHeight: maxDerivationHeight,
		logger:              glogLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Axioms returns the system's axioms in declaration order.
func (s *System) Axioms() []rule.Rule { return s.axioms }

// MaxDerivationHeight returns the configured search-depth bound.
func (s *System) MaxDerivationHeight() uint16 { return s.maxDerivationHeight }
