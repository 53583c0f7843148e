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

// Package prettyprint renders a derivation as a centred proof tree in
// fixed-width text: premises on top, a horizontal bar labelled with the
// rule name, the conclusion below.
package prettyprint

import (
	"strings"

	"github.com/inference-engine/toolbox/rule"
)

// Render returns the derivation's line-block representation, from the
// conclusion line upward: index 0 is the conclusion line, index 1 is the
// bar, and the remaining lines are the (possibly multi-row) premise
// block. ToStringTree reverses this so premises print above the bar.
func Render(d *rule.Derivation) []string {
	var lines []string

	var premiseBlocks [][]string
	premisesWidth := 0
	maxPremiseHeight := 0

	for i, premise := range d.Premises {
		block := Render(premise)
		if i != len(d.Premises)-1 {
			for j, line := range block {
				block[j] = line + "  "
			}
		}
		if len(block) > maxPremiseHeight {
			maxPremiseHeight = len(block)
		}
		if len(block) > 0 {
			premisesWidth += len(block[0])
		}
		premiseBlocks = append(premiseBlocks, block)
	}

	conclusionString := d.Conclusion.String()
	ruleLabel := d.RuleLabel
	conclusionWidth := len(conclusionString)
	paddedWidth := conclusionWidth + len(ruleLabel)

	maxWidth := max(premisesWidth, paddedWidth)
	barWidth := max(maxWidth, conclusionWidth+2)
	maxWidth = max(maxWidth, barWidth+len(ruleLabel))

	lines = append(lines, strings.Repeat(" ", len(ruleLabel))+center(conclusionString, maxWidth-len(ruleLabel)))
	lines = append(lines, ruleLabel+center(strings.Repeat("-", barWidth), maxWidth-len(ruleLabel)))

	for i := 0; i < maxPremiseHeight; i++ {
		var line strings.Builder
		for _, block := range premiseBlocks {
			if i < len(block) {
				line.WriteString(block[i])
			} else if len(block) > 0 {
				line.WriteString(strings.Repeat(" ", len(block[0])))
			}
		}
		lines = append(lines, center(line.String(), maxWidth))
	}

	return lines
}

// ToStringTree renders d as a conventional proof tree: premises above the
// bar, the conclusion at the bottom, with a leading newline and each line
// followed by a newline.
func ToStringTree(d *rule.Derivation) string {
	lines := Render(d)
	var sb strings.Builder
	sb.WriteByte('\n')
	for i := len(lines) - 1; i >= 0; i-- {
		sb.WriteString(lines[i])
		sb.WriteByte('\n')
	}
	return sb.String()
}

// center pads s with spaces on both sides to reach width, placing any
// odd leftover space on the right, matching Rust's "{:^width}" formatting.
func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	right := pad - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
