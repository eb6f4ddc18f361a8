// File: instruction.go
package captcha

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode/utf8"
)

// InstructionRule selects what property of the target word is described.
type InstructionRule int

const (
	RuleFirstLetter InstructionRule = iota
	RuleLastLetter
	RuleLength
	ruleCount
)

// Instruction describes target under rule. Other displayed words may
// satisfy the same description.
func Instruction(rule InstructionRule, target PlacedObject) string {
	var text string
	switch rule {
	case RuleFirstLetter:
		first, _ := utf8.DecodeRuneInString(target.Word)
		text = fmt.Sprintf("Click on the word starting with '%s'", strings.ToUpper(string(first)))
	case RuleLastLetter:
		last, _ := utf8.DecodeLastRuneInString(target.Word)
		text = fmt.Sprintf("Click on the word ending with '%s'", strings.ToLower(string(last)))
	default:
		text = fmt.Sprintf("Click on the word with %d letters", utf8.RuneCountInString(target.Word))
	}
	return text + " in a " + string(target.Shape)
}

// SelectTarget picks a target uniformly and describes it with a uniformly
// chosen rule.
func SelectTarget(rng *rand.Rand, objects []PlacedObject) (int, string, error) {
	if len(objects) == 0 {
		return 0, "", ErrNoPlacement
	}
	target := rng.Intn(len(objects))
	rule := InstructionRule(rng.Intn(int(ruleCount)))
	return target, Instruction(rule, objects[target]), nil
}
