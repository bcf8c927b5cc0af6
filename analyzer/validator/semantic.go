package validator

import (
	"strconv"
)

// ValidateFormatCall validates a constant template against the arguments of
// the call that receives it. A nil template yields NullTemplate.
//
// It returns nil when the template is valid; otherwise the first failure
// found, in this order: syntax (ExtractItems), then the checks of Validate.
//
// Thread-safety: Pure function, safe for concurrent calls.
func ValidateFormatCall(template *string, args []FormatArgument) *Failure {
	if template == nil {
		return newFailure(NullTemplate)
	}

	items, failure := ExtractItems(*template)
	if failure != nil {
		return failure
	}
	return Validate(items, args, *template)
}

// Validate cross-checks parsed items against the call-site arguments.
//
// Checks run in a fixed order and the first hit wins:
//  1. safety net (the template must render with the real engine)
//  2. trivial template (no items and nothing to substitute)
//  3. abstain when a sole array argument has an unknown size
//  4. highest index beyond the effective argument count
//  5. gaps in 0..maxIndex
//  6. arguments past maxIndex
//
// A sole array argument is expanded: its static size becomes the effective
// argument count.
//
// items must be the result of ExtractItems(template). An index at or past
// PlaceholderArgs is reported as UnknownFailure, the same outcome the safety
// net gives for such a template.
func Validate(items []FormatItem, args []FormatArgument, template string) *Failure {
	if failure := safetyNet(template); failure != nil {
		return failure
	}

	effective, known := effectiveArgCount(args)
	if len(items) == 0 && known && effective == 0 {
		return newFailure(TrivialTemplate)
	}
	if !known {
		return nil
	}

	maxIndex := -1
	for _, item := range items {
		maxIndex = max(maxIndex, item.Index)
	}
	if maxIndex >= PlaceholderArgs {
		return newFailure(UnknownFailure)
	}

	if maxIndex+1 > effective {
		return newFailure(ItemIndexTooHigh)
	}

	if missing := missingIndexes(items, maxIndex); len(missing) > 0 {
		return newFailureWithData(MissingItemIndex, missing)
	}

	if unused := unusedArguments(args, maxIndex); len(unused) > 0 {
		return newFailureWithData(UnusedArgument, unused)
	}

	return nil
}

// effectiveArgCount returns the number of values available for substitution.
// known is false when the only argument is an array of unknown size.
func effectiveArgCount(args []FormatArgument) (count int, known bool) {
	if len(args) == 1 && args[0].IsArray {
		if args[0].ArraySize == UnknownArraySize {
			return 0, false
		}
		return args[0].ArraySize, true
	}
	return len(args), true
}

// missingIndexes lists, ascending, the indexes in 0..maxIndex no item uses.
func missingIndexes(items []FormatItem, maxIndex int) []string {
	if maxIndex < 0 {
		return nil
	}

	used := make([]bool, maxIndex+1)
	for _, item := range items {
		if item.Index >= 0 {
			used[item.Index] = true
		}
	}

	var missing []string
	for i, ok := range used {
		if !ok {
			missing = append(missing, strconv.Itoa(i))
		}
	}
	return missing
}

func unusedArguments(args []FormatArgument, maxIndex int) []string {
	if maxIndex+1 >= len(args) {
		return nil
	}

	labels := make([]string, 0, len(args)-maxIndex-1)
	for _, arg := range args[maxIndex+1:] {
		labels = append(labels, arg.Label)
	}
	return labels
}
