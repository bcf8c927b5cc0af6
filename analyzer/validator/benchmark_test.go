package validator

import (
	"strconv"
	"strings"
	"testing"
)

func BenchmarkValidateFormatCall(b *testing.B) {
	template := "Invoice {0} for {1,-20}: {2,10:N2} due {3:yyyy-MM-dd} ({4}) {{ref}}"
	args := []FormatArgument{
		Arg("invoice.ID"),
		Arg("customer.Name"),
		Arg("total"),
		Arg("dueDate"),
		Arg("status"),
	}

	for b.Loop() {
		if f := ValidateFormatCall(&template, args); f != nil {
			b.Fatalf("unexpected failure: %v", f)
		}
	}
}

func BenchmarkExtractItemsLarge(b *testing.B) {
	// Stress the extractor with many items and escapes.
	var sb strings.Builder
	for i := range 500 {
		sb.WriteString("{{row}} {0,")
		sb.WriteString(strconv.Itoa(i%9 + 1))
		sb.WriteString(":X4} ")
	}
	template := sb.String()

	for b.Loop() {
		if _, f := ExtractItems(template); f != nil {
			b.Fatalf("unexpected failure: %v", f)
		}
	}
}

func BenchmarkSafetyNet(b *testing.B) {
	template := strings.Repeat("{0,8:F2}|", 200)

	for b.Loop() {
		if f := safetyNet(template); f != nil {
			b.Fatalf("unexpected failure: %v", f)
		}
	}
}
