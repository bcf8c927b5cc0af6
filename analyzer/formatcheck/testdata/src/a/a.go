package a

import "fmtx"

const row = "{0,-10}|{1,8:F2}"

func render(name string, total float64, rest []any, log *fmtx.Logger) {
	_ = fmtx.Format(row, name, total)
	_ = fmtx.Format("{{literal}} {0}", name)
	_ = fmtx.Format("{0}{1}", rest...)
	_ = fmtx.Format(name, total)

	_ = fmtx.Format("{0} {1", name)        // want `unbalanced curly brace count. \[unbalanced_braces\]`
	_ = fmtx.Format("{x}", name)           // want `followed by a digit or an opening curly brace. \[invalid_char_after_open_brace\]`
	_ = fmtx.Format("{0,a}", name)         // want `alignments should be numbers. \[item_alignment_not_integer\]`
	_ = fmtx.Format("{0:a:b}", name)       // want `'\{index\[,alignment\]\[:formatString\]\}'. \[item_malformed\]`
	_ = fmtx.Format(row, name)             // want `should not be greater than the arguments count. \[item_index_too_high\]`
	_ = fmtx.Format("{0}{1}", []any{1}...) // want `\[item_index_too_high\]`
	_ = fmtx.Format("{1000000}", name)     // want `likely to throw at runtime. \[unknown_failure\]`
	_ = fmtx.Format("{0} {2}", name, 1, 2) // want `item indexes are missing: 1. \[missing_item_index\]`
	_ = fmtx.Format("{0}", name, total)    // want `arguments are unused: total. \[unused_argument\]`
	_ = fmtx.Format("plain")               // want `simply use the input string. \[trivial_template\]`

	fmtx.Print("plain")
	log.Infof("{2}", name) // want `\[item_index_too_high\]`
}

func layouts(wide bool, name string) {
	layout := "{0}"
	if wide {
		layout = "{0,-20}{1}"
	}
	_ = fmtx.Format(layout, name) // want `\[item_index_too_high\]`

	label := "{0}"
	_ = fmtx.Format(label, name)
}
