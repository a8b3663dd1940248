// Package translate rewrites one spreadsheet formula into the expression
// grammar understood by the evaluator.
//
// The rewrite is a fixed sequence of textual transformations whose order
// matters: each step's patterns behave differently on pre- vs
// post-translation text. Fragments no step understands pass through
// untouched and surface as evaluation errors later; Formula never fails.
package translate

import (
	"regexp"
	"strconv"
	"strings"

	"sheetc/cell"
	"sheetc/scanner"
)

var (
	// 10,5% — comma-decimal percentage, locale quirk.
	commaPercentPattern = regexp.MustCompile(`(\d+),(\d+)%`)
	// 10% — plain integer percentage.
	percentPattern = regexp.MustCompile(`(\d+)%`)
	// SUM(B2:D2) — single-row column range.
	rangeSumPattern = regexp.MustCompile(`SUM\((\$?[A-Z]+\$?\d+):(\$?[A-Z]+\$?\d+)\)`)
	// 10,5 — remaining comma-decimal numbers.
	commaDecimalPattern = regexp.MustCompile(`(\d+),(\d+)`)
)

// Formula rewrites formula source text (leading = marker already stripped)
// into a target expression. The steps, in order:
//
//  1. comma-decimal percentages: 10,5% becomes 10.05/100
//  2. plain percentages: 10% becomes 10/100
//  3. range sums: SUM(B2:D2) expands to B2+C2+D2
//  4. MIN/MAX become the evaluator's min/max
//  5. remaining comma decimals: 10,5 becomes 10.5
//  6. absolute markers ($) are stripped
//
// All steps skip text inside string literals.
func Formula(src string) string {
	out := replace(src, commaPercentPattern, func(m []string) string {
		whole, _ := strconv.Atoi(m[1])
		frac, _ := strconv.Atoi(m[2])
		v := float64(whole) + float64(frac)/100
		return strconv.FormatFloat(v, 'g', -1, 64) + "/100"
	})
	out = replace(out, percentPattern, func(m []string) string {
		return m[1] + "/100"
	})
	out = replace(out, rangeSumPattern, expandRangeSum)
	out = rename(out, "MIN", "min")
	out = rename(out, "MAX", "max")
	out = replace(out, commaDecimalPattern, func(m []string) string {
		return m[1] + "." + m[2]
	})
	return strip(out, '$')
}

// expandRangeSum turns a same-row column range into an explicit addition
// chain, inclusive of both endpoints, left to right by increasing column.
// The row number of the first endpoint is used for every term. A reversed
// range (second column before the first) expands to zero terms, not to a
// reversed sum. Ranges whose endpoints carry different row numbers are not
// supported and pass through unchanged.
func expandRangeSum(m []string) string {
	from, okFrom := cell.Parse(m[1])
	to, okTo := cell.Parse(m[2])
	if !okFrom || !okTo || from.Row != to.Row {
		return m[0]
	}
	var terms []string
	for col := from.Col; col <= to.Col; col++ {
		terms = append(terms, cell.ID{Col: col, Row: from.Row}.Name())
	}
	return strings.Join(terms, "+")
}

// replace applies re to src with a submatch-based replacement, skipping
// matches that touch string literals. Matching runs over a literal-masked
// copy whose offsets line up with src, so submatches are read from src.
func replace(src string, re *regexp.Regexp, repl func(m []string) string) string {
	masked := scanner.MaskLiterals(src, ' ')
	matches := re.FindAllStringSubmatchIndex(masked, -1)
	if matches == nil {
		return src
	}
	var b strings.Builder
	last := 0
	for _, loc := range matches {
		groups := make([]string, 0, len(loc)/2)
		for i := 0; i < len(loc); i += 2 {
			if loc[i] < 0 {
				groups = append(groups, "")
				continue
			}
			groups = append(groups, src[loc[i]:loc[i+1]])
		}
		b.WriteString(src[last:loc[0]])
		b.WriteString(repl(groups))
		last = loc[1]
	}
	b.WriteString(src[last:])
	return b.String()
}

// rename substitutes every occurrence of old outside string literals. It is
// a literal, case-sensitive substring substitution: argument lists are not
// parsed.
func rename(src, old, subst string) string {
	masked := scanner.MaskLiterals(src, ' ')
	var b strings.Builder
	last := 0
	for {
		i := strings.Index(masked[last:], old)
		if i < 0 {
			break
		}
		i += last
		b.WriteString(src[last:i])
		b.WriteString(subst)
		last = i + len(old)
	}
	b.WriteString(src[last:])
	return b.String()
}

// strip removes every occurrence of ch outside string literals.
func strip(src string, ch byte) string {
	masked := scanner.MaskLiterals(src, ' ')
	var b strings.Builder
	for i := 0; i < len(src); i++ {
		if masked[i] == ch {
			continue
		}
		b.WriteByte(src[i])
	}
	return b.String()
}
