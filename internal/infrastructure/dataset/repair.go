package dataset

import (
	"strings"
)

// fallbackColumns is the column count of the standard export, assumed when a
// single-line file carries no recognisable header.
const fallbackColumns = 11

// repairResult describes what repair changed.
type repairResult struct {
	text    string
	changed bool
	dropped int
}

// repair rebuilds files exported with broken line structure.  Two layouts are
// handled: everything on one line, and data lines holding several records
// back to back.  Lines shorter than the header are dropped.  Splitting is
// plain, so quoted cells containing sep are not supported in broken files.
func repair(text string, sep rune) repairResult {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return repairResult{text: text}
	}
	s := string(sep)
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		return repairSingleLine(strings.Split(lines[0], s), s)
	}

	ncol := len(strings.Split(lines[0], s))
	res := repairResult{}
	out := make([]string, 0, len(lines))
	out = append(out, lines[0])
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := strings.Split(line, s)
		switch {
		case len(values) == ncol:
			out = append(out, line)
		case len(values) > ncol && ncol > 0:
			res.changed = true
			for _, row := range chunk(values, ncol) {
				out = append(out, strings.Join(row, s))
			}
			if rem := len(values) % ncol; rem != 0 {
				res.dropped++
			}
		default:
			res.changed = true
			res.dropped++
		}
	}
	res.text = strings.Join(out, "\n")
	return res
}

func repairSingleLine(values []string, sep string) repairResult {
	ncol := headerWidth(values)
	if ncol == 0 {
		ncol = fallbackColumns
	}
	if len(values) <= ncol {
		return repairResult{text: strings.Join(values, sep)}
	}
	out := []string{strings.Join(values[:ncol], sep)}
	rows := chunk(values[ncol:], ncol)
	for _, row := range rows {
		out = append(out, strings.Join(row, sep))
	}
	res := repairResult{text: strings.Join(out, "\n"), changed: true}
	if len(values[ncol:])%ncol != 0 {
		res.dropped = 1
	}
	return res
}

// headerWidth counts the leading non-numeric values, which form the header.
func headerWidth(values []string) int {
	n := 0
	for i, v := range values {
		if looksNumeric(v) {
			break
		}
		if strings.TrimSpace(v) != "" {
			n = i + 1
		}
	}
	return n
}

func looksNumeric(v string) bool {
	v = strings.NewReplacer(".", "", "-", "").Replace(strings.TrimSpace(v))
	if v == "" {
		return false
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// chunk splits values into complete groups of n; a trailing partial group is
// discarded.
func chunk(values []string, n int) [][]string {
	var rows [][]string
	for i := 0; i+n <= len(values); i += n {
		rows = append(rows, values[i:i+n])
	}
	return rows
}

//Personal.AI order the ending
