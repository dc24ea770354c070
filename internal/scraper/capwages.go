// Package scraper maps CapWages team pages onto contract patches. The page
// layout is not under our control, so columns are found by header text.
package scraper

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"hockeycap/internal/capledger"
	"hockeycap/internal/domain"
)

var (
	seasonHeader = regexp.MustCompile(`\d{4}-\d{2}`)
	rankPrefix   = regexp.MustCompile(`^\d+\.\s*`)
	leadingInt   = regexp.MustCompile(`^\d+`)
)

type columns struct {
	player int
	clause int
	capHit int
	term   int
	width  int
}

// ParseCapWages returns one patch per contract row with a positive cap hit,
// keyed by normalized player name. Rows later in the page replace earlier
// rows that fold to the same key.
func ParseCapWages(page []byte) (map[string]domain.ContractPatch, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	patches := make(map[string]domain.ContractPatch)
	for _, table := range findAll(doc, atom.Table) {
		cols, ok := tableColumns(table)
		if !ok {
			continue
		}
		for _, tbody := range findAll(table, atom.Tbody) {
			for _, row := range findAll(tbody, atom.Tr) {
				name, patch, ok := parseRow(row, cols)
				if ok {
					capledger.PutPatch(patches, name, patch)
				}
			}
		}
	}
	return patches, nil
}

func tableColumns(table *html.Node) (columns, bool) {
	thead := findFirst(table, atom.Thead)
	if thead == nil {
		return columns{}, false
	}

	var headers []string
	for _, th := range findAll(thead, atom.Th) {
		headers = append(headers, strings.ToUpper(strings.TrimSpace(textOf(th))))
	}

	cols := columns{
		player: indexOf(headers, func(h string) bool { return strings.Contains(h, "PLAYER") }),
		clause: indexOf(headers, func(h string) bool { return strings.Contains(h, "TERMS") || strings.Contains(h, "CLAUSE") }),
		capHit: indexOf(headers, func(h string) bool { return strings.Contains(h, "AAV") || strings.Contains(h, "CAP HIT") }),
		term:   indexOf(headers, func(h string) bool { return strings.Contains(h, "LENGTH") }),
		width:  len(headers),
	}
	if cols.player == -1 {
		return columns{}, false
	}
	if cols.term == -1 {
		// "TERMS" is the clause column on this site, not the contract length
		cols.term = indexOf(headers, func(h string) bool { return strings.Contains(h, "TERM") && !strings.Contains(h, "TERMS") })
	}
	if cols.capHit == -1 {
		// first season column holds the current cap hit
		cols.capHit = indexOf(headers, seasonHeader.MatchString)
	}
	return cols, true
}

func parseRow(row *html.Node, cols columns) (string, domain.ContractPatch, bool) {
	cells := findAll(row, atom.Td)
	if len(cells) == 0 || len(cells) < cols.width {
		return "", domain.ContractPatch{}, false
	}

	name := FormatName(textOf(cells[cols.player]))
	if name == "" {
		return "", domain.ContractPatch{}, false
	}

	clauseText := ""
	if cols.clause != -1 {
		clauseText = textOf(cells[cols.clause])
	} else {
		clauseText = textOf(row)
	}
	clause := ClauseFromText(clauseText)

	var capHit int64
	if cols.capHit != -1 {
		capHit = ParseMoney(textOf(cells[cols.capHit]))
	}
	if capHit <= 0 {
		return "", domain.ContractPatch{}, false
	}

	length := 0
	if cols.term != -1 {
		length = parseLeadingInt(textOf(cells[cols.term]))
	}
	if length <= 0 {
		length = 1
	}

	signed := true
	aav := capHit
	return name, domain.ContractPatch{
		CapHit:         &capHit,
		AAV:            &aav,
		ContractLength: &length,
		Clause:         &clause,
		IsSigned:       &signed,
	}, true
}

// FormatName turns "Kucherov, Nikita" into "Nikita Kucherov" and drops
// depth-chart prefixes such as "1. ".
func FormatName(raw string) string {
	s := strings.NewReplacer("\n", "", "\t", "").Replace(raw)
	s = strings.TrimSpace(rankPrefix.ReplaceAllString(strings.TrimSpace(s), ""))

	if last, first, ok := strings.Cut(s, ","); ok {
		return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	}
	return s
}

// ParseMoney reads "$9,500,000" as 9500000. Text after the number is
// ignored; anything unreadable is 0.
func ParseMoney(s string) int64 {
	clean := strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(s))
	n, err := strconv.ParseInt(leadingInt.FindString(clean), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ClauseFromText checks NMC before M-NTC before NTC since "M-NTC" contains
// "NTC".
func ClauseFromText(s string) domain.Clause {
	s = strings.ToUpper(s)
	switch {
	case strings.Contains(s, "NMC"):
		return domain.ClauseNoMovement
	case strings.Contains(s, "M-NTC"):
		return domain.ClauseModifiedNoTrade
	case strings.Contains(s, "NTC"):
		return domain.ClauseNoTrade
	}
	return domain.ClauseNone
}

func parseLeadingInt(s string) int {
	n, err := strconv.Atoi(leadingInt.FindString(strings.TrimSpace(s)))
	if err != nil {
		return 0
	}
	return n
}

func indexOf(headers []string, match func(string) bool) int {
	for i, h := range headers {
		if match(h) {
			return i
		}
	}
	return -1
}

func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == a {
				out = append(out, c)
				// nested tables are walked from their own table node
				if a == atom.Table {
					walk(c)
				}
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if found := findAll(n, a); len(found) > 0 {
		return found[0]
	}
	return nil
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
