package pycalc

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/log"
)

// NoFormulasFound is what ldform returns when nothing matches the query.
const NoFormulasFound = "no formulas found"

const formulaPrompt = "   which formula? >"

// Formula is one catalog entry: a descriptive key and the formula text, which
// is itself a valid calculator statement.
type Formula struct {
	Key  string
	Text string
}

// Catalog is a read-only, ordered formula dictionary.
type Catalog struct {
	entries []Formula
}

// NewCatalog returns a catalog holding entries in the given order. Keys must be
// unique; later duplicates are dropped.
func NewCatalog(entries ...Formula) *Catalog {
	c := &Catalog{}
	seen := map[string]bool{}
	for _, f := range entries {
		if seen[f.Key] {
			continue
		}
		seen[f.Key] = true
		c.entries = append(c.entries, f)
	}
	return c
}

// DefaultCatalog is the built-in physics formula dictionary.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Formula{"newton gravity", "F_g = G * m_1 * m_2 / r**2"},
		Formula{"newton gravity vector", "F_g = -G * m_1 * m_2 * r / abs(r)**2"},
		Formula{"coulomb electric force", "F_C = q_1*q_2 / (4*pi*epsilon_0 * r**2)"},
		Formula{"coulomb electric force vector", "F_C = q_1*q_2*r / (4*pi*epsilon_0 * abs(r)**2)"},
		Formula{"newton's second law vector", "F = m*a"},
		Formula{"angular momentum vector", "L = cross(r, p)"},
		Formula{"centripetal acceleration (angular circle centrifugal)", "a_c = r * omega**2"},
	)
}

// Entries returns a copy of the catalog in declaration order.
func (c *Catalog) Entries() []Formula {
	return append([]Formula(nil), c.entries...)
}

// Lookup returns, in declaration order, the entries whose key contains every
// whitespace-separated term of query (case-sensitive substring match). An
// empty query matches everything.
func (c *Catalog) Lookup(query string) []Formula {
	terms := strings.Fields(query)
	var out []Formula
	for _, f := range c.entries {
		if matchesAll(f.Key, terms) {
			out = append(out, f)
		}
	}
	return out
}

func matchesAll(key string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(key, t) {
			return false
		}
	}
	return true
}

// ---- natives --------------------------------------------------------------

func registerFormulaBuiltins(ip *Interpreter) {
	m := NewMap()
	for _, f := range ip.catalog.entries {
		m.Set(f.Key, Str(f.Text))
	}
	m.Frozen = true
	ip.Core.Define("formulas", MapVal(m))

	ip.RegisterNative("ldform", []ParamSpec{{Name: "query"}},
		"ldform(query): search the formula dictionary and return the chosen formula",
		func(ip *Interpreter, ctx CallCtx) Value {
			q := ctx.MustArg("query")
			if q.Tag != VTStr {
				failf("ldform() expects a query string, got %s", q.Tag)
			}
			return Str(ip.loadFormula(q.Data.(string)))
		})
}

// loadFormula lists the matches of query, asks which one to use, and returns
// its text. With a line-history collaborator present the user's answer is
// replaced in the history by the formula so it can be recalled and edited.
func (ip *Interpreter) loadFormula(query string) string {
	matches := ip.catalog.Lookup(query)
	if len(matches) == 0 {
		return NoFormulasFound
	}
	for i, f := range matches {
		fmt.Fprintf(ip.Out(), "%d %s : %s\n", i, f.Key, f.Text)
	}

	if ip.host.Prompt == nil {
		fail("ldform: no input available to choose a formula")
	}
	answer, err := ip.host.Prompt(formulaPrompt)
	if err != nil {
		failf("ldform: %v", err)
	}
	which, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		failf("invalid literal for int() with base 10: '%s'", answer)
	}
	chosen := matches[normIndex(Int(int64(which)), len(matches))].Text

	if h := ip.host.History; h != nil {
		if n := h.Len(); n > 0 {
			if err := h.Replace(n-1, chosen); err != nil {
				log.Warnf("ldform: could not rewrite history entry %d: %v", n-1, err)
			}
		}
	} else {
		log.LogVf("ldform: no line history, skipping rewrite")
	}
	return chosen
}
