package stylist

import (
	"fmt"
	"regexp"
	"strings"
)

// Corrector reclassifies a candidate's garment role from its title. Catalog
// and vision categories are unreliable; title keywords are the best available
// signal, so the decision is purely title-driven and therefore idempotent.
type Corrector struct {
	patterns []rolePattern
	fallback map[string]Role
}

type rolePattern struct {
	role Role
	re   *regexp.Regexp
}

// NewCorrector compiles the ordered keyword table into title patterns.
func NewCorrector(tables *Tables) (*Corrector, error) {
	c := &Corrector{
		fallback: map[string]Role{},
	}
	for _, rk := range tables.CategoryKeywords {
		if len(rk.Keywords) == 0 {
			continue
		}
		escaped := make([]string, len(rk.Keywords))
		for i, kw := range rk.Keywords {
			escaped[i] = regexp.QuoteMeta(strings.ToLower(kw))
		}
		re, err := regexp.Compile(`(?i)(^|[^a-z])(` + strings.Join(escaped, "|") + `)([^a-z]|$)`)
		if err != nil {
			return nil, fmt.Errorf("failed to compile patterns for role %s: %w", rk.Role, err)
		}
		c.patterns = append(c.patterns, rolePattern{role: rk.Role, re: re})
		c.fallback[string(rk.Role)] = rk.Role
		c.fallback[string(rk.Role)+"s"] = rk.Role
	}
	return c, nil
}

// Correct returns the garment role for a title, scanning the pattern table in
// priority order and falling back to a normalized form of the catalog
// category, then RoleOther.
func (c *Corrector) Correct(title, catalogCategory string) Role {
	for _, rp := range c.patterns {
		if rp.re.MatchString(title) {
			return rp.role
		}
	}
	if role, ok := c.fallback[strings.ToLower(strings.TrimSpace(catalogCategory))]; ok {
		return role
	}
	return RoleOther
}
