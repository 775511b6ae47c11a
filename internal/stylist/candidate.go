package stylist

import "github.com/stylifyapp/stylist/internal/catalog"

// Candidate is a catalog item under consideration for an outfit: the product
// joined with its vision attributes, plus the corrected garment role and the
// relevance score computed for the current request.
type Candidate struct {
	catalog.Item
	Role      Role
	Relevance int
	Breakdown Breakdown
}

// Group buckets candidates by corrected role. Order within a bucket follows
// the input order, which retrieval has already ranked.
func Group(cands []Candidate) map[Role][]Candidate {
	groups := make(map[Role][]Candidate, len(Roles))
	for _, c := range cands {
		role := c.Role
		if !knownRole(role) {
			role = RoleOther
		}
		groups[role] = append(groups[role], c)
	}
	return groups
}

func knownRole(r Role) bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}
