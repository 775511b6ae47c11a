// Package stylist implements the outfit recommendation pipeline: fuzzy
// catalog retrieval, title-driven category correction, multi-axis relevance
// scoring, role grouping and outfit assembly.
package stylist

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Role is a fixed garment role used for outfit assembly.
type Role string

const (
	RoleTop       Role = "top"
	RoleBottom    Role = "bottom"
	RoleDress     Role = "dress"
	RoleOuterwear Role = "outerwear"
	RoleShoes     Role = "shoes"
	RoleAccessory Role = "accessory"
	RoleOther     Role = "other"
)

// Roles lists all roles in their fixed order.
var Roles = []Role{RoleTop, RoleBottom, RoleDress, RoleOuterwear, RoleShoes, RoleAccessory, RoleOther}

// FallbackOccasion is the generic occasion credited when a request names no
// occasion, or an item only suits everyday wear.
const FallbackOccasion = "casual"

// RoleKeywords maps one role to the title keywords that identify it.
type RoleKeywords struct {
	Role     Role     `yaml:"role"`
	Keywords []string `yaml:"keywords"`
}

// Tables holds the static lookup data of the pipeline: the ordered
// title-keyword table used for category correction and role-restricted
// retrieval, and the color compatibility relation. Tables are built once at
// startup and shared read-only.
type Tables struct {
	CategoryKeywords []RoleKeywords      `yaml:"category_keywords"`
	ColorCompat      map[string][]string `yaml:"color_compatibility"`
}

// DefaultTables returns the built-in lookup data. The category keyword order
// is a priority order: dress before top so "shirt dress" classifies as dress,
// outerwear before top so "denim jacket" does not classify as top.
func DefaultTables() *Tables {
	return &Tables{
		CategoryKeywords: []RoleKeywords{
			{Role: RoleDress, Keywords: []string{
				"dress", "gown", "frock", "jumpsuit", "romper",
			}},
			{Role: RoleOuterwear, Keywords: []string{
				"jacket", "coat", "blazer", "hoodie", "cardigan", "parka", "windbreaker", "vest",
			}},
			{Role: RoleTop, Keywords: []string{
				"shirt", "blouse", "t-shirt", "tshirt", "tee", "sweater", "tank",
				"top", "polo", "camisole", "pullover", "turtleneck", "crop",
			}},
			{Role: RoleBottom, Keywords: []string{
				"pants", "jeans", "skirt", "shorts", "leggings", "trousers",
				"chinos", "joggers", "culottes", "slacks",
			}},
			{Role: RoleShoes, Keywords: []string{
				"shoes", "sneakers", "boots", "heels", "sandals", "loafers", "flats", "pumps",
			}},
			{Role: RoleAccessory, Keywords: []string{
				"bag", "belt", "scarf", "hat", "necklace", "earrings", "bracelet",
				"watch", "sunglasses", "clutch",
			}},
		},
		ColorCompat: map[string][]string{
			"black":  {"white", "grey", "gray", "red", "beige", "gold", "silver", "pink", "blue", "green"},
			"white":  {"black", "blue", "navy", "red", "beige", "brown", "green", "pink", "grey", "gray"},
			"grey":   {"black", "white", "pink", "blue", "navy", "red", "yellow"},
			"gray":   {"black", "white", "pink", "blue", "navy", "red", "yellow"},
			"navy":   {"white", "beige", "grey", "gray", "red", "yellow", "pink"},
			"blue":   {"white", "beige", "grey", "gray", "brown", "yellow"},
			"red":    {"black", "white", "navy", "grey", "gray", "beige"},
			"green":  {"white", "black", "beige", "brown", "cream"},
			"pink":   {"white", "grey", "gray", "navy", "black", "beige"},
			"beige":  {"black", "white", "navy", "brown", "green", "blue", "red", "pink"},
			"brown":  {"white", "beige", "cream", "blue", "green"},
			"yellow": {"navy", "blue", "grey", "gray", "white"},
			"purple": {"white", "grey", "gray", "black"},
			"orange": {"white", "navy", "brown"},
			"cream":  {"brown", "green", "navy", "black"},
			"gold":   {"black", "white", "navy"},
			"silver": {"black", "white", "navy"},
		},
	}
}

// LoadTables reads a YAML override file; missing sections fall back to the
// built-in defaults.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables file: %w", err)
	}

	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse tables file: %w", err)
	}

	defaults := DefaultTables()
	if len(t.CategoryKeywords) == 0 {
		t.CategoryKeywords = defaults.CategoryKeywords
	}
	if len(t.ColorCompat) == 0 {
		t.ColorCompat = defaults.ColorCompat
	}
	return &t, nil
}

// KeywordsFor returns the title keywords for one role, or nil.
func (t *Tables) KeywordsFor(role Role) []string {
	for _, rk := range t.CategoryKeywords {
		if rk.Role == role {
			return rk.Keywords
		}
	}
	return nil
}

// Compatible reports whether two colors can be worn together. The relation is
// reflexive and symmetric; an unknown or missing color pairs with anything,
// since sparse vision data must never block assembly.
func (t *Tables) Compatible(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" || a == b {
		return true
	}
	if containsString(t.ColorCompat[a], b) || containsString(t.ColorCompat[b], a) {
		return true
	}
	// Colors absent from the table have no compatibility data; treat them as
	// neutral rather than unpairable.
	_, aKnown := t.ColorCompat[a]
	_, bKnown := t.ColorCompat[b]
	return !aKnown || !bKnown
}

// CompatibleSet returns the colors compatible with c, for scoring.
func (t *Tables) CompatibleSet(c string) []string {
	return t.ColorCompat[strings.ToLower(strings.TrimSpace(c))]
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
