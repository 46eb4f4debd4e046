package router

import (
	"sort"
	"strings"
)

type MenuEntry struct {
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	Fragment string `json:"fragment"`
}

func categoryIcon(cat string) string {
	c := strings.ToLower(cat)
	switch {
	case strings.Contains(c, "dress"):
		return "👗"
	case strings.Contains(c, "shoe"):
		return "👟"
	}
	return "📦"
}

// CategoryMenu lists "All" followed by the distinct categories in alphabetical order.
func CategoryMenu(categories []string) []MenuEntry {
	seen := map[string]struct{}{}
	distinct := make([]string, 0, len(categories))
	for _, c := range categories {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		distinct = append(distinct, c)
	}
	sort.Strings(distinct)

	menu := make([]MenuEntry, 0, len(distinct)+1)
	menu = append(menu, MenuEntry{Label: "All", Icon: "📦", Fragment: Route{Kind: Collection}.Fragment()})
	for _, c := range distinct {
		menu = append(menu, MenuEntry{
			Label:    c,
			Icon:     categoryIcon(c),
			Fragment: Route{Kind: CollectionCategory, Category: c}.Fragment(),
		})
	}
	return menu
}
