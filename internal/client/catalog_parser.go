package client

import (
	"encoding/json"
	"fmt"

	"storefront/app/internal/domain"

	log "github.com/sirupsen/logrus"
)

// ParseCatalog decodes a catalog document keyed by tab. Unknown tabs are
// ignored, null items are dropped, and item order is preserved.
func ParseCatalog(data []byte) (domain.Catalog, error) {
	var raw map[string]*domain.TabCatalog
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	catalog := make(domain.Catalog, len(raw))
	for name, content := range raw {
		tab := domain.Tab(name)
		if !tab.IsKnown() {
			log.Warnf("⚠️ Ignoring unknown catalog tab %q", name)
			continue
		}
		if content == nil {
			content = &domain.TabCatalog{}
		}

		items := make([]*domain.Item, 0, len(content.Items))
		for _, item := range content.Items {
			if item == nil {
				continue
			}
			items = append(items, item)
		}
		content.Items = items
		if content.Subcategories == nil {
			content.Subcategories = []string{}
		}

		catalog[tab] = content
		log.Debugf("Parsed tab %s with %d items and %d subcategories", tab, len(items), len(content.Subcategories))
	}

	if len(catalog) == 0 {
		return nil, fmt.Errorf("catalog contains no known tabs")
	}

	return catalog, nil
}
