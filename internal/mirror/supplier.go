package mirror

import (
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Supplier hands out catalog mirror URLs in round-robin order
type Supplier interface {
	Get() string
	Len() int
}

type supplier struct {
	mirrors []string
	current int
	mutex   sync.Mutex
}

// NewSupplier creates a Supplier over the non-empty, distinct urls
func NewSupplier(urls []string) Supplier {
	mirrors := make([]string, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))

	for _, url := range urls {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		if _, ok := seen[url]; ok {
			log.Debugf("Skipping duplicate catalog mirror %s", url)
			continue
		}
		seen[url] = struct{}{}
		mirrors = append(mirrors, url)
	}

	log.Infof("🔗 Catalog mirror supplier initialized with %d mirrors", len(mirrors))

	return &supplier{mirrors: mirrors}
}

// Get returns the next mirror URL in round-robin fashion
func (s *supplier) Get() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.mirrors) == 0 {
		return "" // No mirrors configured
	}

	url := s.mirrors[s.current]
	s.current = (s.current + 1) % len(s.mirrors)

	return url
}

func (s *supplier) Len() int {
	return len(s.mirrors)
}
