package services

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"peopledex/internal/models"
	"peopledex/internal/repositories"
)

// SearchService answers name searches from a per-process cache keyed
// by the exact query string. Cache entries live for the whole session;
// mutations do not invalidate them. Selecting a stale entry re-fetches
// the record on open, so the staleness is bounded and acceptable.
type SearchService struct {
	personRepo *repositories.PersonRepository
	group      singleflight.Group

	mu    sync.RWMutex
	cache map[string][]*models.Person
}

func NewSearchService(personRepo *repositories.PersonRepository) *SearchService {
	return &SearchService{
		personRepo: personRepo,
		cache:      make(map[string][]*models.Person),
	}
}

// Search returns all people whose name contains the query as a
// case-insensitive substring. An empty query returns an empty result
// without touching the store, which bounds the work per keystroke.
func (s *SearchService) Search(ctx context.Context, query string) ([]*models.Person, error) {
	if query == "" {
		return nil, nil
	}

	s.mu.RLock()
	cached, ok := s.cache[query]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	// Concurrent identical queries collapse into one store round trip.
	// Distinct queries run independently and may complete out of order;
	// the caller decides whether a late result still applies.
	result, err, _ := s.group.Do(query, func() (interface{}, error) {
		people, err := s.personRepo.SearchByName(ctx, query)
		if err != nil {
			// Failures are not memoized.
			return nil, err
		}
		s.mu.Lock()
		s.cache[query] = people
		s.mu.Unlock()
		return people, nil
	})
	if err != nil {
		return nil, &SearchError{Err: err}
	}
	return result.([]*models.Person), nil
}
