package server

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"empathybridge/generator"
)

// storyStore keeps the most recent stories in memory. Older stories are
// evicted once the store is full; nothing survives a restart.
type storyStore struct {
	cache *lru.Cache[string, generator.Story]
}

func newStore(size int) (*storyStore, error) {
	c, err := lru.New[string, generator.Story](size)
	if err != nil {
		return nil, err
	}
	return &storyStore{cache: c}, nil
}

func (s *storyStore) set(story generator.Story) {
	s.cache.Add(story.ID, story)
}

func (s *storyStore) get(id string) (generator.Story, bool) {
	return s.cache.Get(id)
}

func (s *storyStore) remove(id string) bool {
	return s.cache.Remove(id)
}

func (s *storyStore) len() int {
	return s.cache.Len()
}
