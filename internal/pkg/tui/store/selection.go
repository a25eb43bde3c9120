package store

import (
	"sync"

	"github.com/tegorov/flipt/internal/pkg/analytics"
)

// Selection holds the namespace and flag the analytics view is scoped to.
// The TUI update loop writes it; orchestrator refreshes read it.
type Selection struct {
	mu        sync.RWMutex
	namespace string
	flag      analytics.Flag
}

var (
	_ analytics.NamespaceProvider = (*Selection)(nil)
	_ analytics.FlagProvider      = (*Selection)(nil)
)

// NewSelection creates a selection for the given namespace and flag
func NewSelection(namespace string, flag analytics.Flag) *Selection {
	return &Selection{namespace: namespace, flag: flag}
}

// CurrentNamespace implements analytics.NamespaceProvider
func (s *Selection) CurrentNamespace() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.namespace
}

// CurrentFlag implements analytics.FlagProvider
func (s *Selection) CurrentFlag() analytics.Flag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flag
}

// SetNamespace switches namespace. The flag is cleared because flag keys are
// scoped to a namespace. Returns false when nothing changed.
func (s *Selection) SetNamespace(namespace string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.namespace == namespace {
		return false
	}
	s.namespace = namespace
	s.flag = analytics.Flag{}
	return true
}

// SetFlag switches flag. Returns false when nothing changed.
func (s *Selection) SetFlag(flag analytics.Flag) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flag == flag {
		return false
	}
	s.flag = flag
	return true
}
