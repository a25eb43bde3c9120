package analytics

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoNamespace is returned when the namespace provider yields an empty key.
	ErrNoNamespace = errors.New("no active namespace")
	// ErrNoFlag is returned when the flag context yields an empty key.
	ErrNoFlag = errors.New("no flag selected")
)

// Query identifies one evaluation-count request. Two queries are the same
// request only if all four fields match.
type Query struct {
	NamespaceKey string `json:"namespaceKey"`
	FlagKey      string `json:"flagKey"`
	From         string `json:"from"`
	To           string `json:"to"`
}

// Validate checks that the identifiers are present.
func (q Query) Validate() error {
	if q.NamespaceKey == "" {
		return ErrNoNamespace
	}
	if q.FlagKey == "" {
		return ErrNoFlag
	}
	return nil
}

// Flag is the flag being viewed.
type Flag struct {
	Key  string
	Name string
}

// Label returns the name when set, the key otherwise.
func (f Flag) Label() string {
	if f.Name != "" {
		return f.Name
	}
	return f.Key
}

// NamespaceProvider supplies the active namespace key.
type NamespaceProvider interface {
	CurrentNamespace() string
}

// FlagProvider supplies the flag being viewed.
type FlagProvider interface {
	CurrentFlag() Flag
}

// Querier fetches the evaluation-count series for a query. Retries and
// transport belong to the implementation.
type Querier interface {
	GetFlagEvaluationsCount(ctx context.Context, q Query) (*EvaluationSeries, error)
}

// Observer receives orchestrator events. Implementations must be safe for
// concurrent use.
type Observer interface {
	QueryStarted(q Query)
	QueryFinished(q Query, elapsed time.Duration, err error)
	StaleDiscarded(q Query)
}

type nopObserver struct{}

func (nopObserver) QueryStarted(Query) {}
func (nopObserver) QueryFinished(Query, time.Duration, error) {}
func (nopObserver) StaleDiscarded(Query) {}
