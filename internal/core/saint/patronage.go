// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package saint

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sanctorale/sanctorale/internal/core/geo"
	"github.com/sanctorale/sanctorale/internal/platform/apperr"
)

// PatronageResource is the authorization resource name for patronage links.
const PatronageResource = "patronages"

// # Patronage Target

// TargetKind tags what a patronage points at.
type TargetKind string

const (
	TargetPlace  TargetKind = "place"
	TargetRegion TargetKind = "region"
)

// Target is a tagged reference to a row of another resource.
type Target struct {
	Kind TargetKind `json:"kind"`
	ID   int64      `json:"id"`
}

// String renders the target as "kind:id".
func (target Target) String() string {
	return fmt.Sprintf("%s:%d", target.Kind, target.ID)
}

// ResolvedTarget is a target with the summary of the row it points at.
type ResolvedTarget struct {
	Target
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Patronage links a saint to the place or region it protects.
type Patronage struct {
	ID        int64           `json:"id"`
	SaintID   int64           `json:"saint_id"`
	Target    Target          `json:"-"`
	Resolved  *ResolvedTarget `json:"target"`
	CreatedAt time.Time       `json:"created_at"`
}

// # Target Registry

// TargetResolver loads the summary of one target row, or returns apperr.NotFound.
type TargetResolver func(context context.Context, id int64) (*geo.Summary, error)

// TargetRegistry maps each kind to the accessor of its rows.
//
// It is safe for concurrent use; registration normally happens once at startup.
type TargetRegistry struct {
	mu        sync.RWMutex
	resolvers map[TargetKind]TargetResolver
}

// NewTargetRegistry returns an empty registry.
func NewTargetRegistry() *TargetRegistry {
	return &TargetRegistry{resolvers: make(map[TargetKind]TargetResolver)}
}

// GeoReader is the part of the geo service patronage targets need.
type GeoReader interface {
	GetPlace(context context.Context, id int64) (*geo.Place, error)
	GetRegion(context context.Context, id int64) (*geo.Region, error)
}

// NewGeoTargetRegistry registers places and regions read through reader.
func NewGeoTargetRegistry(reader GeoReader) *TargetRegistry {
	registry := NewTargetRegistry()

	registry.Register(TargetPlace, func(context context.Context, id int64) (*geo.Summary, error) {
		place, err := reader.GetPlace(context, id)
		if err != nil {
			return nil, err
		}
		return place.Summary(), nil
	})

	registry.Register(TargetRegion, func(context context.Context, id int64) (*geo.Summary, error) {
		region, err := reader.GetRegion(context, id)
		if err != nil {
			return nil, err
		}
		return region.Summary(), nil
	})

	return registry
}

// Register binds kind to resolver, replacing any previous binding.
func (registry *TargetRegistry) Register(kind TargetKind, resolver TargetResolver) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.resolvers[kind] = resolver
}

// Kinds lists the registered kinds in lexical order.
func (registry *TargetRegistry) Kinds() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	kinds := make([]string, 0, len(registry.resolvers))
	for kind := range registry.resolvers {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	return kinds
}

// Supports reports whether kind has a resolver.
func (registry *TargetRegistry) Supports(kind TargetKind) bool {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	_, found := registry.resolvers[kind]
	return found
}

/*
Resolve loads the summary behind target.

Returns:
  - *ResolvedTarget: Target plus name and slug
  - error: validation error for an unknown kind, apperr.NotFound for a missing row
*/
func (registry *TargetRegistry) Resolve(context context.Context, target Target) (*ResolvedTarget, error) {
	registry.mu.RLock()
	resolver, found := registry.resolvers[target.Kind]
	registry.mu.RUnlock()

	if !found {
		return nil, apperr.FieldInvalid(FieldTargetKind, "Unsupported target kind")
	}

	summary, err := resolver(context, target.ID)
	if err != nil {
		return nil, err
	}

	return &ResolvedTarget{Target: target, Name: summary.Name, Slug: summary.Slug}, nil
}

// # Input

// PatronageInput is the body of a patronage creation request.
type PatronageInput struct {
	TargetKind string `json:"target_kind"`
	TargetID   int64  `json:"target_id"`
}

// Patronage request fields.
const (
	FieldTargetKind = "target_kind"
	FieldTargetID   = "target_id"
	FieldTarget     = "target"

	MessagePatronageTaken = "The saint is already patron of this target."
)
