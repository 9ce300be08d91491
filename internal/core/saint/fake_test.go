// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package saint_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sanctorale/sanctorale/internal/core/geo"
	"github.com/sanctorale/sanctorale/internal/core/saint"
	"github.com/sanctorale/sanctorale/internal/platform/apperr"
	"github.com/sanctorale/sanctorale/internal/platform/sec"
	"github.com/sanctorale/sanctorale/pkg/calendar"
	"github.com/sanctorale/sanctorale/pkg/pagination"
)

// # Fake Saint Store

// fakeStore is an in-memory Repository, PatronageRepository and ReferenceChecker.
type fakeStore struct {
	mu         sync.Mutex
	saints     map[int64]*saint.Saint
	patronages []*saint.Patronage
	places     map[int64]*geo.Place
	regions    map[int64]*geo.Region
	nextID     int64
	aggregates int
	now        func() time.Time

	// aggregateGate, when set, runs before every Aggregate and may block it.
	aggregateGate func(ctx context.Context) error
}

func newFakeStore(now func() time.Time) *fakeStore {
	return &fakeStore{
		saints: map[int64]*saint.Saint{},
		places: map[int64]*geo.Place{
			10: {ID: 10, Name: "Assisi", Slug: "assisi"},
			11: {ID: 11, Name: "Rome", Slug: "rome"},
		},
		regions: map[int64]*geo.Region{
			1: {ID: 1, Name: "Umbria", Slug: "umbria", Code: "UMB"},
		},
		now: now,
	}
}

func clone(s *saint.Saint) *saint.Saint {
	copied := *s
	return &copied
}

func (f *fakeStore) matches(filter saint.Filter, s *saint.Saint) bool {
	if filter.Search != "" {
		term := strings.ToLower(filter.Search)
		found := strings.Contains(strings.ToLower(s.Name), term)
		for _, text := range []*string{s.CanonicalName, s.Description} {
			if text != nil && strings.Contains(strings.ToLower(*text), term) {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	if filter.Category != nil && s.Category != *filter.Category {
		return false
	}
	if filter.FeastType != nil && s.FeastType != *filter.FeastType {
		return false
	}
	if filter.IsPatron != nil && s.IsPatron != *filter.IsPatron {
		return false
	}
	if filter.IsActive != nil && s.IsActive != *filter.IsActive {
		return false
	}
	if filter.MinPopularity != nil && s.PopularityScore < *filter.MinPopularity {
		return false
	}
	if len(filter.MonthDays) > 0 && !containsDay(filter.MonthDays, s.FeastDate.MonthDay()) {
		return false
	}
	if filter.Window != nil && !containsDay(calendar.Window(filter.Window.From, filter.Window.Days), s.FeastDate.MonthDay()) {
		return false
	}
	return true
}

func containsDay(days []calendar.MonthDay, day calendar.MonthDay) bool {
	for _, candidate := range days {
		if candidate == day {
			return true
		}
	}
	return false
}

func less(order saint.Sort, left, right *saint.Saint) bool {
	var cmp int
	switch order.Field {
	case saint.SortName:
		cmp = strings.Compare(left.Name, right.Name)
	case saint.SortPopularityScore:
		cmp = left.PopularityScore - right.PopularityScore
	case saint.SortCreatedAt:
		cmp = left.CreatedAt.Compare(right.CreatedAt)
	case saint.SortID:
		cmp = int(left.ID - right.ID)
	default:
		cmp = strings.Compare(left.FeastDate.MonthDay().Key(), right.FeastDate.MonthDay().Key())
	}
	if order.Direction == saint.Desc {
		cmp = -cmp
	}
	if cmp == 0 {
		return left.ID < right.ID
	}
	return cmp < 0
}

func (f *fakeStore) selectAll(filter saint.Filter) []*saint.Saint {
	matched := []*saint.Saint{}
	for _, s := range f.saints {
		if f.matches(filter, s) {
			matched = append(matched, clone(s))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return less(filter.Sort, matched[i], matched[j]) })
	return matched
}

func (f *fakeStore) List(_ context.Context, filter saint.Filter, page pagination.Params) ([]*saint.Saint, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := f.selectAll(filter)
	total := len(matched)
	start := page.Offset()
	if start >= total {
		return []*saint.Saint{}, total, nil
	}
	end := min(start+page.PerPage, total)
	return matched[start:end], total, nil
}

func (f *fakeStore) ListAll(_ context.Context, filter saint.Filter) ([]*saint.Saint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selectAll(filter), nil
}

func (f *fakeStore) FindByID(_ context.Context, id int64) (*saint.Saint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, found := f.saints[id]
	if !found {
		return nil, apperr.NotFound("Saint")
	}
	hydrated := clone(s)
	if hydrated.PlaceID != nil {
		if place, ok := f.places[*hydrated.PlaceID]; ok {
			hydrated.Place = place.Summary()
		}
	}
	return hydrated, nil
}

func (f *fakeStore) SlugExists(_ context.Context, slug string, excludeID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, s := range f.saints {
		if s.Slug == slug && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Create(ctx context.Context, s *saint.Saint) error {
	if taken, _ := f.SlugExists(ctx, s.Slug, 0); taken {
		return apperr.FieldInvalid(saint.FieldSlug, saint.MessageSlugTaken)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = f.now().Add(time.Duration(s.ID) * time.Second)
	s.UpdatedAt = s.CreatedAt
	f.saints[s.ID] = clone(s)
	return nil
}

func (f *fakeStore) Update(ctx context.Context, s *saint.Saint) error {
	if taken, _ := f.SlugExists(ctx, s.Slug, s.ID); taken {
		return apperr.FieldInvalid(saint.FieldSlug, saint.MessageSlugTaken)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, found := f.saints[s.ID]; !found {
		return apperr.NotFound("Saint")
	}
	s.UpdatedAt = f.now()
	f.saints[s.ID] = clone(s)
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, found := f.saints[id]; !found {
		return apperr.NotFound("Saint")
	}
	delete(f.saints, id)

	kept := f.patronages[:0]
	for _, patronage := range f.patronages {
		if patronage.SaintID != id {
			kept = append(kept, patronage)
		}
	}
	f.patronages = kept
	return nil
}

func (f *fakeStore) Aggregate(ctx context.Context) (saint.Counts, error) {
	if f.aggregateGate != nil {
		if err := f.aggregateGate(ctx); err != nil {
			return saint.Counts{}, err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.aggregates++
	counts := saint.Counts{ByCategory: map[saint.Category]int{}, ByFeastType: map[saint.FeastType]int{}}
	for _, s := range f.saints {
		counts.Totals.Total++
		if s.IsActive {
			counts.Totals.Active++
		}
		if s.IsUniversal {
			counts.Totals.Universal++
		}
		if s.IsLocal {
			counts.Totals.Local++
		}
		if s.IsPatron {
			counts.Totals.Patrons++
		}
		counts.ByCategory[s.Category]++
		counts.ByFeastType[s.FeastType]++
	}
	return counts, nil
}

// # Fake Patronage Store

type fakePatronages struct {
	store *fakeStore
}

func (p fakePatronages) ListBySaint(_ context.Context, saintID int64) ([]*saint.Patronage, error) {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()

	links := []*saint.Patronage{}
	for _, patronage := range p.store.patronages {
		if patronage.SaintID == saintID {
			copied := *patronage
			links = append(links, &copied)
		}
	}
	return links, nil
}

func (p fakePatronages) Create(_ context.Context, patronage *saint.Patronage) error {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()

	for _, existing := range p.store.patronages {
		if existing.SaintID == patronage.SaintID && existing.Target == patronage.Target {
			return apperr.FieldInvalid(saint.FieldTarget, saint.MessagePatronageTaken)
		}
	}
	p.store.nextID++
	patronage.ID = p.store.nextID
	patronage.CreatedAt = p.store.now()
	copied := *patronage
	p.store.patronages = append(p.store.patronages, &copied)
	return nil
}

func (p fakePatronages) Delete(_ context.Context, saintID, patronageID int64) error {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()

	for index, existing := range p.store.patronages {
		if existing.ID == patronageID && existing.SaintID == saintID {
			p.store.patronages = append(p.store.patronages[:index], p.store.patronages[index+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Patronage")
}

// # Fake Geography

func (f *fakeStore) PlaceExists(_ context.Context, id int64) (bool, error) {
	_, found := f.places[id]
	return found, nil
}

func (f *fakeStore) RegionExists(_ context.Context, id int64) (bool, error) {
	_, found := f.regions[id]
	return found, nil
}

func (f *fakeStore) GetPlace(_ context.Context, id int64) (*geo.Place, error) {
	if place, found := f.places[id]; found {
		return place, nil
	}
	return nil, apperr.NotFound("Place")
}

func (f *fakeStore) GetRegion(_ context.Context, id int64) (*geo.Region, error) {
	if region, found := f.regions[id]; found {
		return region, nil
	}
	return nil, apperr.NotFound("Region")
}

// # Fake Clock

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// # Fake Token Verifier

type fakeVerifier map[string]*sec.AuthClaims

func (v fakeVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if claims, found := v[token]; found {
		return claims, nil
	}
	return nil, apperr.Unauthorized("Invalid or expired token")
}
