package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
)

// fallbackSectionTitle is returned for section lookups that point at a
// section which no longer exists. The UI may hold stale indices during
// transitions, so this degrades instead of failing.
const fallbackSectionTitle = "Категория"

// StoreUpdate is the minimal diff of one change cycle: row indices over the
// flattened visible ordering. A moved row appears as a delete at its old
// index plus an insert at its new one.
type StoreUpdate struct {
	InsertedIndexes []int
	DeletedIndexes  []int
}

type section struct {
	title    string
	trackers []model.Tracker
}

// TrackerProvider projects the persisted tracker set into the visible,
// sectioned view for the selected date. After every committed mutation or
// date change it runs exactly one change cycle: it re-evaluates the filter,
// swaps in the new visible set and delivers one StoreUpdate to the listener.
type TrackerProvider struct {
	store repository.DataStore

	mu       sync.Mutex
	current  time.Time
	sections []section
	flat     []uuid.UUID
	listener func(StoreUpdate)
}

func NewTrackerProvider(store repository.DataStore) *TrackerProvider {
	return &TrackerProvider{
		store:   store,
		current: time.Now(),
	}
}

// SetListener registers the collaborator callback invoked once per change
// cycle. Pass nil to stop notifications.
func (p *TrackerProvider) SetListener(fn func(StoreUpdate)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listener = fn
}

// CurrentDate returns the date the visible set is filtered for.
func (p *TrackerProvider) CurrentDate() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// SetCurrentDate re-filters the visible set for the new date and runs one
// change cycle.
func (p *TrackerProvider) SetCurrentDate(ctx context.Context, date time.Time) error {
	p.mu.Lock()
	p.current = date
	update, err := p.refreshLocked(ctx)
	listener := p.listener
	p.mu.Unlock()
	if err != nil {
		return err
	}
	if listener != nil {
		listener(update)
	}
	return nil
}

// AddTracker persists the tracker into the named category and runs one
// change cycle.
func (p *TrackerProvider) AddTracker(ctx context.Context, tracker model.Tracker, categoryTitle string) error {
	if err := p.store.AddTracker(ctx, tracker, categoryTitle); err != nil {
		return err
	}
	return p.notifyAfterMutation(ctx)
}

// DeleteTracker removes the tracker (and its records) and runs one change
// cycle.
func (p *TrackerProvider) DeleteTracker(ctx context.Context, id uuid.UUID) error {
	if err := p.store.DeleteTracker(ctx, id); err != nil {
		return err
	}
	return p.notifyAfterMutation(ctx)
}

// DeleteCategory removes the category row, orphaning its trackers under the
// fallback title, and runs one change cycle.
func (p *TrackerProvider) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := p.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	return p.notifyAfterMutation(ctx)
}

func (p *TrackerProvider) NumberOfCategories() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sections)
}

// NumberOfTrackersInCategory returns 0 for an out-of-range section instead
// of failing: the UI may query stale indices during a transition.
func (p *TrackerProvider) NumberOfTrackersInCategory(sectionIndex int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if sectionIndex < 0 || sectionIndex >= len(p.sections) {
		return 0
	}
	return len(p.sections[sectionIndex].trackers)
}

// TrackerAt returns nil for an out-of-range position.
func (p *TrackerProvider) TrackerAt(sectionIndex, rowIndex int) *model.Tracker {
	p.mu.Lock()
	defer p.mu.Unlock()
	if sectionIndex < 0 || sectionIndex >= len(p.sections) {
		return nil
	}
	rows := p.sections[sectionIndex].trackers
	if rowIndex < 0 || rowIndex >= len(rows) {
		return nil
	}
	tracker := rows[rowIndex]
	return &tracker
}

// CategoryTitleAt returns a defined fallback title when the section is
// missing.
func (p *TrackerProvider) CategoryTitleAt(sectionIndex int) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if sectionIndex < 0 || sectionIndex >= len(p.sections) {
		return fallbackSectionTitle
	}
	return p.sections[sectionIndex].title
}

// VisibleTrackers returns the current visible set in section order, flattened.
func (p *TrackerProvider) VisibleTrackers() []model.Tracker {
	p.mu.Lock()
	defer p.mu.Unlock()
	flat := make([]model.Tracker, 0, len(p.flat))
	for _, sec := range p.sections {
		flat = append(flat, sec.trackers...)
	}
	return flat
}

func (p *TrackerProvider) notifyAfterMutation(ctx context.Context) error {
	p.mu.Lock()
	update, err := p.refreshLocked(ctx)
	listener := p.listener
	p.mu.Unlock()
	if err != nil {
		return err
	}
	if listener != nil {
		listener(update)
	}
	return nil
}

// refreshLocked rebuilds the visible set for the current date and computes
// the diff against the previous ordering. Diff state starts from scratch
// every cycle, so indices from an earlier delivery can never leak into the
// next one.
func (p *TrackerProvider) refreshLocked(ctx context.Context) (StoreUpdate, error) {
	trackers, err := p.store.ListTrackers(ctx)
	if err != nil {
		return StoreUpdate{}, fmt.Errorf("refresh visible set: %w", err)
	}

	grouped := make(map[string][]model.Tracker)
	for _, tracker := range trackers {
		if !tracker.VisibleOn(p.current) {
			continue
		}
		title := tracker.CategoryTitle()
		grouped[title] = append(grouped[title], tracker)
	}

	titles := make([]string, 0, len(grouped))
	for title := range grouped {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	sections := make([]section, 0, len(titles))
	flat := make([]uuid.UUID, 0, len(trackers))
	for _, title := range titles {
		rows := grouped[title]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
		sections = append(sections, section{title: title, trackers: rows})
		for _, tracker := range rows {
			flat = append(flat, tracker.ID)
		}
	}

	update := diffOrderings(p.flat, flat)
	p.sections = sections
	p.flat = flat
	return update, nil
}

// diffOrderings compares two flattened orderings by tracker identity. Rows
// that kept their index produce no events; everything else becomes a delete
// at the old index and/or an insert at the new one.
func diffOrderings(old, updated []uuid.UUID) StoreUpdate {
	oldIndex := make(map[uuid.UUID]int, len(old))
	for i, id := range old {
		oldIndex[id] = i
	}
	newIndex := make(map[uuid.UUID]int, len(updated))
	for i, id := range updated {
		newIndex[id] = i
	}

	update := StoreUpdate{
		InsertedIndexes: []int{},
		DeletedIndexes:  []int{},
	}
	for i, id := range old {
		if j, ok := newIndex[id]; !ok || j != i {
			update.DeletedIndexes = append(update.DeletedIndexes, i)
		}
	}
	for j, id := range updated {
		if i, ok := oldIndex[id]; !ok || i != j {
			update.InsertedIndexes = append(update.InsertedIndexes, j)
		}
	}
	return update
}
