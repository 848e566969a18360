package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/iljicevs/eduportal/core/schedule"
)

type scheduleRepository struct {
	db *DB
}

var _ schedule.Repository = (*scheduleRepository)(nil)

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

func (repo *scheduleRepository) ListTimeSlots(ctx context.Context) ([]schedule.TimeSlot, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	slots := make([]schedule.TimeSlot, 0, len(repo.db.slots))
	for _, ts := range repo.db.slots {
		slots = append(slots, *ts)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Number < slots[j].Number })
	return slots, nil
}

func (repo *scheduleRepository) ListClassTypes(ctx context.Context) ([]schedule.ClassType, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	types := make([]schedule.ClassType, 0, len(repo.db.types))
	for _, ct := range repo.db.types {
		types = append(types, *ct)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	return types, nil
}

func (repo *scheduleRepository) CreateTimeSlot(ctx context.Context, ts *schedule.TimeSlot) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if ts.ID == "" {
		ts.ID = uuid.New().String()
	}
	cp := *ts
	repo.db.slots[ts.ID] = &cp
	return nil
}

func (repo *scheduleRepository) CreateClassType(ctx context.Context, ct *schedule.ClassType) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if ct.ID == "" {
		ct.ID = uuid.New().String()
	}
	cp := *ct
	repo.db.types[ct.ID] = &cp
	return nil
}

func (repo *scheduleRepository) CreateItem(ctx context.Context, it *schedule.Item) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	it.CreatedAt = now
	it.UpdatedAt = now
	cp := *it
	repo.db.items[it.ID] = &cp
	return nil
}

func (repo *scheduleRepository) FilterItems(ctx context.Context, filter schedule.Filter) ([]schedule.Item, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var items []schedule.Item
	for _, it := range repo.db.items {
		if filter.TeacherID != "" && it.TeacherID != filter.TeacherID {
			continue
		}
		if filter.GroupID != "" && !containsGroup(it.GroupIDs, filter.GroupID) {
			continue
		}
		if filter.Weekday != 0 && it.Weekday != filter.Weekday {
			continue
		}
		if filter.WeekType != "" && !it.OccursOn(filter.WeekType) {
			continue
		}
		items = append(items, *it)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Weekday != items[j].Weekday {
			return items[i].Weekday < items[j].Weekday
		}
		return items[i].TimeSlot.Number < items[j].TimeSlot.Number
	})
	return items, nil
}

func containsGroup(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
