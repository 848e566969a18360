package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/iljicevs/eduportal/core/academic"
)

type academicRepository struct {
	db *DB
}

var _ academic.Repository = (*academicRepository)(nil)

func NewAcademicRepository(db *DB) academic.Repository {
	return &academicRepository{db: db}
}

func (repo *academicRepository) CreateGrade(ctx context.Context, g *academic.Grade) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.GradedAt.IsZero() {
		g.GradedAt = time.Now().UTC()
	}
	g.CreatedAt = time.Now().UTC()
	cp := *g
	repo.db.grades[g.ID] = &cp
	return nil
}

func (repo *academicRepository) FilterGrades(ctx context.Context, filter academic.Filter) ([]academic.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var grades []academic.Grade
	for _, g := range repo.db.grades {
		if filter.StudentID != "" && g.StudentID != filter.StudentID {
			continue
		}
		if filter.TeacherID != "" && g.TeacherID != filter.TeacherID {
			continue
		}
		if filter.Subject != "" && g.Subject != filter.Subject {
			continue
		}
		if filter.Kind != "" && g.Kind != filter.Kind {
			continue
		}
		grades = append(grades, *g)
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i].GradedAt.After(grades[j].GradedAt) })
	return grades, nil
}

func (repo *academicRepository) DeleteGrade(ctx context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.grades[id]; !ok {
		return academic.ErrNotFound
	}
	delete(repo.db.grades, id)
	return nil
}
