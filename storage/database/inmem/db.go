package inmemdb

import (
	"sync"

	"github.com/iljicevs/eduportal/core/academic"
	"github.com/iljicevs/eduportal/core/messaging"
	"github.com/iljicevs/eduportal/core/profile"
	"github.com/iljicevs/eduportal/core/schedule"
	"github.com/iljicevs/eduportal/core/settings"
	"github.com/iljicevs/eduportal/core/user"
)

// DB is the in-memory storage backend used by tests and local toying.
// Tables are plain maps guarded by one mutex; the data set is always
// small.
type DB struct {
	mutex sync.RWMutex

	users     map[string]*user.User
	profiles  map[string]*profile.Profile // by user ID
	site      *settings.SiteSettings
	overrides map[string]overrideSet // by role
	slots     map[string]*schedule.TimeSlot
	types     map[string]*schedule.ClassType
	items     map[string]*schedule.Item
	grades    map[string]*academic.Grade
	messages  map[string]*messaging.Message
}

type overrideSet struct {
	fields   map[string]bool
	sections map[string]bool
}

func NewDB() *DB {
	return &DB{
		users:     make(map[string]*user.User),
		profiles:  make(map[string]*profile.Profile),
		overrides: make(map[string]overrideSet),
		slots:     make(map[string]*schedule.TimeSlot),
		types:     make(map[string]*schedule.ClassType),
		items:     make(map[string]*schedule.Item),
		grades:    make(map[string]*academic.Grade),
		messages:  make(map[string]*messaging.Message),
	}
}
