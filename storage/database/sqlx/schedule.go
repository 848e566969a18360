package sqlxrepos

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/iljicevs/eduportal/core/schedule"
)

type scheduleItemRow struct {
	ID          string    `db:"id"`
	Subject     string    `db:"subject"`
	TeacherID   string    `db:"teacher_id"`
	TeacherName string    `db:"teacher_name"`
	Room        string    `db:"room"`
	Weekday     int       `db:"weekday"`
	WeekType    string    `db:"week_type"`
	Comment     string    `db:"comment"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`

	SlotID         string `db:"slot_id"`
	SlotNumber     int    `db:"slot_number"`
	SlotStart      string `db:"slot_start"`
	SlotEnd        string `db:"slot_end"`
	SlotBreak      int    `db:"slot_break"`
	TypeID         string `db:"type_id"`
	TypeName       string `db:"type_name"`
	TypeShort      string `db:"type_short"`
	TypeColor      string `db:"type_color"`
	GroupIDsJoin   string `db:"group_ids"`
	GroupNamesJoin string `db:"group_names"`
}

func (r scheduleItemRow) toCore() schedule.Item {
	it := schedule.Item{
		ID:          r.ID,
		Subject:     r.Subject,
		TeacherID:   r.TeacherID,
		TeacherName: r.TeacherName,
		Room:        r.Room,
		Weekday:     r.Weekday,
		WeekType:    r.WeekType,
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		TimeSlot: schedule.TimeSlot{
			ID:         r.SlotID,
			Number:     r.SlotNumber,
			StartTime:  r.SlotStart,
			EndTime:    r.SlotEnd,
			BreakAfter: r.SlotBreak,
		},
		ClassType: schedule.ClassType{
			ID:        r.TypeID,
			Name:      r.TypeName,
			ShortName: r.TypeShort,
			Color:     r.TypeColor,
		},
	}
	if r.GroupIDsJoin != "" {
		it.GroupIDs = strings.Split(r.GroupIDsJoin, ",")
	}
	if r.GroupNamesJoin != "" {
		it.GroupNames = strings.Split(r.GroupNamesJoin, ",")
	}
	return it
}

type scheduleRepository struct {
	db *sqlx.DB
}

var _ schedule.Repository = (*scheduleRepository)(nil)

func NewScheduleRepository(db *sqlx.DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

func (repo *scheduleRepository) ListTimeSlots(ctx context.Context) ([]schedule.TimeSlot, error) {
	var slots []schedule.TimeSlot
	err := repo.db.SelectContext(ctx, &slots, `
		SELECT id, number, start_time, end_time, break_after
		FROM time_slot ORDER BY number`)
	return slots, errors.Wrap(err, "listing time slots")
}

func (repo *scheduleRepository) ListClassTypes(ctx context.Context) ([]schedule.ClassType, error) {
	var types []schedule.ClassType
	err := repo.db.SelectContext(ctx, &types, `
		SELECT id, name, short_name, color FROM class_type ORDER BY name`)
	return types, errors.Wrap(err, "listing class types")
}

func (repo *scheduleRepository) CreateTimeSlot(ctx context.Context, ts *schedule.TimeSlot) error {
	if ts.ID == "" {
		ts.ID = uuid.New().String()
	}
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO time_slot (id, number, start_time, end_time, break_after)
		VALUES (:id, :number, :start_time, :end_time, :break_after)`, ts)
	return errors.Wrap(err, "inserting time slot")
}

func (repo *scheduleRepository) CreateClassType(ctx context.Context, ct *schedule.ClassType) error {
	if ct.ID == "" {
		ct.ID = uuid.New().String()
	}
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO class_type (id, name, short_name, color)
		VALUES (:id, :name, :short_name, :color)`, ct)
	return errors.Wrap(err, "inserting class type")
}

func (repo *scheduleRepository) CreateItem(ctx context.Context, it *schedule.Item) error {
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	it.CreatedAt, it.UpdatedAt = now, now

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning schedule tx")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO schedule_item (id, subject, teacher_id, class_type_id, room,
			time_slot_id, weekday, week_type, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		it.ID, it.Subject, it.TeacherID, it.ClassType.ID, it.Room,
		it.TimeSlot.ID, it.Weekday, it.WeekType, it.Comment, now); err != nil {
		return errors.Wrap(err, "inserting schedule item")
	}
	for _, groupID := range it.GroupIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO schedule_item_group (item_id, group_id) VALUES ($1, $2)`,
			it.ID, groupID); err != nil {
			return errors.Wrap(err, "linking schedule item group")
		}
	}
	return errors.Wrap(tx.Commit(), "committing schedule item")
}

const scheduleItemQuery = `
	SELECT i.id, i.subject, i.teacher_id, i.room, i.weekday, i.week_type,
		i.comment, i.created_at, i.updated_at,
		COALESCE(NULLIF(TRIM(u.last_name || ' ' || u.first_name), ''), u.username) AS teacher_name,
		ts.id AS slot_id, ts.number AS slot_number, ts.start_time AS slot_start,
		ts.end_time AS slot_end, ts.break_after AS slot_break,
		ct.id AS type_id, ct.name AS type_name, ct.short_name AS type_short,
		ct.color AS type_color,
		COALESCE(STRING_AGG(g.id::text, ',' ORDER BY g.name), '') AS group_ids,
		COALESCE(STRING_AGG(g.name, ',' ORDER BY g.name), '') AS group_names
	FROM schedule_item i
	JOIN time_slot ts ON ts.id = i.time_slot_id
	JOIN class_type ct ON ct.id = i.class_type_id
	JOIN app_user u ON u.id = i.teacher_id
	LEFT JOIN schedule_item_group ig ON ig.item_id = i.id
	LEFT JOIN study_group g ON g.id = ig.group_id`

const scheduleItemGroupBy = ` GROUP BY i.id, u.last_name, u.first_name, u.username,
	ts.id, ct.id`

func (repo *scheduleRepository) FilterItems(ctx context.Context, filter schedule.Filter) ([]schedule.Item, error) {
	conds := []string{"TRUE"}
	args := make([]interface{}, 0, 4)

	if filter.TeacherID != "" {
		conds = append(conds, "i.teacher_id = ?")
		args = append(args, filter.TeacherID)
	}
	if filter.GroupID != "" {
		conds = append(conds, `i.id IN (SELECT item_id FROM schedule_item_group WHERE group_id = ?)`)
		args = append(args, filter.GroupID)
	}
	if filter.Weekday != 0 {
		conds = append(conds, "i.weekday = ?")
		args = append(args, filter.Weekday)
	}
	if filter.WeekType != "" && filter.WeekType != schedule.WeekEvery {
		conds = append(conds, "(i.week_type = 'every' OR i.week_type = ?)")
		args = append(args, filter.WeekType)
	}

	q := scheduleItemQuery + " WHERE " + strings.Join(conds, " AND ") + scheduleItemGroupBy +
		" ORDER BY i.weekday, ts.number"
	q = repo.db.Rebind(q)

	var rows []scheduleItemRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering schedule items")
	}
	items := make([]schedule.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.toCore())
	}
	return items, nil
}
