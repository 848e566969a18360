package profile

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("profile not found")

// Repository loads and stores role profiles. GetProfile resolves the
// organizational references (group, department, faculty) eagerly so
// dotted field paths can be walked without further queries.
type Repository interface {
	GetProfile(ctx context.Context, userID, role string) (*Profile, error)
	UpsertProfile(ctx context.Context, p *Profile) error
}
