package staff

import (
	"math/rand"
	"strings"
	"time"

	"nippo/internal/domain"
)

// Palette is the fixed set of display colors; new staff get a random pick,
// edits may choose one explicitly.
var Palette = []string{
	"indigo", "emerald", "rose", "amber",
	"sky", "violet", "fuchsia", "pink",
	"teal", "orange", "cyan", "lime",
}

type Store interface {
	LoadStaffs() []domain.Staff
	SaveStaffs([]domain.Staff) error
}

// Registry manages the current staff list. There is no delete: stale names
// stay around and do no harm, since reports snapshot the name anyway.
type Registry struct {
	store   Store
	now     func() time.Time
	pickIdx func(n int) int
}

func NewRegistry(store Store) *Registry {
	return &Registry{store: store, now: time.Now, pickIdx: rand.Intn}
}

func (r *Registry) List() []domain.Staff {
	return r.store.LoadStaffs()
}

// Add registers a new staff member. Names are unique (case-sensitive) among
// current staff only; history is not consulted.
func (r *Registry) Add(name string) (domain.Staff, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Staff{}, &domain.ValidationError{Field: "name", Message: "staff name is required"}
	}

	staffs := r.store.LoadStaffs()
	for _, s := range staffs {
		if s.Name == name {
			return domain.Staff{}, &domain.DuplicateNameError{Name: name}
		}
	}

	now := r.now()
	s := domain.Staff{
		ID:       domain.NewStaffID(now),
		Name:     name,
		JoinedAt: now.UTC().Format(time.RFC3339),
		Color:    Palette[r.pickIdx(len(Palette))],
	}
	staffs = append(staffs, s)
	if err := r.store.SaveStaffs(staffs); err != nil {
		return domain.Staff{}, err
	}
	return s, nil
}

// Rename changes a staff member's name and optionally their color. Renaming
// to the current name is allowed; colliding with a different staff member is
// not. Historical reports keep the old name.
func (r *Registry) Rename(currentName, newName, color string) (domain.Staff, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return domain.Staff{}, &domain.ValidationError{Field: "name", Message: "staff name is required"}
	}

	staffs := r.store.LoadStaffs()
	target := -1
	for i, s := range staffs {
		if s.Name == currentName {
			target = i
			break
		}
	}
	if target < 0 {
		return domain.Staff{}, &domain.ValidationError{Field: "name", Message: "staff not found: " + currentName}
	}

	for i, s := range staffs {
		if i != target && s.Name == newName {
			return domain.Staff{}, &domain.DuplicateNameError{Name: newName}
		}
	}

	staffs[target].Name = newName
	if color != "" {
		staffs[target].Color = color
	}
	if err := r.store.SaveStaffs(staffs); err != nil {
		return domain.Staff{}, err
	}
	return staffs[target], nil
}
