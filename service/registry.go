package service

import (
	"fmt"

	"plate/config"
	"plate/entity"
	"plate/misc"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// SourceRef identifies a registered source
type SourceRef struct {
	ID   int
	Name string
}

// RegisterSources create missing sources and refresh changed icons, the
// result keeps the configured order
func RegisterSources(db *gorm.DB, sources []config.Source) ([]SourceRef, error) {
	refs := make([]SourceRef, 0, len(sources))
	for _, s := range sources {
		id, err := registerSource(db, s)
		if err != nil {
			return nil, fmt.Errorf("failed to register source '%s': %w", s.Name, err)
		}
		refs = append(refs, SourceRef{ID: id, Name: s.Name})
	}
	return lo.UniqBy(refs, func(ref SourceRef) int { return ref.ID }), nil
}

func registerSource(db *gorm.DB, s config.Source) (int, error) {
	var icon *string
	if s.Icon != "" {
		icon = &s.Icon
	}
	existing, err := entity.GetSourceByName(db, s.Name)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		if !sameIcon(existing.Icon, icon) {
			misc.Info(fmt.Sprintf("updating %q site icon from %q to %q", s.Name, lo.FromPtr(existing.Icon), s.Icon))
			if err := entity.UpdateIcon(db, existing.ID, icon); err != nil {
				return 0, err
			}
		}
		return existing.ID, nil
	}
	misc.Info(fmt.Sprintf("site %q not yet in database, will be inserted with feed: %q", s.Name, s.Feed))
	created, err := entity.CreateSource(db, s.Name, s.Feed, icon)
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

func sameIcon(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// SourceIDs map source name to id
func SourceIDs(refs []SourceRef) map[string]int {
	return lo.SliceToMap(refs, func(ref SourceRef) (string, int) {
		return ref.Name, ref.ID
	})
}
