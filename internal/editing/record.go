package editing

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/portfolio-generator/internal/aggregate"
	"github.com/jonathan/portfolio-generator/internal/types"
)

// Collections of a record that accept edits.
const (
	CollectionExperience = "experience"
	CollectionEducation  = "education"
	CollectionProjects   = "projects"
	CollectionSkills     = "skills"
)

// ApplyToRecord applies one add, save or remove to a stored record and re-normalizes it.
// Save is an edit, update and save in one step. item is the JSON of the new or
// replacement entity; skills may be given as a bare string.
func ApplyToRecord(rec *types.PortfolioRecord, collection string, kind ActionKind, id string, item json.RawMessage) error {
	var err error
	switch collection {
	case CollectionExperience:
		rec.Experience, err = applyJSON(rec.Experience, kind, id, item)
	case CollectionEducation:
		rec.Education, err = applyJSON(rec.Education, kind, id, item)
	case CollectionProjects:
		rec.Projects, err = applyJSON(rec.Projects, kind, id, item)
	case CollectionSkills:
		err = applySkills(rec, kind, id, item)
	default:
		return fmt.Errorf("unknown collection %q", collection)
	}
	if err != nil {
		return err
	}
	aggregate.Normalize(rec)
	return nil
}

func applyJSON[T Entity[T]](items []T, kind ActionKind, id string, raw json.RawMessage) ([]T, error) {
	var item T
	if kind != ActionRemove {
		if len(raw) == 0 {
			return items, fmt.Errorf("%w: %s requires an item", ErrInvalidItem, kind)
		}
		if err := json.Unmarshal(raw, &item); err != nil {
			return items, fmt.Errorf("%w: %v", ErrInvalidItem, err)
		}
	}
	return applyOne(items, kind, id, item)
}

func applyOne[T Entity[T]](items []T, kind ActionKind, id string, item T) ([]T, error) {
	s := State[T]{Items: items}
	var err error
	switch kind {
	case ActionAdd:
		s, err = Apply(s, Action[T]{Kind: ActionAdd, Item: item})
	case ActionRemove:
		s, err = Apply(s, Action[T]{Kind: ActionRemove, ID: id})
	case ActionSave:
		if s, err = Apply(s, Action[T]{Kind: ActionEdit, ID: id}); err != nil {
			return items, err
		}
		if s, err = Apply(s, Action[T]{Kind: ActionUpdate, Item: item}); err != nil {
			return items, err
		}
		s, err = Apply(s, Action[T]{Kind: ActionSave})
	default:
		return items, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}
	if err != nil {
		return items, err
	}
	return s.Items, nil
}

// applySkills flattens the four buckets into one collection, applies the action
// and files every skill back under its category.
func applySkills(rec *types.PortfolioRecord, kind ActionKind, id string, raw json.RawMessage) error {
	var all []types.Skill
	for _, cat := range types.SkillCategories {
		all = append(all, *rec.Skills.Bucket(cat)...)
	}

	var item types.Skill
	if kind != ActionRemove {
		if len(raw) == 0 {
			return fmt.Errorf("%w: %s requires an item", ErrInvalidItem, kind)
		}
		if err := json.Unmarshal(raw, &item); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidItem, err)
		}
		if item.Category == "" {
			item.Category = aggregate.Classify(item.Name)
		}
	}

	updated, err := applyOne(all, kind, id, item)
	if err != nil {
		return err
	}

	rec.Skills = types.Skills{}
	for _, s := range updated {
		bucket := rec.Skills.Bucket(s.Category)
		*bucket = append(*bucket, s)
	}
	return nil
}
