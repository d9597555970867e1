package editing

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-generator/internal/types"
)

func projectState() State[types.Project] {
	return State[types.Project]{Items: []types.Project{
		{ID: "p1", Name: "One", Source: types.SourceManual},
		{ID: "p2", Name: "Two", Source: types.SourceManual},
	}}
}

func TestApply_AddAssignsID(t *testing.T) {
	s := State[types.Project]{}
	s, err := Apply(s, Action[types.Project]{Kind: ActionSetNew, Item: types.Project{Name: "Draft"}})
	require.NoError(t, err)
	assert.Equal(t, "Draft", s.NewItem.Name)

	s, err = Apply(s, Action[types.Project]{Kind: ActionAdd})
	require.NoError(t, err)
	require.Len(t, s.Items, 1)
	assert.NotEmpty(t, s.Items[0].ID)
	assert.Equal(t, "Draft", s.Items[0].Name)
	assert.Empty(t, s.NewItem.Name, "draft cleared after add")
}

func TestApply_AddRequiresFields(t *testing.T) {
	_, err := Apply(State[types.Experience]{}, Action[types.Experience]{
		Kind: ActionAdd,
		Item: types.Experience{Company: "Acme"},
	})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Position", verr.Field)
	assert.Equal(t, "required", verr.Tag)
}

func TestApply_AddRejectsDuplicateID(t *testing.T) {
	_, err := Apply(projectState(), Action[types.Project]{Kind: ActionAdd, Item: types.Project{ID: "p1", Name: "x"}})
	assert.Error(t, err)
}

func TestApply_EditSaveReplacesByID(t *testing.T) {
	s, err := Apply(projectState(), Action[types.Project]{Kind: ActionEdit, ID: "p2"})
	require.NoError(t, err)
	require.NotNil(t, s.Editing)
	assert.Equal(t, "Two", s.Editing.Base.Name)

	s, err = Apply(s, Action[types.Project]{Kind: ActionUpdate, Item: types.Project{Name: "Two v2"}})
	require.NoError(t, err)
	assert.Equal(t, "Two", s.Items[1].Name, "update does not touch committed items")

	s, err = Apply(s, Action[types.Project]{Kind: ActionSave})
	require.NoError(t, err)
	assert.Nil(t, s.Editing)
	assert.Equal(t, "Two v2", s.Items[1].Name)
	assert.Equal(t, "p2", s.Items[1].ID, "draft keeps the base id")
	assert.Len(t, s.Items, 2)
}

func TestApply_CancelDiscardsDraft(t *testing.T) {
	start := projectState()
	s, err := Apply(start, Action[types.Project]{Kind: ActionEdit, ID: "p1"})
	require.NoError(t, err)
	s, err = Apply(s, Action[types.Project]{Kind: ActionUpdate, Item: types.Project{Name: "changed"}})
	require.NoError(t, err)
	s, err = Apply(s, Action[types.Project]{Kind: ActionCancel})
	require.NoError(t, err)

	assert.Nil(t, s.Editing)
	assert.Equal(t, start.Items, s.Items)
}

func TestApply_RemoveClosesSession(t *testing.T) {
	s, err := Apply(projectState(), Action[types.Project]{Kind: ActionEdit, ID: "p1"})
	require.NoError(t, err)
	s, err = Apply(s, Action[types.Project]{Kind: ActionRemove, ID: "p1"})
	require.NoError(t, err)

	assert.Nil(t, s.Editing)
	require.Len(t, s.Items, 1)
	assert.Equal(t, "p2", s.Items[0].ID)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	start := projectState()
	_, err := Apply(start, Action[types.Project]{Kind: ActionRemove, ID: "p1"})
	require.NoError(t, err)
	assert.Len(t, start.Items, 2)
	assert.Equal(t, "p1", start.Items[0].ID)
}

func TestApply_Errors(t *testing.T) {
	_, err := Apply(projectState(), Action[types.Project]{Kind: ActionRemove, ID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Apply(projectState(), Action[types.Project]{Kind: ActionSave})
	assert.ErrorIs(t, err, ErrNoEditSession)

	_, err = Apply(projectState(), Action[types.Project]{Kind: ActionUpdate})
	assert.ErrorIs(t, err, ErrNoEditSession)

	_, err = Apply(projectState(), Action[types.Project]{Kind: "explode"})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestApply_SaveValidatesDraft(t *testing.T) {
	s, err := Apply(projectState(), Action[types.Project]{Kind: ActionEdit, ID: "p1"})
	require.NoError(t, err)
	s, err = Apply(s, Action[types.Project]{Kind: ActionUpdate, Item: types.Project{}})
	require.NoError(t, err)

	after, err := Apply(s, Action[types.Project]{Kind: ActionSave})
	require.Error(t, err)
	assert.NotNil(t, after.Editing, "failed save keeps the session open")
}

func TestApplyToRecord_Experience(t *testing.T) {
	rec := &types.PortfolioRecord{BasicInfo: types.BasicInfo{Name: "Ada"}}

	err := ApplyToRecord(rec, CollectionExperience, ActionAdd, "",
		json.RawMessage(`{"company":"Acme","position":"Engineer","duration":"2020 - Present"}`))
	require.NoError(t, err)
	require.Len(t, rec.Experience, 1)
	id := rec.Experience[0].ID
	assert.NotEmpty(t, id)
	assert.Equal(t, "Present", rec.Experience[0].EndDate, "record is re-normalized")

	err = ApplyToRecord(rec, CollectionExperience, ActionSave, id,
		json.RawMessage(`{"company":"Acme","position":"Staff Engineer","duration":"2020 - Present"}`))
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", rec.Experience[0].Position)
	assert.Equal(t, id, rec.Experience[0].ID)

	require.NoError(t, ApplyToRecord(rec, CollectionExperience, ActionRemove, id, nil))
	assert.Empty(t, rec.Experience)
	assert.NotNil(t, rec.Experience)
}

func TestApplyToRecord_SkillsRebucket(t *testing.T) {
	rec := &types.PortfolioRecord{Skills: types.Skills{
		Technical: []types.Skill{{ID: "s1", Name: "Go", Level: 4, Category: types.CategoryTechnical}},
	}}

	require.NoError(t, ApplyToRecord(rec, CollectionSkills, ActionAdd, "", json.RawMessage(`"Figma"`)))
	require.Len(t, rec.Skills.Design, 1)
	assert.Equal(t, types.DefaultSkillLevel, rec.Skills.Design[0].Level)

	require.NoError(t, ApplyToRecord(rec, CollectionSkills, ActionSave, "s1",
		json.RawMessage(`{"name":"Go","level":5,"category":"soft"}`)))
	assert.Empty(t, rec.Skills.Technical)
	require.Len(t, rec.Skills.Soft, 1)
	assert.Equal(t, "s1", rec.Skills.Soft[0].ID)
	assert.Equal(t, 5, rec.Skills.Soft[0].Level)
}

func TestApplyToRecord_Errors(t *testing.T) {
	rec := &types.PortfolioRecord{}
	assert.Error(t, ApplyToRecord(rec, "hobbies", ActionAdd, "", json.RawMessage(`{}`)))
	assert.Error(t, ApplyToRecord(rec, CollectionProjects, ActionAdd, "", nil))
	assert.Error(t, ApplyToRecord(rec, CollectionProjects, ActionAdd, "", json.RawMessage(`[1,2]`)))
	assert.ErrorIs(t, ApplyToRecord(rec, CollectionProjects, ActionRemove, "nope", nil), ErrNotFound)
}

func TestWizard(t *testing.T) {
	w := NewWizard()
	assert.Equal(t, TabBasic, w.Tab)
	assert.False(t, w.Back())

	assert.True(t, w.Next())
	assert.Equal(t, TabSocial, w.Tab)
	assert.True(t, w.Next())
	assert.True(t, w.Done())
	assert.False(t, w.Next())

	assert.True(t, w.Back())
	assert.Equal(t, TabSocial, w.Tab)
}

func TestWizard_DegradeProceeds(t *testing.T) {
	w := NewWizard()
	w.Next()
	w.Degrade("Extraction timed out, using fallback data")
	assert.Equal(t, TabProjects, w.Tab)
	assert.Equal(t, "Extraction timed out, using fallback data", w.Warning)
}
