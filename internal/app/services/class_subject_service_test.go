package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coachcenter/internal/app/models"
	"github.com/yigit/coachcenter/internal/app/models/dto"
	"github.com/yigit/coachcenter/internal/pkg/apperrors"
)

func newClassSubjectService(f *fixture) ClassSubjectService {
	return NewClassSubjectService(f.classes, f.courses, f.pdfs)
}

func createClass(t *testing.T, svc ClassSubjectService, name string, subjects ...string) *models.ClassSubject {
	t.Helper()
	req := dto.CreateClassSubjectRequest{ClassName: name}
	for _, s := range subjects {
		req.Subjects = append(req.Subjects, dto.SubjectInput{Name: s})
	}
	cs, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	return cs
}

func TestCreateClassSubjectValidation(t *testing.T) {
	svc := newClassSubjectService(newFixture())
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateClassSubjectRequest{Subjects: []dto.SubjectInput{{Name: "Math"}}})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.Create(ctx, dto.CreateClassSubjectRequest{ClassName: "Grade 10"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.Create(ctx, dto.CreateClassSubjectRequest{ClassName: "Grade 10", Subjects: []dto.SubjectInput{{Name: "Math"}, {Name: "   "}}})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	assert.Equal(t, "Subject names cannot be empty", apperrors.Message(err, ""))
}

func TestCreateClassSubjectKeepsOrderAndRejectsDuplicateName(t *testing.T) {
	svc := newClassSubjectService(newFixture())

	cs := createClass(t, svc, "Grade 10", "Math", "Physics", "Biology")
	require.Len(t, cs.Subjects, 3)
	assert.Equal(t, "Math", cs.Subjects[0].Name)
	assert.Equal(t, "Biology", cs.Subjects[2].Name)
	assert.NotEqual(t, cs.Subjects[0].ID, cs.Subjects[1].ID)

	_, err := svc.Create(context.Background(), dto.CreateClassSubjectRequest{ClassName: "Grade 10", Subjects: []dto.SubjectInput{{Name: "Art"}}})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCreateClassSubjectRejectsRepeatedSubjectNames(t *testing.T) {
	svc := newClassSubjectService(newFixture())
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateClassSubjectRequest{
		ClassName: "Grade 10",
		Subjects:  []dto.SubjectInput{{Name: "Math"}, {Name: "Physics"}, {Name: " math "}},
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "Subject already exists in this class", apperrors.Message(err, ""))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClassSubjectNamesAreTrimmed(t *testing.T) {
	svc := newClassSubjectService(newFixture())
	ctx := context.Background()

	cs := createClass(t, svc, "  Grade 10 ", " Math", "Physics  ")
	assert.Equal(t, "Grade 10", cs.ClassName)
	assert.Equal(t, "Math", cs.Subjects[0].Name)
	assert.Equal(t, "Physics", cs.Subjects[1].Name)

	_, err := svc.Create(ctx, dto.CreateClassSubjectRequest{ClassName: "Grade 10\t", Subjects: []dto.SubjectInput{{Name: "Art"}}})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	other := createClass(t, svc, "Grade 11", "Math")
	_, err = svc.Update(ctx, other.ID, dto.UpdateClassSubjectRequest{ClassName: " Grade 10 "})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	renamed, err := svc.Update(ctx, other.ID, dto.UpdateClassSubjectRequest{ClassName: " Grade 12 "})
	require.NoError(t, err)
	assert.Equal(t, "Grade 12", renamed.ClassName)

	_, err = svc.AddSubject(ctx, cs.ID, "  physics ")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	added, err := svc.AddSubject(ctx, cs.ID, " Chemistry ")
	require.NoError(t, err)
	assert.Equal(t, "Chemistry", added.Subjects[2].Name)

	_, err = svc.UpdateSubject(ctx, cs.ID, cs.Subjects[0].ID, " chemistry")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	updated, err := svc.UpdateSubject(ctx, cs.ID, cs.Subjects[0].ID, " Algebra  ")
	require.NoError(t, err)
	assert.Equal(t, "Algebra", updated.Subjects[0].Name)
}

func TestCreateClassSubjectChecksRelatedPdfs(t *testing.T) {
	f := newFixture()
	svc := newClassSubjectService(f)
	ctx := context.Background()

	pdf := &models.Pdf{ID: newID(), Title: "Notes", Storage: models.StorageLocal}
	require.NoError(t, f.pdfs.Create(ctx, pdf))

	req := dto.CreateClassSubjectRequest{
		ClassName:   "Grade 9",
		Subjects:    []dto.SubjectInput{{Name: "Math"}},
		RelatedPdfs: []string{pdf.ID, newID()},
	}
	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	req.RelatedPdfs = []string{pdf.ID, "garbage"}
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	// The same id twice still counts as one existing pdf.
	req.RelatedPdfs = []string{pdf.ID, pdf.ID}
	cs, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []string{pdf.ID, pdf.ID}, cs.RelatedPdfs)
}

func TestListClassSubjectsSortedByName(t *testing.T) {
	svc := newClassSubjectService(newFixture())
	createClass(t, svc, "Grade 12", "Math")
	createClass(t, svc, "Grade 10", "Math")
	createClass(t, svc, "Grade 11", "Math")

	classes, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, classes, 3)
	assert.Equal(t, "Grade 10", classes[0].ClassName)
	assert.Equal(t, "Grade 12", classes[2].ClassName)
}

func TestGetClassSubjectNotFound(t *testing.T) {
	svc := newClassSubjectService(newFixture())

	_, err := svc.Get(context.Background(), newID())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Get(context.Background(), "123")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateClassSubject(t *testing.T) {
	svc := newClassSubjectService(newFixture())
	ctx := context.Background()
	g10 := createClass(t, svc, "Grade 10", "Math", "Physics")
	createClass(t, svc, "Grade 11", "Math")

	_, err := svc.Update(ctx, newID(), dto.UpdateClassSubjectRequest{ClassName: "X"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Update(ctx, g10.ID, dto.UpdateClassSubjectRequest{})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.Update(ctx, g10.ID, dto.UpdateClassSubjectRequest{ClassName: "Grade 11"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Keeping the same name is not a conflict with itself.
	_, err = svc.Update(ctx, g10.ID, dto.UpdateClassSubjectRequest{ClassName: "Grade 10"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, g10.ID, dto.UpdateClassSubjectRequest{ClassName: "Grade 10A"})
	require.NoError(t, err)
	assert.Equal(t, "Grade 10A", updated.ClassName)
	assert.Equal(t, g10.Subjects, updated.Subjects)
}

func TestAddSubject(t *testing.T) {
	svc := newClassSubjectService(newFixture())
	ctx := context.Background()
	cs := createClass(t, svc, "Grade 10", "Math", "Physics")

	_, err := svc.AddSubject(ctx, cs.ID, " ")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.AddSubject(ctx, newID(), "Chemistry")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.AddSubject(ctx, cs.ID, "physics")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	updated, err := svc.AddSubject(ctx, cs.ID, "Chemistry")
	require.NoError(t, err)
	require.Len(t, updated.Subjects, 3)
	assert.Equal(t, "Chemistry", updated.Subjects[2].Name)

	stored, err := svc.Get(ctx, cs.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Subjects, 3)
}

func TestUpdateSubject(t *testing.T) {
	svc := newClassSubjectService(newFixture())
	ctx := context.Background()
	cs := createClass(t, svc, "Grade 10", "Math", "Physics")
	mathID, physicsID := cs.Subjects[0].ID, cs.Subjects[1].ID

	_, err := svc.UpdateSubject(ctx, cs.ID, mathID, "")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.UpdateSubject(ctx, newID(), mathID, "Algebra")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.UpdateSubject(ctx, cs.ID, newID(), "Algebra")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "Subject not found", apperrors.Message(err, ""))

	_, err = svc.UpdateSubject(ctx, cs.ID, mathID, "PHYSICS")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Renaming to a different case of its own name is allowed.
	updated, err := svc.UpdateSubject(ctx, cs.ID, mathID, "MATH")
	require.NoError(t, err)
	assert.Equal(t, "MATH", updated.Subjects[0].Name)
	assert.Equal(t, physicsID, updated.Subjects[1].ID)
}

func TestDeleteSubject(t *testing.T) {
	f := newFixture()
	svc := newClassSubjectService(f)
	ctx := context.Background()
	cs := createClass(t, svc, "Grade 10", "Math", "Physics", "Biology")

	_, err := svc.DeleteSubject(ctx, newID(), cs.Subjects[0].ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.DeleteSubject(ctx, cs.ID, newID())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	updated, err := svc.DeleteSubject(ctx, cs.ID, cs.Subjects[1].ID)
	require.NoError(t, err)
	require.Len(t, updated.Subjects, 2)
	assert.Equal(t, "Math", updated.Subjects[0].Name)
	assert.Equal(t, "Biology", updated.Subjects[1].Name)

	// Any course on the class blocks removing any of its subjects.
	classID := cs.ID
	require.NoError(t, f.courses.Create(ctx, &models.Course{ID: newID(), Title: "C", ClassSubjectID: &classID}))
	_, err = svc.DeleteSubject(ctx, cs.ID, cs.Subjects[0].ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	stored, err := svc.Get(ctx, cs.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Subjects, stored.Subjects)
}

func TestDeleteClassSubject(t *testing.T) {
	f := newFixture()
	svc := newClassSubjectService(f)
	ctx := context.Background()
	used := createClass(t, svc, "Grade 10", "Math")
	unused := createClass(t, svc, "Grade 11", "Math")

	assert.ErrorIs(t, svc.Delete(ctx, newID()), apperrors.ErrNotFound)

	classID := used.ID
	require.NoError(t, f.courses.Create(ctx, &models.Course{ID: newID(), Title: "C", ClassSubjectID: &classID}))
	err := svc.Delete(ctx, used.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "Class is used in courses and cannot be deleted", apperrors.Message(err, ""))

	kept, err := svc.Get(ctx, used.ID)
	require.NoError(t, err)
	assert.Equal(t, used.ClassName, kept.ClassName)

	require.NoError(t, svc.Delete(ctx, unused.ID))
	_, err = svc.Get(ctx, unused.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
