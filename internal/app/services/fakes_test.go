package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yigit/coachcenter/internal/app/models"
	"github.com/yigit/coachcenter/internal/app/repositories"
	"github.com/yigit/coachcenter/internal/pkg/filestorage"
)

// clock hands out strictly increasing timestamps so "newest first" is deterministic.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) tick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.now.IsZero() {
		c.now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	c.now = c.now.Add(time.Second)
	return c.now
}

type memAdminStore struct {
	mu     sync.Mutex
	admins map[string]*models.Admin
}

func newMemAdminStore() *memAdminStore {
	return &memAdminStore{admins: map[string]*models.Admin{}}
}

func (s *memAdminStore) Create(_ context.Context, admin *models.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admins {
		if a.Email == admin.Email {
			return repositories.ErrAlreadyExists
		}
	}
	admin.CreatedAt = time.Now()
	cp := *admin
	s.admins[admin.ID] = &cp
	return nil
}

func (s *memAdminStore) FindByID(_ context.Context, id string) (*models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.admins[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *memAdminStore) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *memAdminStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

type memPdfStore struct {
	mu    sync.Mutex
	clock *clock
	pdfs  map[string]*models.Pdf
}

func newMemPdfStore(c *clock) *memPdfStore {
	return &memPdfStore{clock: c, pdfs: map[string]*models.Pdf{}}
}

func (s *memPdfStore) Create(_ context.Context, pdf *models.Pdf) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pdf.CreatedAt = s.clock.tick()
	cp := *pdf
	s.pdfs[pdf.ID] = &cp
	return nil
}

func (s *memPdfStore) FindAll(_ context.Context) ([]*models.Pdf, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Pdf{}
	for _, p := range s.pdfs {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memPdfStore) FindByID(_ context.Context, id string) (*models.Pdf, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pdfs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memPdfStore) FindByIDs(_ context.Context, ids []string) ([]*models.Pdf, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Pdf{}
	for _, id := range ids {
		if p, ok := s.pdfs[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memPdfStore) CountByIDs(ctx context.Context, ids []string) (int, error) {
	found, err := s.FindByIDs(ctx, ids)
	return len(found), err
}

func (s *memPdfStore) Update(_ context.Context, pdf *models.Pdf) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pdfs[pdf.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *pdf
	s.pdfs[pdf.ID] = &cp
	return nil
}

func (s *memPdfStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pdfs[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.pdfs, id)
	return nil
}

type memClassSubjectStore struct {
	mu      sync.Mutex
	clock   *clock
	classes map[string]*models.ClassSubject
}

func newMemClassSubjectStore(c *clock) *memClassSubjectStore {
	return &memClassSubjectStore{clock: c, classes: map[string]*models.ClassSubject{}}
}

func cloneClass(cs *models.ClassSubject) *models.ClassSubject {
	cp := *cs
	cp.Subjects = append([]models.Subject{}, cs.Subjects...)
	cp.RelatedPdfs = append([]string{}, cs.RelatedPdfs...)
	return &cp
}

func (s *memClassSubjectStore) nameTaken(name, exceptID string) bool {
	for _, cs := range s.classes {
		if cs.ClassName == name && cs.ID != exceptID {
			return true
		}
	}
	return false
}

func (s *memClassSubjectStore) Create(_ context.Context, cs *models.ClassSubject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nameTaken(cs.ClassName, "") {
		return repositories.ErrAlreadyExists
	}
	cs.CreatedAt = s.clock.tick()
	s.classes[cs.ID] = cloneClass(cs)
	return nil
}

func (s *memClassSubjectStore) FindAll(_ context.Context) ([]*models.ClassSubject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.ClassSubject{}
	for _, cs := range s.classes {
		out = append(out, cloneClass(cs))
	}
	sort.Slice(out, func(i, j int) bool { return strings.Compare(out[i].ClassName, out[j].ClassName) < 0 })
	return out, nil
}

func (s *memClassSubjectStore) FindByID(_ context.Context, id string) (*models.ClassSubject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cs, ok := s.classes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneClass(cs), nil
}

func (s *memClassSubjectStore) FindByIDs(_ context.Context, ids []string) ([]*models.ClassSubject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.ClassSubject{}
	for _, id := range ids {
		if cs, ok := s.classes[id]; ok {
			out = append(out, cloneClass(cs))
		}
	}
	return out, nil
}

func (s *memClassSubjectStore) ExistsByClassName(_ context.Context, className, excludeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nameTaken(className, excludeID), nil
}

func (s *memClassSubjectStore) Update(_ context.Context, cs *models.ClassSubject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.classes[cs.ID]; !ok {
		return repositories.ErrNotFound
	}
	if s.nameTaken(cs.ClassName, cs.ID) {
		return repositories.ErrAlreadyExists
	}
	s.classes[cs.ID] = cloneClass(cs)
	return nil
}

func (s *memClassSubjectStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.classes[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.classes, id)
	return nil
}

type memCourseStore struct {
	mu      sync.Mutex
	clock   *clock
	courses map[string]*models.Course
}

func newMemCourseStore(c *clock) *memCourseStore {
	return &memCourseStore{clock: c, courses: map[string]*models.Course{}}
}

func cloneCourse(c *models.Course) *models.Course {
	cp := *c
	cp.RelatedPdfs = append([]string{}, c.RelatedPdfs...)
	if c.ClassSubjectID != nil {
		id := *c.ClassSubjectID
		cp.ClassSubjectID = &id
	}
	return &cp
}

func (s *memCourseStore) Create(_ context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	course.CreatedAt = s.clock.tick()
	s.courses[course.ID] = cloneCourse(course)
	return nil
}

func (s *memCourseStore) FindAll(_ context.Context) ([]*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Course{}
	for _, c := range s.courses {
		out = append(out, cloneCourse(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memCourseStore) FindByID(_ context.Context, id string) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneCourse(c), nil
}

func (s *memCourseStore) ExistsByClassSubject(_ context.Context, classSubjectID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.courses {
		if c.ClassSubjectID != nil && *c.ClassSubjectID == classSubjectID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memCourseStore) Update(_ context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[course.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.courses[course.ID] = cloneCourse(course)
	return nil
}

func (s *memCourseStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.courses, id)
	return nil
}

// fakeRemote records uploads instead of talking to a drive.
type fakeRemote struct {
	mu       sync.Mutex
	uploads  []string
	paths    []string
	sawFile  bool
	err      error
	nextID   string
	nextName string
	nextLink string
}

func (r *fakeRemote) Upload(_ context.Context, localPath, name, _ string) (*filestorage.RemoteFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, statErr := os.Stat(localPath)
	r.sawFile = statErr == nil
	r.uploads = append(r.uploads, name)
	r.paths = append(r.paths, localPath)
	if r.err != nil {
		return nil, r.err
	}
	return &filestorage.RemoteFile{ID: r.nextID, Name: r.nextName, WebViewLink: r.nextLink}, nil
}

type fixture struct {
	clock   *clock
	admins  *memAdminStore
	pdfs    *memPdfStore
	classes *memClassSubjectStore
	courses *memCourseStore
}

func newFixture() *fixture {
	c := &clock{}
	return &fixture{
		clock:   c,
		admins:  newMemAdminStore(),
		pdfs:    newMemPdfStore(c),
		classes: newMemClassSubjectStore(c),
		courses: newMemCourseStore(c),
	}
}

var minimalPDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func multipartFile(t *testing.T, field, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field][0]
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
