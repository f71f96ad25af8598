package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"eventory/internal/domain"
)

const testTimeout = 5 * time.Second

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// memStore is an in-memory entity store shared by the fake repositories below.
// memTx snapshots it on begin and restores it when fn fails, giving tests real rollback.
type memStore struct {
	colleges      map[string]domain.College
	students      map[string]domain.Student
	events        map[string]domain.Event
	registrations []domain.Registration
	attendances   []domain.Attendance
	feedbacks     []domain.Feedback
	seq           int

	failIncrement  error
	failUpsertFor  map[string]error
	failFeedbackOp error
}

func newMemStore() *memStore {
	return &memStore{
		colleges:      make(map[string]domain.College),
		students:      make(map[string]domain.Student),
		events:        make(map[string]domain.Event),
		failUpsertFor: make(map[string]error),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

type memSnapshot struct {
	colleges      map[string]domain.College
	students      map[string]domain.Student
	events        map[string]domain.Event
	registrations []domain.Registration
	attendances   []domain.Attendance
	feedbacks     []domain.Feedback
}

func (m *memStore) snapshot() memSnapshot {
	s := memSnapshot{
		colleges:      make(map[string]domain.College, len(m.colleges)),
		students:      make(map[string]domain.Student, len(m.students)),
		events:        make(map[string]domain.Event, len(m.events)),
		registrations: append([]domain.Registration(nil), m.registrations...),
		attendances:   append([]domain.Attendance(nil), m.attendances...),
		feedbacks:     append([]domain.Feedback(nil), m.feedbacks...),
	}
	for k, v := range m.colleges {
		s.colleges[k] = v
	}
	for k, v := range m.students {
		s.students[k] = v
	}
	for k, v := range m.events {
		s.events[k] = v
	}
	return s
}

func (m *memStore) restore(s memSnapshot) {
	m.colleges = s.colleges
	m.students = s.students
	m.events = s.events
	m.registrations = s.registrations
	m.attendances = s.attendances
	m.feedbacks = s.feedbacks
}

// seed helpers

func (m *memStore) addCollege(name, code string) *domain.College {
	c := domain.College{ID: m.nextID("col"), Name: name, Code: code}
	m.colleges[c.ID] = c
	return &c
}

func (m *memStore) addStudent(collegeID, name, email string) *domain.Student {
	s := domain.Student{ID: m.nextID("st"), CollegeID: collegeID, FullName: name, Email: email, RollNo: "R-" + name}
	m.students[s.ID] = s
	return &s
}

func (m *memStore) addEvent(collegeID, title string, capacity int) *domain.Event {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Hour)
	e := domain.Event{ID: m.nextID("ev"), CollegeID: collegeID, Title: title, Type: domain.EventTypeWorkshop,
		StartAt: start, EndAt: start.Add(2 * time.Hour), Capacity: capacity}
	m.events[e.ID] = e
	return &e
}

func (m *memStore) registrationsFor(eventID string) int {
	n := 0
	for _, r := range m.registrations {
		if r.EventID == eventID {
			n++
		}
	}
	return n
}

func (m *memStore) attendanceRows(eventID, studentID string) []domain.Attendance {
	var out []domain.Attendance
	for _, a := range m.attendances {
		if a.EventID == eventID && a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out
}

type memTx struct{ m *memStore }

func (t memTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := t.m.snapshot()
	if err := fn(ctx); err != nil {
		t.m.restore(snap)
		return err
	}
	return nil
}

type memColleges struct{ m *memStore }

func (r memColleges) Create(ctx context.Context, c *domain.College) error {
	for _, v := range r.m.colleges {
		if v.Code == c.Code || v.Name == c.Name {
			return fmt.Errorf("%w: colleges_code_key", domain.ErrConflict)
		}
	}
	c.ID = r.m.nextID("col")
	r.m.colleges[c.ID] = *c
	return nil
}

func (r memColleges) GetByID(ctx context.Context, id string) (*domain.College, error) {
	c, ok := r.m.colleges[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r memColleges) GetByCode(ctx context.Context, code string) (*domain.College, error) {
	for _, c := range r.m.colleges {
		if c.Code == code {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memColleges) List(ctx context.Context, params domain.PaginationParams) ([]*domain.College, int, error) {
	out := make([]*domain.College, 0, len(r.m.colleges))
	for _, c := range r.m.colleges {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}

func (r memColleges) Update(ctx context.Context, id string, upd domain.CollegeUpdate) (*domain.College, error) {
	c, ok := r.m.colleges[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Location != nil {
		c.Location = *upd.Location
	}
	if upd.TotalStudents != nil {
		c.TotalStudents = *upd.TotalStudents
	}
	r.m.colleges[id] = c
	return &c, nil
}

func (r memColleges) Delete(ctx context.Context, id string) error {
	if _, ok := r.m.colleges[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.colleges, id)
	return nil
}

type memStudents struct{ m *memStore }

func (r memStudents) Create(ctx context.Context, s *domain.Student) error {
	for _, v := range r.m.students {
		if v.CollegeID == s.CollegeID && v.Email == s.Email {
			return fmt.Errorf("%w: students_college_email_key", domain.ErrConflict)
		}
	}
	s.ID = r.m.nextID("st")
	r.m.students[s.ID] = *s
	return nil
}

func (r memStudents) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	s, ok := r.m.students[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r memStudents) List(ctx context.Context, filter domain.StudentFilter, params domain.PaginationParams) ([]*domain.Student, int, error) {
	out := make([]*domain.Student, 0)
	for _, s := range r.m.students {
		if filter.CollegeID != "" && s.CollegeID != filter.CollegeID {
			continue
		}
		s := s
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, len(out), nil
}

func (r memStudents) Update(ctx context.Context, id string, upd domain.StudentUpdate) (*domain.Student, error) {
	s, ok := r.m.students[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.FullName != nil {
		s.FullName = *upd.FullName
	}
	if upd.Email != nil {
		s.Email = *upd.Email
	}
	if upd.RollNo != nil {
		s.RollNo = *upd.RollNo
	}
	r.m.students[id] = s
	return &s, nil
}

func (r memStudents) Delete(ctx context.Context, id string) error {
	if _, ok := r.m.students[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.students, id)
	return nil
}

func (r memStudents) UpsertByCollegeEmail(ctx context.Context, s *domain.Student) error {
	for id, v := range r.m.students {
		if v.CollegeID == s.CollegeID && v.Email == s.Email {
			v.FullName = s.FullName
			v.RollNo = s.RollNo
			r.m.students[id] = v
			s.ID = id
			return nil
		}
	}
	s.ID = r.m.nextID("st")
	r.m.students[s.ID] = *s
	return nil
}

type memEvents struct{ m *memStore }

func (r memEvents) Create(ctx context.Context, e *domain.Event) error {
	for _, v := range r.m.events {
		if v.CollegeID == e.CollegeID && v.Title == e.Title && v.StartAt.Equal(e.StartAt) {
			return fmt.Errorf("%w: events_college_title_start_key", domain.ErrConflict)
		}
	}
	e.ID = r.m.nextID("ev")
	r.m.events[e.ID] = *e
	return nil
}

func (r memEvents) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, ok := r.m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (r memEvents) GetByIDForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	return r.GetByID(ctx, id)
}

func (r memEvents) details(e domain.Event) *domain.EventDetails {
	d := &domain.EventDetails{Event: e, RegistrationsCount: r.m.registrationsFor(e.ID)}
	for _, a := range r.m.attendances {
		if a.EventID == e.ID {
			d.AttendanceCount++
		}
	}
	var sum, n int
	for _, f := range r.m.feedbacks {
		if f.EventID == e.ID {
			sum += f.Rating
			n++
		}
	}
	if n > 0 {
		d.AvgFeedback = float64(sum) / float64(n)
	}
	return d
}

func (r memEvents) GetDetails(ctx context.Context, id string) (*domain.EventDetails, error) {
	e, ok := r.m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.details(e), nil
}

func (r memEvents) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.EventDetails, int, error) {
	out := make([]*domain.EventDetails, 0)
	for _, e := range r.m.events {
		if filter.CollegeID != "" && e.CollegeID != filter.CollegeID {
			continue
		}
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		out = append(out, r.details(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.After(out[j].StartAt) })
	return out, len(out), nil
}

func (r memEvents) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	e, ok := r.m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	if upd.Type != nil {
		e.Type = *upd.Type
	}
	if upd.StartAt != nil {
		e.StartAt = *upd.StartAt
	}
	if upd.EndAt != nil {
		e.EndAt = *upd.EndAt
	}
	if upd.Capacity != nil {
		e.Capacity = *upd.Capacity
	}
	r.m.events[id] = e
	return &e, nil
}

func (r memEvents) Delete(ctx context.Context, id string) error {
	if _, ok := r.m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.events, id)
	return nil
}

func (r memEvents) IncrementRegistrationCount(ctx context.Context, id string) (int, error) {
	if r.m.failIncrement != nil {
		return 0, r.m.failIncrement
	}
	e, ok := r.m.events[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	e.RegistrationCount++
	r.m.events[id] = e
	return e.RegistrationCount, nil
}

type memRegistrations struct{ m *memStore }

func (r memRegistrations) Create(ctx context.Context, reg *domain.Registration) error {
	for _, v := range r.m.registrations {
		if v.EventID == reg.EventID && v.StudentID == reg.StudentID {
			return domain.ErrDuplicateRegistration
		}
	}
	reg.ID = r.m.nextID("reg")
	r.m.registrations = append(r.m.registrations, *reg)
	return nil
}

func (r memRegistrations) Exists(ctx context.Context, eventID, studentID string) (bool, error) {
	for _, v := range r.m.registrations {
		if v.EventID == eventID && v.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (r memRegistrations) CountByEventAndCollege(ctx context.Context, eventID, collegeID string) (int, error) {
	n := 0
	for _, v := range r.m.registrations {
		if v.EventID == eventID && r.m.students[v.StudentID].CollegeID == collegeID {
			n++
		}
	}
	return n, nil
}

func (r memRegistrations) SetCollegeRegisteredCount(ctx context.Context, id string, count int) error {
	for i := range r.m.registrations {
		if r.m.registrations[i].ID == id {
			r.m.registrations[i].CollegeRegisteredCount = count
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r memRegistrations) ListRegisteredStudents(ctx context.Context, eventID string) ([]*domain.RegisteredStudent, error) {
	out := make([]*domain.RegisteredStudent, 0)
	for _, v := range r.m.registrations {
		if v.EventID != eventID {
			continue
		}
		s := r.m.students[v.StudentID]
		out = append(out, &domain.RegisteredStudent{StudentID: s.ID, FullName: s.FullName, Email: s.Email})
	}
	return out, nil
}

type memAttendances struct{ m *memStore }

func (r memAttendances) Upsert(ctx context.Context, a *domain.Attendance, withFeedback bool) error {
	if err := r.m.failUpsertFor[a.StudentID]; err != nil {
		return err
	}
	for i, v := range r.m.attendances {
		if v.EventID == a.EventID && v.StudentID == a.StudentID {
			v.IsPresent = a.IsPresent
			v.CheckedInAt = a.CheckedInAt
			if withFeedback {
				v.HasGivenFeedback = a.HasGivenFeedback
			}
			r.m.attendances[i] = v
			*a = v
			return nil
		}
	}
	a.ID = r.m.nextID("att")
	r.m.attendances = append(r.m.attendances, *a)
	return nil
}

func (r memAttendances) ListByEvent(ctx context.Context, eventID string) ([]*domain.Attendance, error) {
	out := make([]*domain.Attendance, 0)
	for _, v := range r.m.attendances {
		if v.EventID == eventID {
			v := v
			out = append(out, &v)
		}
	}
	return out, nil
}

func (r memAttendances) MarkFeedbackGiven(ctx context.Context, eventID, studentID string) error {
	if r.m.failFeedbackOp != nil {
		return r.m.failFeedbackOp
	}
	for i, v := range r.m.attendances {
		if v.EventID == eventID && v.StudentID == studentID {
			r.m.attendances[i].HasGivenFeedback = true
		}
	}
	return nil
}

type memFeedbacks struct{ m *memStore }

func (r memFeedbacks) Create(ctx context.Context, fb *domain.Feedback) error {
	for _, v := range r.m.feedbacks {
		if v.EventID == fb.EventID && v.StudentID == fb.StudentID {
			return domain.ErrDuplicateFeedback
		}
	}
	fb.ID = r.m.nextID("fb")
	r.m.feedbacks = append(r.m.feedbacks, *fb)
	return nil
}

// outcomeLog records metrics outcomes for assertions.
type outcomeLog []string

func (o *outcomeLog) RecordOutcome(operation, outcome string) {
	*o = append(*o, operation+":"+outcome)
}

// fakeEmailService records confirmations and optionally fails.
type fakeEmailService struct {
	sent []*domain.RegistrationConfirmationEmailData
	err  error
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
