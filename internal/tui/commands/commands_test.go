package commands

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/aula/internal/api"
	"github.com/javiermolinar/aula/internal/db"
	"github.com/javiermolinar/aula/internal/timetable"
)

type stubClient struct {
	timetable *api.Timetable
	loadErr   error
	subjects  []timetable.Subject
	saveReq   *api.SaveRequest
	saveResp  *api.SaveResponse
	saveErr   error
}

func (s *stubClient) LoadTimetable(context.Context, int64) (*api.Timetable, error) {
	return s.timetable, s.loadErr
}

func (s *stubClient) ListSectionSubjects(context.Context, int64, int64) ([]timetable.Subject, error) {
	return s.subjects, nil
}

func (s *stubClient) ListTeachers(context.Context) ([]timetable.Teacher, error) {
	return nil, nil
}

func (s *stubClient) CheckSlotConflict(context.Context, api.ConflictCheckRequest) (*timetable.ConflictResult, error) {
	return &timetable.ConflictResult{}, nil
}

func (s *stubClient) ValidateTimetable(context.Context, api.ValidateRequest) (*timetable.ValidationResult, error) {
	return &timetable.ValidationResult{IsValid: true}, nil
}

func (s *stubClient) SaveTimetable(_ context.Context, req api.SaveRequest) (*api.SaveResponse, error) {
	s.saveReq = &req
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	if s.saveResp != nil {
		return s.saveResp, nil
	}
	return &api.SaveResponse{TimetableID: req.TimetableID}, nil
}

func stubTimetable() *api.Timetable {
	return &api.Timetable{
		ID:             42,
		ClassID:        3,
		SectionID:      1,
		AcademicYearID: 2,
		Semester:       1,
		IsDraft:        true,
		Slots: []timetable.TimeSlot{
			{Label: "Period 1", Display: "09:00 - 09:45"},
		},
		Entries: map[string]timetable.WireEntry{
			"Monday-09:00 - 09:45": {
				Subject:   timetable.WireSubject{ID: 4, Name: "Mathematics", Code: "MATH"},
				Teacher:   timetable.WireTeacher{FirstName: "Aisha", LastName: "Nakato"},
				TeacherID: 10,
				Type:      "regular",
			},
		},
	}
}

func testCache(t *testing.T) *db.DraftCache {
	t.Helper()
	cache, err := db.Open(filepath.Join(t.TempDir(), "drafts.db"))
	if err != nil {
		t.Fatalf("opening cache: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestLoadBuildsGridFromWireEntries(t *testing.T) {
	client := &stubClient{timetable: stubTimetable()}

	msg := Load(client, nil, 42)()
	loaded, ok := msg.(LoadedMsg)
	if !ok {
		t.Fatalf("msg = %T, want LoadedMsg", msg)
	}
	if loaded.Grid.Len() != 1 {
		t.Fatalf("grid len = %d, want 1", loaded.Grid.Len())
	}
	if loaded.Draft != nil {
		t.Fatal("expected no draft without a cache")
	}
}

func TestLoadReturnsErrMsgOnFailure(t *testing.T) {
	client := &stubClient{loadErr: errors.New("boom")}

	msg := Load(client, nil, 42)()
	if _, ok := msg.(ErrMsg); !ok {
		t.Fatalf("msg = %T, want ErrMsg", msg)
	}
}

func TestLoadFetchesCachedDraft(t *testing.T) {
	tt := stubTimetable()
	cache := testCache(t)
	err := cache.Put(context.Background(), &db.Snapshot{
		TimetableID:    tt.ID,
		ClassID:        tt.ClassID,
		SectionID:      tt.SectionID,
		AcademicYearID: tt.AcademicYearID,
		Semester:       tt.Semester,
		Entries:        tt.Entries,
	})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	msg := Load(&stubClient{timetable: tt}, cache, 42)()
	loaded, ok := msg.(LoadedMsg)
	if !ok {
		t.Fatalf("msg = %T, want LoadedMsg", msg)
	}
	if loaded.Draft == nil {
		t.Fatal("expected the cached draft snapshot")
	}
	if len(loaded.Draft.Entries) != 1 {
		t.Fatalf("draft entries = %d, want 1", len(loaded.Draft.Entries))
	}
}

func TestSaveDropsCachedDraft(t *testing.T) {
	tt := stubTimetable()
	cache := testCache(t)
	scope := db.Scope{
		ClassID:        tt.ClassID,
		SectionID:      tt.SectionID,
		AcademicYearID: tt.AcademicYearID,
		Semester:       tt.Semester,
	}
	err := cache.Put(context.Background(), &db.Snapshot{
		TimetableID:    tt.ID,
		ClassID:        tt.ClassID,
		SectionID:      tt.SectionID,
		AcademicYearID: tt.AcademicYearID,
		Semester:       tt.Semester,
		Entries:        tt.Entries,
	})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	client := &stubClient{}
	g, err := timetable.NewGrid(tt.Slots).ApplyWire(tt.Entries)
	if err != nil {
		t.Fatalf("ApplyWire: %v", err)
	}

	msg := Save(client, cache, tt, g, false)()
	done, ok := msg.(SaveDoneMsg)
	if !ok {
		t.Fatalf("msg = %T, want SaveDoneMsg", msg)
	}
	if done.Draft {
		t.Fatal("expected a final save")
	}
	if client.saveReq.IsDraft {
		t.Fatal("save request should not be a draft")
	}

	snap, err := cache.Get(context.Background(), scope)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if snap != nil {
		t.Fatal("a successful server save should drop the local draft")
	}
}

func TestSaveFailureKeepsCachedDraft(t *testing.T) {
	tt := stubTimetable()
	cache := testCache(t)
	scope := db.Scope{
		ClassID:        tt.ClassID,
		SectionID:      tt.SectionID,
		AcademicYearID: tt.AcademicYearID,
		Semester:       tt.Semester,
	}
	err := cache.Put(context.Background(), &db.Snapshot{
		TimetableID:    tt.ID,
		ClassID:        tt.ClassID,
		SectionID:      tt.SectionID,
		AcademicYearID: tt.AcademicYearID,
		Semester:       tt.Semester,
		Entries:        tt.Entries,
	})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	client := &stubClient{saveErr: errors.New("503")}
	g := timetable.NewGrid(tt.Slots)

	msg := Save(client, cache, tt, g, true)()
	if _, ok := msg.(ErrMsg); !ok {
		t.Fatalf("msg = %T, want ErrMsg", msg)
	}

	snap, err := cache.Get(context.Background(), scope)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if snap == nil {
		t.Fatal("a failed server save must keep the local draft")
	}
}

func TestCacheDraftWithoutCacheIsNoop(t *testing.T) {
	if cmd := CacheDraft(nil, stubTimetable(), timetable.NewGrid(nil)); cmd != nil {
		t.Fatal("expected a nil command without a cache")
	}
}

func TestCacheDraftStoresSnapshot(t *testing.T) {
	tt := stubTimetable()
	cache := testCache(t)
	g, err := timetable.NewGrid(tt.Slots).ApplyWire(tt.Entries)
	if err != nil {
		t.Fatalf("ApplyWire: %v", err)
	}

	msg := CacheDraft(cache, tt, g)()
	cached, ok := msg.(DraftCachedMsg)
	if !ok {
		t.Fatalf("msg = %T, want DraftCachedMsg", msg)
	}
	if cached.Err != nil {
		t.Fatalf("CacheDraft: %v", cached.Err)
	}

	snap, err := cache.Get(context.Background(), db.Scope{
		ClassID:        tt.ClassID,
		SectionID:      tt.SectionID,
		AcademicYearID: tt.AcademicYearID,
		Semester:       tt.Semester,
	})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if snap == nil || len(snap.Entries) != 1 {
		t.Fatalf("snapshot = %+v, want one entry", snap)
	}
}
