package service

import (
	"context"
	"errors"
	"testing"

	"github.com/artifacts-oss/daylog/internal/domain"
	"github.com/artifacts-oss/daylog/internal/dto"
	"github.com/artifacts-oss/daylog/pkg/code"
	"github.com/artifacts-oss/daylog/pkg/diff"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockNoteWriteRepo struct {
	domain.NoteRepository
	notes   map[int64]*domain.Note
	updated []*domain.Note
}

func (m *mockNoteWriteRepo) GetByID(ctx context.Context, id, uid int64) (*domain.Note, error) {
	n, ok := m.notes[id]
	if !ok || n.UID != uid {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *n
	return &cp, nil
}

func (m *mockNoteWriteRepo) Update(ctx context.Context, note *domain.Note, uid int64) (*domain.Note, error) {
	m.updated = append(m.updated, note)
	m.notes[note.ID] = note
	cp := *note
	return &cp, nil
}

func newNoteService(noteRepo *mockNoteWriteRepo, changeRepo *mockChangeRepo) *noteService {
	return &noteService{
		noteRepo:   noteRepo,
		changeRepo: changeRepo,
		logger:     zap.NewNop(),
		config:     &AppServiceConfig{ChangeKeepVersions: 100},
	}
}

func TestNoteModifyRecordsChange(t *testing.T) {
	noteRepo := &mockNoteWriteRepo{notes: map[int64]*domain.Note{
		7: {ID: 7, UID: 1, BoardID: 3, Title: "日报", Content: "周一的内容", ContentHash: "h1", Version: 1},
	}}
	changeRepo := newMockChangeRepo()
	svc := newNoteService(noteRepo, changeRepo)

	result, err := svc.Modify(context.Background(), 1, &dto.NoteModifyRequest{
		ID:      7,
		Title:   "日报",
		Content: "周二的内容",
	}, "Web")
	if err != nil {
		t.Fatalf("Modify failed: %v", err)
	}

	if len(changeRepo.appended) != 1 {
		t.Fatalf("expected one change record, got %d", len(changeRepo.appended))
	}
	record := changeRepo.appended[0]
	if record.PrevContent != "周一的内容" {
		t.Errorf("record must snapshot previous content, got %q", record.PrevContent)
	}
	if record.PrevHash != "h1" {
		t.Errorf("record prev hash = %q, want h1", record.PrevHash)
	}
	if record.Version != 2 {
		t.Errorf("record version = %d, want 2", record.Version)
	}
	if record.DiffPatch == "" {
		t.Error("record must carry a diff patch")
	}

	// 补丁应能把旧内容还原为新内容
	patched, ok := diff.Apply("周一的内容", record.DiffPatch)
	if !ok || patched != "周二的内容" {
		t.Errorf("patch apply = %q ok=%v, want new content", patched, ok)
	}

	if result.Version != 2 {
		t.Errorf("returned note version = %d, want 2", result.Version)
	}
}

func TestNoteModifyIdenticalContentSkipsRecord(t *testing.T) {
	noteRepo := &mockNoteWriteRepo{notes: map[int64]*domain.Note{
		7: {ID: 7, UID: 1, BoardID: 3, Title: "日报", Content: "不变的内容", Version: 1},
	}}
	changeRepo := newMockChangeRepo()
	svc := newNoteService(noteRepo, changeRepo)

	_, err := svc.Modify(context.Background(), 1, &dto.NoteModifyRequest{
		ID:      7,
		Title:   "改个标题",
		Content: "不变的内容",
	}, "Web")
	if err != nil {
		t.Fatalf("Modify failed: %v", err)
	}

	if len(changeRepo.appended) != 0 {
		t.Errorf("identical content must not record a change, got %d", len(changeRepo.appended))
	}
	if len(noteRepo.updated) != 1 || noteRepo.updated[0].Title != "改个标题" {
		t.Error("title change should still be saved")
	}
}

func TestNoteModifyUnchangedIsNoop(t *testing.T) {
	noteRepo := &mockNoteWriteRepo{notes: map[int64]*domain.Note{
		7: {ID: 7, UID: 1, Title: "日报", Content: "不变的内容", Version: 1},
	}}
	changeRepo := newMockChangeRepo()
	svc := newNoteService(noteRepo, changeRepo)

	_, err := svc.Modify(context.Background(), 1, &dto.NoteModifyRequest{
		ID:      7,
		Title:   "日报",
		Content: "不变的内容",
	}, "Web")
	if err != nil {
		t.Fatalf("Modify failed: %v", err)
	}
	if len(changeRepo.appended) != 0 || len(noteRepo.updated) != 0 {
		t.Error("unchanged note must not write anything")
	}
}

func TestNoteModifyConcurrentWriteConflict(t *testing.T) {
	noteRepo := &mockNoteWriteRepo{notes: map[int64]*domain.Note{
		7: {ID: 7, UID: 1, BoardID: 3, Title: "日报", Content: "周一的内容", Version: 1},
	}}
	changeRepo := newMockChangeRepo()
	changeRepo.appendErr = domain.ErrNoteVersionConflict
	svc := newNoteService(noteRepo, changeRepo)

	_, err := svc.Modify(context.Background(), 1, &dto.NoteModifyRequest{
		ID:      7,
		Title:   "日报",
		Content: "周二的内容",
	}, "Web")
	if !errors.Is(err, code.ErrorNoteVersionConflict) {
		t.Fatalf("Modify error = %v, want version conflict", err)
	}
}
