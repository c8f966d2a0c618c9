package service

import (
	"context"
	"testing"
	"time"

	"github.com/artifacts-oss/daylog/internal/domain"
	"github.com/artifacts-oss/daylog/internal/dto"
	"github.com/artifacts-oss/daylog/pkg/app"
	"github.com/artifacts-oss/daylog/pkg/diff"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

type mockChangeRepo struct {
	domain.NoteChangeRepository
	changes      map[int64]*domain.NoteChange
	comments     map[int64]*domain.ChangeComment
	deleteRows   int64
	deleteErr    error
	appendErr    error
	appended     []*domain.NoteChange
	updatedNotes []*domain.Note
	oldNoteIDs   []int64
	cleanupRows  map[int64]int64
	cleanedNotes []int64
	nextID       int64
}

func newMockChangeRepo() *mockChangeRepo {
	return &mockChangeRepo{
		changes:  make(map[int64]*domain.NoteChange),
		comments: make(map[int64]*domain.ChangeComment),
		nextID:   100,
	}
}

func (m *mockChangeRepo) GetByID(ctx context.Context, id, uid int64) (*domain.NoteChange, error) {
	c, ok := m.changes[id]
	if !ok || c.UID != uid {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (m *mockChangeRepo) ListByNoteID(ctx context.Context, noteID int64, page, pageSize int, uid int64) ([]*domain.NoteChange, int64, error) {
	var out []*domain.NoteChange
	for _, c := range m.changes {
		if c.NoteID == noteID && c.UID == uid {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockChangeRepo) AppendWithNoteUpdate(ctx context.Context, change *domain.NoteChange, note *domain.Note, uid int64) (*domain.NoteChange, error) {
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	m.nextID++
	change.ID = m.nextID
	change.UID = uid
	m.changes[change.ID] = change
	m.appended = append(m.appended, change)
	m.updatedNotes = append(m.updatedNotes, note)
	return change, nil
}

func (m *mockChangeRepo) Delete(ctx context.Context, id, uid int64) (int64, error) {
	return m.deleteRows, m.deleteErr
}

func (m *mockChangeRepo) DeleteByNoteID(ctx context.Context, noteID, uid int64) (int64, error) {
	return m.deleteRows, m.deleteErr
}

func (m *mockChangeRepo) CreateComment(ctx context.Context, comment *domain.ChangeComment) (*domain.ChangeComment, error) {
	m.nextID++
	comment.ID = m.nextID
	m.comments[comment.ID] = comment
	return comment, nil
}

func (m *mockChangeRepo) ListCommentsByChangeID(ctx context.Context, changeID int64) ([]*domain.ChangeComment, error) {
	var out []*domain.ChangeComment
	for _, c := range m.comments {
		if c.ChangeID == changeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockChangeRepo) ListCommentsByChangeIDs(ctx context.Context, changeIDs []int64) ([]*domain.ChangeComment, error) {
	var out []*domain.ChangeComment
	for _, id := range changeIDs {
		for _, c := range m.comments {
			if c.ChangeID == id {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (m *mockChangeRepo) DeleteComment(ctx context.Context, id, uid int64) (int64, error) {
	c, ok := m.comments[id]
	if !ok || c.UID != uid {
		return 0, nil
	}
	delete(m.comments, id)
	return 1, nil
}

func (m *mockChangeRepo) GetNoteIDsWithOldChanges(ctx context.Context, cutoffTime int64) ([]int64, error) {
	return m.oldNoteIDs, nil
}

func (m *mockChangeRepo) DeleteOldVersions(ctx context.Context, noteID int64, cutoffTime int64, keepVersions int, uid int64) (int64, error) {
	rows := m.cleanupRows[noteID]
	if rows > 0 {
		m.cleanedNotes = append(m.cleanedNotes, noteID)
	}
	return rows, nil
}

type mockNoteRepo struct {
	domain.NoteRepository
	notes map[int64]*domain.Note
}

func (m *mockNoteRepo) GetByID(ctx context.Context, id, uid int64) (*domain.Note, error) {
	n, ok := m.notes[id]
	if !ok || n.UID != uid {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *n
	return &cp, nil
}

type mockUserLookupRepo struct {
	domain.UserRepository
	users map[int64]*domain.User
}

func (m *mockUserLookupRepo) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	u, ok := m.users[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *mockUserLookupRepo) GetAllUIDs(ctx context.Context) ([]int64, error) {
	uids := make([]int64, 0, len(m.users))
	for uid := range m.users {
		uids = append(uids, uid)
	}
	return uids, nil
}

func newChangeService(changeRepo *mockChangeRepo, noteRepo *mockNoteRepo) *noteChangeService {
	return &noteChangeService{
		changeRepo: changeRepo,
		noteRepo:   noteRepo,
		userRepo:   &mockUserLookupRepo{users: map[int64]*domain.User{}},
		logger:     zap.NewNop(),
		config:     &AppServiceConfig{ChangeKeepVersions: 100},
	}
}

func TestChangeListUnknownNoteReturnsEmpty(t *testing.T) {
	svc := newChangeService(newMockChangeRepo(), &mockNoteRepo{notes: map[int64]*domain.Note{}})

	list, count := svc.List(context.Background(), 1, &dto.ChangeListRequest{NoteID: 42}, &app.Pager{Page: 1, PageSize: 10})
	if list == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(list) != 0 || count != 0 {
		t.Fatalf("expected empty result, got %d items count=%d", len(list), count)
	}
}

func TestChangeListOtherUserReturnsEmpty(t *testing.T) {
	changeRepo := newMockChangeRepo()
	changeRepo.changes[1] = &domain.NoteChange{ID: 1, NoteID: 7, UID: 1, Version: 1}
	noteRepo := &mockNoteRepo{notes: map[int64]*domain.Note{
		7: {ID: 7, UID: 1, BoardID: 3, Content: "abc"},
	}}
	svc := newChangeService(changeRepo, noteRepo)

	list, count := svc.List(context.Background(), 2, &dto.ChangeListRequest{NoteID: 7}, &app.Pager{Page: 1, PageSize: 10})
	if len(list) != 0 || count != 0 {
		t.Fatalf("other user must not see changes, got %d items", len(list))
	}
}

func TestChangeDelete(t *testing.T) {
	tests := []struct {
		name string
		rows int64
		err  error
		want bool
	}{
		{name: "deleted", rows: 1, want: true},
		{name: "not found or unauthorized", rows: 0, want: false},
		{name: "db error", err: gorm.ErrInvalidDB, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changeRepo := newMockChangeRepo()
			changeRepo.deleteRows = tt.rows
			changeRepo.deleteErr = tt.err
			svc := newChangeService(changeRepo, &mockNoteRepo{})

			got := svc.Delete(context.Background(), 1, 5)
			if got != tt.want {
				t.Errorf("Delete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChangeClear(t *testing.T) {
	noteRepo := &mockNoteRepo{notes: map[int64]*domain.Note{
		7: {ID: 7, UID: 1, BoardID: 3, Content: "abc"},
	}}

	t.Run("owned note with history", func(t *testing.T) {
		changeRepo := newMockChangeRepo()
		changeRepo.deleteRows = 3
		svc := newChangeService(changeRepo, noteRepo)

		if !svc.Clear(context.Background(), 1, 7) {
			t.Error("clearing owned note must succeed")
		}
	})

	// 历史本就为空也算清空成功
	t.Run("owned note with empty history", func(t *testing.T) {
		changeRepo := newMockChangeRepo()
		changeRepo.deleteRows = 0
		svc := newChangeService(changeRepo, noteRepo)

		if !svc.Clear(context.Background(), 1, 7) {
			t.Error("clearing an already empty history must succeed")
		}
	})

	t.Run("stranger", func(t *testing.T) {
		svc := newChangeService(newMockChangeRepo(), noteRepo)

		if svc.Clear(context.Background(), 2, 7) {
			t.Error("stranger must not clear another user's history")
		}
	})

	t.Run("unknown note", func(t *testing.T) {
		svc := newChangeService(newMockChangeRepo(), noteRepo)

		if svc.Clear(context.Background(), 1, 404) {
			t.Error("clearing an unknown note must fail")
		}
	})

	t.Run("db error", func(t *testing.T) {
		changeRepo := newMockChangeRepo()
		changeRepo.deleteErr = gorm.ErrInvalidDB
		svc := newChangeService(changeRepo, noteRepo)

		if svc.Clear(context.Background(), 1, 7) {
			t.Error("db error must report failure")
		}
	})
}

func TestChangeAddCommentUnknownChangeReturnsNil(t *testing.T) {
	svc := newChangeService(newMockChangeRepo(), &mockNoteRepo{})

	got := svc.AddComment(context.Background(), 1, &dto.CommentAddRequest{ChangeID: 99, Content: "hi"})
	if got != nil {
		t.Fatalf("expected nil for unknown change, got %+v", got)
	}
}

func TestChangeAddAndDeleteComment(t *testing.T) {
	changeRepo := newMockChangeRepo()
	changeRepo.changes[10] = &domain.NoteChange{ID: 10, NoteID: 7, UID: 1, Version: 2}
	svc := newChangeService(changeRepo, &mockNoteRepo{})

	comment := svc.AddComment(context.Background(), 1, &dto.CommentAddRequest{ChangeID: 10, Content: "looks right"})
	if comment == nil {
		t.Fatal("expected comment, got nil")
	}
	if comment.ChangeID != 10 || comment.UID != 1 {
		t.Fatalf("comment misattributed: %+v", comment)
	}

	// 非作者删除不生效
	if svc.DeleteComment(context.Background(), 2, comment.ID) {
		t.Error("non-author must not delete comment")
	}
	if !svc.DeleteComment(context.Background(), 1, comment.ID) {
		t.Error("author delete should succeed")
	}
}

func TestChangeRestore(t *testing.T) {
	changeRepo := newMockChangeRepo()
	changeRepo.changes[10] = &domain.NoteChange{
		ID:          10,
		NoteID:      7,
		UID:         1,
		PrevContent: "old content",
		PrevHash:    "h-old",
		Version:     2,
	}
	noteRepo := &mockNoteRepo{notes: map[int64]*domain.Note{
		7: {ID: 7, UID: 1, BoardID: 3, Content: "current content", Version: 5},
	}}
	svc := newChangeService(changeRepo, noteRepo)

	result := svc.Restore(context.Background(), 1, 10, "Web")
	if !result.Success {
		t.Fatalf("restore failed: %s", result.Err)
	}

	if len(changeRepo.appended) != 1 {
		t.Fatalf("expected one appended record, got %d", len(changeRepo.appended))
	}
	record := changeRepo.appended[0]
	if record.PrevContent != "current content" {
		t.Errorf("restore record must snapshot pre-restore content, got %q", record.PrevContent)
	}
	if record.Version != 6 {
		t.Errorf("restore record version = %d, want 6", record.Version)
	}

	// 补丁方向为恢复目标到恢复前内容, 应用到恢复后的笔记可还原恢复前内容
	undone, ok := diff.Apply("old content", record.DiffPatch)
	if !ok || undone != "current content" {
		t.Errorf("applying restore patch = %q ok=%v, want replaced content", undone, ok)
	}

	updated := changeRepo.updatedNotes[0]
	if updated.Content != "old content" {
		t.Errorf("note content = %q, want restored %q", updated.Content, "old content")
	}
	if updated.Version != 6 {
		t.Errorf("note version = %d, want 6", updated.Version)
	}
}

func TestChangeRestoreIdenticalContentIsNoop(t *testing.T) {
	changeRepo := newMockChangeRepo()
	changeRepo.changes[10] = &domain.NoteChange{ID: 10, NoteID: 7, UID: 1, PrevContent: "same", Version: 2}
	noteRepo := &mockNoteRepo{notes: map[int64]*domain.Note{
		7: {ID: 7, UID: 1, Content: "same", Version: 5},
	}}
	svc := newChangeService(changeRepo, noteRepo)

	result := svc.Restore(context.Background(), 1, 10, "Web")
	if !result.Success {
		t.Fatalf("restore failed: %s", result.Err)
	}
	if len(changeRepo.appended) != 0 {
		t.Errorf("identical content must not append a record, got %d", len(changeRepo.appended))
	}
}

func TestChangeRestoreUnknownChange(t *testing.T) {
	svc := newChangeService(newMockChangeRepo(), &mockNoteRepo{})

	result := svc.Restore(context.Background(), 1, 404, "Web")
	if result.Success {
		t.Fatal("restore of unknown change must fail")
	}
	if result.Err == "" {
		t.Error("failed restore must carry a reason")
	}
}

func TestChangeRestoreConcurrentWriteFails(t *testing.T) {
	changeRepo := newMockChangeRepo()
	changeRepo.changes[10] = &domain.NoteChange{ID: 10, NoteID: 7, UID: 1, PrevContent: "old content", Version: 2}
	changeRepo.appendErr = domain.ErrNoteVersionConflict
	noteRepo := &mockNoteRepo{notes: map[int64]*domain.Note{
		7: {ID: 7, UID: 1, Content: "current content", Version: 5},
	}}
	svc := newChangeService(changeRepo, noteRepo)

	result := svc.Restore(context.Background(), 1, 10, "Web")
	if result.Success {
		t.Fatal("restore must fail when another writer changed the note")
	}
	if result.Err == "" {
		t.Error("version conflict must carry a reason")
	}
}

func TestChangeListCarriesAuthorAndComments(t *testing.T) {
	changeRepo := newMockChangeRepo()
	changeRepo.changes[1] = &domain.NoteChange{ID: 1, NoteID: 7, UID: 1, Version: 1}
	changeRepo.comments[200] = &domain.ChangeComment{ID: 200, ChangeID: 1, NoteID: 7, UID: 1, Content: "第一版"}
	noteRepo := &mockNoteRepo{notes: map[int64]*domain.Note{
		7: {ID: 7, UID: 1, BoardID: 3, Content: "abc"},
	}}
	svc := newChangeService(changeRepo, noteRepo)
	svc.userRepo = &mockUserLookupRepo{users: map[int64]*domain.User{
		1: {UID: 1, Nickname: "小海"},
	}}

	list, count := svc.List(context.Background(), 1, &dto.ChangeListRequest{NoteID: 7}, &app.Pager{Page: 1, PageSize: 10})
	if count != 1 || len(list) != 1 {
		t.Fatalf("expected one change, got %d count=%d", len(list), count)
	}

	change := list[0]
	if change.AuthorUID != 1 || change.AuthorNickname != "小海" {
		t.Errorf("change author = %d %q, want 1 小海", change.AuthorUID, change.AuthorNickname)
	}
	if len(change.Comments) != 1 {
		t.Fatalf("expected one comment on change, got %d", len(change.Comments))
	}
	if change.Comments[0].Content != "第一版" || change.Comments[0].AuthorNickname != "小海" {
		t.Errorf("comment = %+v, want content and author nickname", change.Comments[0])
	}
}

func TestChangeCleanupCountsOnlyDeletedRows(t *testing.T) {
	changeRepo := newMockChangeRepo()
	changeRepo.oldNoteIDs = []int64{7, 8}
	changeRepo.cleanupRows = map[int64]int64{7: 4}
	svc := newChangeService(changeRepo, &mockNoteRepo{})
	svc.userRepo = &mockUserLookupRepo{users: map[int64]*domain.User{
		1: {UID: 1, Nickname: "小海"},
	}}

	core, logs := observer.New(zap.InfoLevel)
	svc.logger = zap.New(core)

	if err := svc.CleanupByTime(context.Background(), time.Now().UnixMilli(), 2); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	entries := logs.FilterMessage("note change cleanup completed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one completion entry, got %d", len(entries))
	}

	// 没删到行的笔记不计入清理结果
	fields := entries[0].ContextMap()
	if got := fields["notesCleaned"]; got != int64(1) {
		t.Errorf("notesCleaned = %v, want 1", got)
	}
	if got := fields["changesDeleted"]; got != int64(4) {
		t.Errorf("changesDeleted = %v, want 4", got)
	}
}
