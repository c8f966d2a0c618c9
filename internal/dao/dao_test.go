package dao

import (
	"context"
	"testing"
	"time"

	"github.com/artifacts-oss/daylog/internal/domain"
	"github.com/artifacts-oss/daylog/internal/model"
	"github.com/artifacts-oss/daylog/pkg/timex"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db, ""))

	return New(db, context.Background())
}

func seedNote(t *testing.T, d *Dao, uid int64) (*model.Board, *model.Note) {
	t.Helper()

	board := &model.Board{UID: uid, Name: "工作", CreatedAt: timex.Now(), UpdatedAt: timex.Now()}
	require.NoError(t, d.DB().Create(board).Error)

	note := &model.Note{
		UID:       uid,
		BoardID:   board.ID,
		Title:     "会议记录",
		Content:   "第一版内容",
		Version:   1,
		CreatedAt: timex.Now(),
		UpdatedAt: timex.Now(),
	}
	require.NoError(t, d.DB().Create(note).Error)
	return board, note
}

func TestNoteRepositoryOwnership(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	const owner, stranger = int64(1), int64(2)
	_, note := seedNote(t, d, owner)

	got, err := repo.GetByID(ctx, note.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "会议记录", got.Title)

	// 非所有者不可见, 与不存在无法区分
	_, err = repo.GetByID(ctx, note.ID, stranger)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.GetByID(ctx, 99999, owner)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestNoteChangeRepositoryAppendWithNoteUpdate(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteChangeRepository(d)
	noteRepo := NewNoteRepository(d)
	ctx := context.Background()

	const uid = int64(1)
	board, note := seedNote(t, d, uid)

	change := &domain.NoteChange{
		NoteID:      note.ID,
		BoardID:     board.ID,
		PrevContent: note.Content,
		Summary:     "+5 -0",
		Preview:     "第二版内容",
		Version:     2,
		ClientName:  "Web",
	}
	updated := &domain.Note{ID: note.ID, Title: note.Title, Content: "第二版内容", ContentHash: "abc", Version: 2}

	created, err := repo.AppendWithNoteUpdate(ctx, change, updated, uid)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, uid, created.UID)
	assert.False(t, created.CreatedAt.IsZero())

	// 笔记内容应在同一事务中被更新
	after, err := noteRepo.GetByID(ctx, note.ID, uid)
	require.NoError(t, err)
	assert.Equal(t, "第二版内容", after.Content)
	assert.Equal(t, int64(2), after.Version)

	version, err := repo.GetLatestVersion(ctx, note.ID, uid)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestNoteChangeRepositoryAppendStaleVersion(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteChangeRepository(d)
	noteRepo := NewNoteRepository(d)
	ctx := context.Background()

	const uid = int64(1)
	board, note := seedNote(t, d, uid)

	// 基于版本2写入, 但笔记仍在版本1, 说明读取后被其他写入者抢先
	change := &domain.NoteChange{NoteID: note.ID, BoardID: board.ID, PrevContent: "过期的内容", Version: 3}
	stale := &domain.Note{ID: note.ID, Title: note.Title, Content: "过期写入", ContentHash: "stale", Version: 3}

	_, err := repo.AppendWithNoteUpdate(ctx, change, stale, uid)
	require.ErrorIs(t, err, domain.ErrNoteVersionConflict)

	// 事务回滚: 笔记未被改动, 历史记录也未写入
	after, err := noteRepo.GetByID(ctx, note.ID, uid)
	require.NoError(t, err)
	assert.Equal(t, "第一版内容", after.Content)
	assert.Equal(t, int64(1), after.Version)

	_, count, err := repo.ListByNoteID(ctx, note.ID, 1, 10, uid)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNoteChangeRepositoryListOrderAndScope(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteChangeRepository(d)
	ctx := context.Background()

	const owner, stranger = int64(1), int64(2)
	board, note := seedNote(t, d, owner)

	for v := int64(1); v <= 3; v++ {
		_, err := repo.Create(ctx, &domain.NoteChange{
			NoteID:  note.ID,
			BoardID: board.ID,
			Version: v,
			Summary: "edit",
		}, owner)
		require.NoError(t, err)
	}

	list, count, err := repo.ListByNoteID(ctx, note.ID, 1, 10, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	require.Len(t, list, 3)
	// 新版本在前
	assert.Equal(t, int64(3), list[0].Version)
	assert.Equal(t, int64(1), list[2].Version)

	// 非所有者得到空列表
	list, count, err = repo.ListByNoteID(ctx, note.ID, 1, 10, stranger)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, list)

	version, err := repo.GetLatestVersion(ctx, note.ID, stranger)
	require.NoError(t, err)
	assert.Zero(t, version)
}

func TestNoteChangeRepositoryDelete(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteChangeRepository(d)
	ctx := context.Background()

	const owner, stranger = int64(1), int64(2)
	board, note := seedNote(t, d, owner)

	c1, err := repo.Create(ctx, &domain.NoteChange{NoteID: note.ID, BoardID: board.ID, Version: 1}, owner)
	require.NoError(t, err)
	c2, err := repo.Create(ctx, &domain.NoteChange{NoteID: note.ID, BoardID: board.ID, Version: 2}, owner)
	require.NoError(t, err)

	// 非所有者删除不生效
	rows, err := repo.Delete(ctx, c1.ID, stranger)
	require.NoError(t, err)
	assert.Zero(t, rows)

	rows, err = repo.Delete(ctx, c1.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// 清空剩余历史
	rows, err = repo.DeleteByNoteID(ctx, note.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	_, err = repo.GetByID(ctx, c2.ID, owner)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestNoteChangeRepositoryComments(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteChangeRepository(d)
	ctx := context.Background()

	const author, other = int64(1), int64(2)
	board, note := seedNote(t, d, author)
	change, err := repo.Create(ctx, &domain.NoteChange{NoteID: note.ID, BoardID: board.ID, Version: 1}, author)
	require.NoError(t, err)

	comment, err := repo.CreateComment(ctx, &domain.ChangeComment{
		ChangeID: change.ID,
		NoteID:   note.ID,
		UID:      author,
		Content:  "这次改动修正了日期",
	})
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)

	list, err := repo.ListCommentsByChangeID(ctx, change.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "这次改动修正了日期", list[0].Content)

	// 仅作者本人可删
	rows, err := repo.DeleteComment(ctx, comment.ID, other)
	require.NoError(t, err)
	assert.Zero(t, rows)

	rows, err = repo.DeleteComment(ctx, comment.ID, author)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
}

func TestNoteChangeRepositoryDeleteOldVersions(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteChangeRepository(d)
	ctx := context.Background()

	const uid = int64(1)
	board, note := seedNote(t, d, uid)

	for v := int64(1); v <= 5; v++ {
		_, err := repo.Create(ctx, &domain.NoteChange{NoteID: note.ID, BoardID: board.ID, Version: v}, uid)
		require.NoError(t, err)
	}

	// 截止时间取未来, 保留最近2个版本, 其余删除
	cutoff := time.Now().Add(time.Hour).UnixMilli()
	rows, err := repo.DeleteOldVersions(ctx, note.ID, cutoff, 2, uid)
	require.NoError(t, err)
	assert.Equal(t, int64(3), rows)

	// 再次清理没有可删的行
	rows, err = repo.DeleteOldVersions(ctx, note.ID, cutoff, 2, uid)
	require.NoError(t, err)
	assert.Zero(t, rows)

	list, count, err := repo.ListByNoteID(ctx, note.ID, 1, 10, uid)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.Len(t, list, 2)
	assert.Equal(t, int64(5), list[0].Version)
	assert.Equal(t, int64(4), list[1].Version)
}
