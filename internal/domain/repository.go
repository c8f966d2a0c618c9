// Package domain 定义领域模型和接口
package domain

import "context"

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByUsername 根据用户名获取用户
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// UpdateProfile 更新用户昵称和头像
	UpdateProfile(ctx context.Context, nickname, avatar string, uid int64) error

	// UpdatePassword 更新用户密码
	UpdatePassword(ctx context.Context, password string, uid int64) error

	// UpdateTotpSecret 更新用户动态口令密钥
	UpdateTotpSecret(ctx context.Context, secret string, uid int64) error

	// GetAllUIDs 获取所有用户UID
	GetAllUIDs(ctx context.Context) ([]int64, error)

	// Count 获取用户总数
	Count(ctx context.Context) (int64, error)
}

// BoardRepository 看板仓储接口
type BoardRepository interface {
	// GetByID 根据ID获取看板
	GetByID(ctx context.Context, id, uid int64) (*Board, error)

	// GetByName 根据名称获取看板
	GetByName(ctx context.Context, name string, uid int64) (*Board, error)

	// Create 创建看板
	Create(ctx context.Context, board *Board, uid int64) (*Board, error)

	// Update 更新看板
	Update(ctx context.Context, board *Board, uid int64) error

	// UpdateNoteCount 更新看板的笔记数量
	UpdateNoteCount(ctx context.Context, noteCount, id, uid int64) error

	// List 获取看板列表
	List(ctx context.Context, uid int64) ([]*Board, error)

	// Delete 删除看板（软删除）
	Delete(ctx context.Context, id, uid int64) error
}

// NoteRepository 笔记仓储接口
// 所有读写都以 note -> board -> user 的归属链做权限过滤
type NoteRepository interface {
	// GetByID 根据ID获取笔记
	GetByID(ctx context.Context, id, uid int64) (*Note, error)

	// Create 创建笔记
	Create(ctx context.Context, note *Note, uid int64) (*Note, error)

	// Update 更新笔记
	Update(ctx context.Context, note *Note, uid int64) (*Note, error)

	// UpdateDelete 更新笔记为删除状态
	UpdateDelete(ctx context.Context, id, uid int64) error

	// Delete 物理删除笔记
	Delete(ctx context.Context, id, uid int64) error

	// DeletePhysicalByTime 根据时间物理删除已标记删除的笔记
	DeletePhysicalByTime(ctx context.Context, timestamp int64) error

	// List 分页获取看板下的笔记列表
	List(ctx context.Context, boardID int64, page, pageSize int, uid int64, keyword string) ([]*Note, error)

	// ListCount 获取笔记数量
	ListCount(ctx context.Context, boardID, uid int64, keyword string) (int64, error)

	// CountSizeSum 获取笔记数量和大小总和
	CountSizeSum(ctx context.Context, boardID, uid int64) (*CountSizeResult, error)
}

// NoteChangeRepository 笔记历史仓储接口
// 历史记录追加写入, 查询经由 note -> board 归属链过滤
type NoteChangeRepository interface {
	// GetByID 根据ID获取历史记录
	GetByID(ctx context.Context, id, uid int64) (*NoteChange, error)

	// Create 创建历史记录
	Create(ctx context.Context, change *NoteChange, uid int64) (*NoteChange, error)

	// AppendWithNoteUpdate 在同一事务中追加历史记录并更新笔记内容
	// 笔记当前版本不等于 note.Version-1 时返回 ErrNoteVersionConflict 并回滚
	AppendWithNoteUpdate(ctx context.Context, change *NoteChange, note *Note, uid int64) (*NoteChange, error)

	// ListByNoteID 根据笔记ID获取历史记录列表, 按版本降序
	ListByNoteID(ctx context.Context, noteID int64, page, pageSize int, uid int64) ([]*NoteChange, int64, error)

	// GetLatestVersion 获取笔记的最新版本号
	GetLatestVersion(ctx context.Context, noteID, uid int64) (int64, error)

	// Delete 删除指定ID的历史记录, 返回删除的行数
	Delete(ctx context.Context, id, uid int64) (int64, error)

	// DeleteByNoteID 删除指定笔记的全部历史记录, 返回删除的行数
	DeleteByNoteID(ctx context.Context, noteID, uid int64) (int64, error)

	// GetNoteIDsWithOldChanges 获取有旧历史记录的笔记ID列表
	// cutoffTime: 截止时间戳（毫秒），返回有早于此时间历史记录的笔记ID
	GetNoteIDsWithOldChanges(ctx context.Context, cutoffTime int64) ([]int64, error)

	// DeleteOldVersions 删除旧版本历史记录，保留最近 N 个版本, 返回删除的行数
	DeleteOldVersions(ctx context.Context, noteID int64, cutoffTime int64, keepVersions int, uid int64) (int64, error)

	// GetCommentByID 根据ID获取评论
	GetCommentByID(ctx context.Context, id int64) (*ChangeComment, error)

	// CreateComment 创建评论
	CreateComment(ctx context.Context, comment *ChangeComment) (*ChangeComment, error)

	// ListCommentsByChangeID 获取历史记录的评论列表
	ListCommentsByChangeID(ctx context.Context, changeID int64) ([]*ChangeComment, error)

	// ListCommentsByChangeIDs 批量获取多条历史记录的评论
	ListCommentsByChangeIDs(ctx context.Context, changeIDs []int64) ([]*ChangeComment, error)

	// DeleteComment 删除评论, 仅作者本人可删, 返回删除的行数
	DeleteComment(ctx context.Context, id, uid int64) (int64, error)
}

// PictureRepository 图片仓储接口
type PictureRepository interface {
	// GetByID 根据ID获取图片
	GetByID(ctx context.Context, id, uid int64) (*Picture, error)

	// Create 创建图片记录
	Create(ctx context.Context, picture *Picture, uid int64) (*Picture, error)

	// List 获取用户图片列表
	List(ctx context.Context, uid int64, page, pageSize int) ([]*Picture, int64, error)

	// Delete 物理删除图片记录
	Delete(ctx context.Context, id, uid int64) error
}
