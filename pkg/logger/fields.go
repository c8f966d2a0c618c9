package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldUID 用户 ID 字段
	FieldUID = "uid"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldBoard 看板 ID 字段
	FieldBoard = "boardId"

	// FieldNote 笔记 ID 字段
	FieldNote = "noteId"

	// FieldChange 历史记录 ID 字段
	FieldChange = "changeId"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldSize 内容大小字段
	FieldSize = "size"

	// FieldFileKey 文件键字段
	FieldFileKey = "fileKey"
)
