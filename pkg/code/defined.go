package code

// 成功码 // success codes
var (
	Success = NewSuss(200, lang{"Success", "成功"})
)

// 通用错误码 // common error codes
var (
	ErrorInvalidParams        = NewError(10001, lang{"Invalid Params", "入参错误"})
	ErrorServerInternal       = NewError(10002, lang{"Server Internal Error", "服务内部错误"})
	ErrorNotFound             = NewError(10003, lang{"Resource Not Found", "资源不存在"})
	ErrorTooManyRequests      = NewError(10004, lang{"Too Many Requests", "请求过多"})
	ErrorNotUserAuthToken     = NewError(10005, lang{"User Auth Token Missing", "未携带用户授权令牌"})
	ErrorInvalidUserAuthToken = NewError(10006, lang{"User Auth Token Invalid", "用户授权令牌无效"})
	ErrorUserAuthTokenTimeout = NewError(10007, lang{"User Auth Token Expired", "用户授权令牌已过期"})
	ErrorDBQuery              = NewError(10008, lang{"Database Query Error", "数据库查询错误"})
)

// 用户错误码 // user error codes
var (
	ErrorUserNotExist        = NewError(20001, lang{"User Not Exist", "用户不存在"})
	ErrorUserAlreadyExists   = NewError(20002, lang{"User Already Exists", "用户已存在"})
	ErrorUserPasswordWrong   = NewError(20003, lang{"Email Or Password Wrong", "邮箱或密码错误"})
	ErrorUserRegisterClosed  = NewError(20004, lang{"User Register Closed", "用户注册已关闭"})
	ErrorUserResetTokenWrong = NewError(20005, lang{"Password Reset Token Invalid", "密码重置令牌无效"})
	ErrorUserSendEmailFail   = NewError(20006, lang{"Send Email Failed", "邮件发送失败"})
	ErrorUserUpdateFail      = NewError(20007, lang{"User Update Failed", "用户更新失败"})
	ErrorUserTotpCodeWrong   = NewError(20008, lang{"One-Time Password Wrong", "动态验证码错误"})
	ErrorUserNotAdminAuth    = NewError(20009, lang{"Admin Permission Required", "需要管理员权限"})
)

// 看板错误码 // board error codes
var (
	ErrorBoardNotExist   = NewError(30001, lang{"Board Not Exist", "看板不存在"})
	ErrorBoardCreateFail = NewError(30002, lang{"Board Create Failed", "看板创建失败"})
	ErrorBoardUpdateFail = NewError(30003, lang{"Board Update Failed", "看板更新失败"})
	ErrorBoardDeleteFail = NewError(30004, lang{"Board Delete Failed", "看板删除失败"})
)

// 笔记错误码 // note error codes
var (
	ErrorNoteNotExist        = NewError(40001, lang{"Note Not Exist", "笔记不存在"})
	ErrorNoteCreateFail      = NewError(40002, lang{"Note Create Failed", "笔记创建失败"})
	ErrorNoteUpdateFail      = NewError(40003, lang{"Note Update Failed", "笔记更新失败"})
	ErrorNoteDeleteFail      = NewError(40004, lang{"Note Delete Failed", "笔记删除失败"})
	ErrorNoteVersionConflict = NewError(40005, lang{"Note Modified By Another Client", "笔记已被其他客户端修改"})
)

// 修改历史错误码 // change history error codes
var (
	ErrorChangeNotExist          = NewError(50001, lang{"Change Record Not Exist", "修改记录不存在"})
	ErrorChangeDeleteFail        = NewError(50002, lang{"Change Record Delete Failed", "修改记录删除失败"})
	ErrorChangeClearFail         = NewError(50003, lang{"Change History Clear Failed", "修改历史清空失败"})
	ErrorChangeRestoreFail       = NewError(50004, lang{"Restore To Version Failed", "恢复历史版本失败"})
	ErrorChangeCommentAddFail    = NewError(50005, lang{"Change Comment Add Failed", "修改评论添加失败"})
	ErrorChangeCommentDeleteFail = NewError(50006, lang{"Change Comment Delete Failed", "修改评论删除失败"})
)

// 上传错误码 // upload error codes
var (
	ErrorUploadFileFail     = NewError(60001, lang{"Upload File Failed", "文件上传失败"})
	ErrorInvalidFileType    = NewError(60002, lang{"Invalid File Type", "文件类型不允许"})
	ErrorFileTooLarge       = NewError(60003, lang{"File Too Large", "文件大小超过限制"})
	ErrorInvalidStorageType = NewError(60004, lang{"Invalid Storage Type", "存储类型不支持"})
)
