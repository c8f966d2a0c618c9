package global

import (
	"github.com/artifacts-oss/daylog/pkg/validator"
)

// Validator WebSocket 消息校验使用的全局验证器
// 在服务启动时由 cmd 包赋值
var Validator *validator.CustomValidator
