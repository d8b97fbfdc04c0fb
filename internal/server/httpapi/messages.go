package httpapi

import "github.com/dmitrijs2005/passvault/internal/common"

// Response messages shown to end users.
const (
	msgRegistered         = common.MsgRegistered
	msgLoggedIn           = common.MsgLoggedIn
	msgMissingCredentials = common.MsgMissingCredentials
	msgUsernameTaken      = common.MsgUsernameTaken
	msgInvalidCredentials = common.MsgInvalidCredentials
	msgUserNotFound       = common.MsgUserNotFound
	msgServerError        = common.MsgServerError
	msgNoToken            = common.MsgNoToken
	msgBadToken           = common.MsgBadToken
	msgBadRequest         = "请求格式错误"

	msgEntryNotFound      = "密码条目不存在"
	msgEntryMissingFields = "标题、用户名和密码是必填的"
	msgEntryCreated       = "密码条目创建成功"
	msgEntryUpdated       = "密码条目更新成功"
	msgEntryDeleted       = "密码条目删除成功"

	msgRoot = "密码管理器 API 运行正常"

	maskedPassword = "******"
)
