package common

// Messages shown to end users. The HTTP and gRPC surfaces both report
// authentication outcomes with these strings.
const (
	MsgRegistered         = "注册成功"
	MsgLoggedIn           = "登录成功"
	MsgMissingCredentials = "用户名和密码都是必填的"
	MsgUsernameTaken      = "该用户名已被使用"
	MsgInvalidCredentials = "用户名或密码不正确"
	MsgUserNotFound       = "用户不存在"
	MsgServerError        = "服务器错误"
	MsgNoToken            = "未提供认证令牌"
	MsgBadToken           = "令牌无效或已过期"
)
