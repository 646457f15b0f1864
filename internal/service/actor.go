package service

// Actor 操作者上下文，写入活动日志；未登录场景退化为 system
type Actor struct {
	ID        string
	IP        string
	UserAgent string
}

// SystemActor 后台任务 / 导入等无请求上下文时的默认操作者
func SystemActor() Actor {
	return Actor{ID: "system"}
}

func (a Actor) causerID() string {
	if a.ID == "" {
		return "system"
	}
	return a.ID
}
