package handler

import (
	"github.com/gin-gonic/gin"

	"fieldoffice-hris/internal/service"
)

// ActorFrom 从请求上下文提取审计操作者。
// 系统不做账号体系（外部网关负责），操作者标识由 X-Actor-ID 头移交；
// 缺失时退化为 system。
func ActorFrom(c *gin.Context) service.Actor {
	return service.Actor{
		ID:        c.GetHeader("X-Actor-ID"),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
