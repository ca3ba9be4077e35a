package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Route 将 (方法, 路径) 映射到处理函数
type Route struct {
	Method      string
	Path        string
	Description string
	Handler     echo.HandlerFunc
}

// routeTable 静态分发表，在 New 中注册一次
var routeTable = []Route{
	{
		Method:      http.MethodGet,
		Path:        "/",
		Description: "returns the static greeting",
		Handler:     greet,
	},
}

// Routes returns a copy of the route table served by every Server.
func Routes() []Route {
	out := make([]Route, len(routeTable))
	copy(out, routeTable)
	return out
}

// greet 忽略请求参数，始终返回固定问候语
func greet(c echo.Context) error {
	return c.String(http.StatusOK, Greeting)
}
