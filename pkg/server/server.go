// Package server 实现问候服务：固定端口、单一路由、静态响应
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

const (
	// DefaultPort 是服务监听的固定端口
	DefaultPort = 3000
	// Greeting 是 GET / 返回的固定响应体
	Greeting = "Hello, World! Welcome to AWS EKS Demo 🚀"
)

// ErrBind 表示监听端口失败（端口被占用或权限不足）
var ErrBind = errors.New("bind failed")

// Options 服务启动参数，创建后不可修改
type Options struct {
	Host   string          // 监听地址，空字符串表示所有地址
	Port   int             // 监听端口，0 表示由系统分配
	Stdout io.Writer       // 启动信息的输出位置，默认 os.Stdout
	Logger *zerolog.Logger // 访问日志，nil 时不输出
}

// Server 包装 echo 路由和底层 http.Server
type Server struct {
	opts   Options
	echo   *echo.Echo
	logger zerolog.Logger
}

// New 根据 Options 创建服务并一次性注册静态路由表
func New(opts Options) *Server {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("component", "server").Logger()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(accessLog(logger))

	for _, r := range routeTable {
		e.Add(r.Method, r.Path, r.Handler)
		// GET 路由同时响应 HEAD，响应体由 net/http 丢弃
		if r.Method == http.MethodGet {
			e.Add(http.MethodHead, r.Path, r.Handler)
		}
	}

	return &Server{
		opts:   opts,
		echo:   e,
		logger: logger,
	}
}

// Addr 返回 host:port 形式的监听地址
func (s *Server) Addr() string {
	return net.JoinHostPort(s.opts.Host, strconv.Itoa(s.opts.Port))
}

// Handler 返回路由处理器，便于在 httptest 中使用
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Listen 绑定 TCP 监听，失败时返回包装了 ErrBind 的错误
func (s *Server) Listen() (net.Listener, error) {
	l, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBind, s.Addr(), err)
	}
	return l, nil
}

// Start 绑定端口、输出启动信息并开始处理请求
//
// 端口绑定失败时不会输出启动信息。ctx 被取消时直接关闭监听，不做连接排空。
func (s *Server) Start(ctx context.Context) error {
	l, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Serve 在已绑定的监听上处理请求，直到监听出错或 ctx 被取消
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.echo,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := context.AfterFunc(ctx, func() {
		_ = srv.Close()
	})
	defer stop()

	if _, err := fmt.Fprintf(s.opts.Stdout, "App running on port %d\n", listenerPort(l)); err != nil {
		s.logger.Warn().Err(err).Msg("failed to write startup message")
	}
	s.logger.Info().Str("addr", l.Addr().String()).Msg("server listening")

	err := srv.Serve(l)
	if errors.Is(err, http.ErrServerClosed) && ctx.Err() != nil {
		return nil
	}
	return fmt.Errorf("serve %s: %w", l.Addr(), err)
}

// listenerPort 返回实际绑定的端口（Port 为 0 时由系统分配）
func listenerPort(l net.Listener) int {
	if addr, ok := l.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

// accessLog 以 debug 级别记录每个请求
func accessLog(logger zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
