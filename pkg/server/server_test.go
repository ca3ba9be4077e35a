package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer 并发安全的输出缓冲，Serve 在另一个 goroutine 中写入
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func get(t *testing.T, url string, header http.Header) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestGreet(t *testing.T) {
	ts := httptest.NewServer(New(Options{Stdout: io.Discard}).Handler())
	defer ts.Close()

	resp, body := get(t, ts.URL+"/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello, World! Welcome to AWS EKS Demo 🚀", body)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"),
		"unexpected content type %q", resp.Header.Get("Content-Type"))
}

func TestGreet_IgnoresQueryAndHeaders(t *testing.T) {
	ts := httptest.NewServer(New(Options{Stdout: io.Discard}).Handler())
	defer ts.Close()

	cases := []struct {
		name   string
		path   string
		header http.Header
	}{
		{"plain", "/", nil},
		{"query", "/?anything=1", nil},
		{"many query params", "/?a=1&b=2&b=3", nil},
		{"json accept", "/", http.Header{"Accept": {"application/json"}}},
		{"custom header", "/?x=y", http.Header{"X-Request-Id": {"abc"}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+c.path, c.header)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, Greeting, body)
		})
	}
}

func TestGreet_Idempotent(t *testing.T) {
	ts := httptest.NewServer(New(Options{Stdout: io.Discard}).Handler())
	defer ts.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Get(ts.URL + "/")
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, Greeting, string(body))
		}()
	}
	wg.Wait()
}

func TestUnmatchedRoutes(t *testing.T) {
	ts := httptest.NewServer(New(Options{Stdout: io.Discard}).Handler())
	defer ts.Close()

	resp, _ := get(t, ts.URL+"/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			req, err := http.NewRequest(method, ts.URL+"/", strings.NewReader("{}"))
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
			assert.NotEqual(t, Greeting, string(body))
		})
	}
}

func TestHead_AnswersLikeGet(t *testing.T) {
	ts := httptest.NewServer(New(Options{Stdout: io.Discard}).Handler())
	defer ts.Close()

	resp, err := http.Head(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))
	assert.Empty(t, body)

	resp, _ = get(t, ts.URL+"/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStart_ReachableAndPrintsStartupLine(t *testing.T) {
	out := &syncBuffer{}
	s := New(Options{Host: "127.0.0.1", Port: 0, Stdout: out})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	started := time.Now()
	go func() { errCh <- s.Start(ctx) }()

	var port int
	require.Eventually(t, func() bool {
		_, err := fmt.Sscanf(out.String(), "App running on port %d\n", &port)
		return err == nil
	}, time.Second, 5*time.Millisecond)

	resp, body := get(t, fmt.Sprintf("http://127.0.0.1:%d/", port), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, Greeting, body)
	assert.Less(t, time.Since(started), time.Second)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after context cancellation")
	}
}

func TestStart_BindFailure(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()
	port := taken.Addr().(*net.TCPAddr).Port

	out := &syncBuffer{}
	s := New(Options{Host: "127.0.0.1", Port: port, Stdout: out})

	err = s.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBind)
	assert.Empty(t, out.String(), "startup line must not be printed on bind failure")
}

func TestListen_SecondInstanceFails(t *testing.T) {
	first := New(Options{Host: "127.0.0.1", Port: 0, Stdout: io.Discard})
	l, err := first.Listen()
	require.NoError(t, err)
	defer l.Close()

	port := l.Addr().(*net.TCPAddr).Port
	second := New(Options{Host: "127.0.0.1", Port: port, Stdout: io.Discard})
	l2, err := second.Listen()
	if l2 != nil {
		l2.Close()
	}
	assert.ErrorIs(t, err, ErrBind)
}

func TestAddr(t *testing.T) {
	assert.Equal(t, ":3000", New(Options{Port: DefaultPort}).Addr())
	assert.Equal(t, "127.0.0.1:8080", New(Options{Host: "127.0.0.1", Port: 8080}).Addr())
}

func TestRoutes_ReturnsCopy(t *testing.T) {
	routes := Routes()
	require.Len(t, routes, 1)
	assert.Equal(t, http.MethodGet, routes[0].Method)
	assert.Equal(t, "/", routes[0].Path)

	routes[0].Path = "/changed"
	assert.Equal(t, "/", Routes()[0].Path)
}

func TestAccessLog(t *testing.T) {
	var logs syncBuffer
	logger := zerolog.New(&logs).Level(zerolog.DebugLevel)
	ts := httptest.NewServer(New(Options{Stdout: io.Discard, Logger: &logger}).Handler())
	defer ts.Close()

	_, _ = get(t, ts.URL+"/?q=1", nil)
	assert.Contains(t, logs.String(), `"uri":"/?q=1"`)
	assert.Contains(t, logs.String(), `"status":200`)
}
