// Package client -----------------------------
// @file      : client.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/1/17 14:10
// -------------------------------------------
package client

import (
	"errors"
	"fmt"
	"net"
	"runtime/debug"
	"sync"
	"time"

	"resp-go/lib/logger"
	"resp-go/lib/sync/atomic"
	"resp-go/lib/sync/wait"
	"resp-go/resp/parser"
	"resp-go/resp/reply"
)

// Client is a pipelined RESP client. Requests are written in order by one
// goroutine and replies are matched to them in the same order by another.
type Client struct {
	mu          sync.RWMutex
	conn        net.Conn
	pendingReqs chan *request // wait to send
	waitingReqs chan *request // waiting response
	ticker      *time.Ticker
	addr        string
	closing     atomic.Boolean
	closeOnce   sync.Once
	done        chan struct{}
	working     *sync.WaitGroup // its counter presents unfinished requests(pending and waiting)
}

// request is a message sends to the server
type request struct {
	args      [][]byte
	reply     reply.Value
	heartbeat bool
	waiting   *wait.Wait
	err       error
}

const (
	chanSize       = 256
	maxWait        = 3 * time.Second
	heartbeatEvery = 10 * time.Second
	maxRetry       = 3
)

var errConnClosed = errors.New("connection closed")

// MakeClient creates a new client
func MakeClient(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{
		addr:        addr,
		conn:        conn,
		pendingReqs: make(chan *request, chanSize),
		waitingReqs: make(chan *request, chanSize),
		ticker:      time.NewTicker(heartbeatEvery),
		done:        make(chan struct{}),
		working:     &sync.WaitGroup{},
	}, nil
}

// Start starts asynchronous goroutines
func (client *Client) Start() {
	// 用于将请求从 pendingReqs 中取出并发送给服务器
	go client.handleWrite()
	// 从服务器读取响应并将其与相应的请求匹配
	go client.handleRead(client.getConn())
	// 每隔一段时间发送心跳包，确保连接的活跃状态
	go client.heartbeat()
}

// Close stops asynchronous goroutines and close connection.
// Requests already sent get their replies before the connection is closed.
// Calling Close more than once is safe.
func (client *Client) Close() {
	client.closeOnce.Do(func() {
		// stop new request
		client.closing.Set(true)
		client.ticker.Stop()

		// wait stop process
		client.working.Wait()
		// pendingReqs 不关闭，并发的 Send 看到 done 之后放弃入队
		close(client.done)

		// 关闭与服务端的连接，连接关闭后读协程会退出
		_ = client.getConn().Close()
	})
}

// Alive reports whether the client can still send requests.
func (client *Client) Alive() bool {
	return !client.closing.Get()
}

func (client *Client) getConn() net.Conn {
	client.mu.RLock()
	defer client.mu.RUnlock()
	return client.conn
}

// reconnect 连接断开时重连，最多重试三次，失败则关闭客户端
// 已经发出但还没收到回复的请求全部以失败结束
func (client *Client) reconnect() {
	logger.Info("reconnect with: " + client.addr)
	_ = client.getConn().Close()

	var conn net.Conn
	for i := 0; i < maxRetry; i++ {
		var err error
		conn, err = net.Dial("tcp", client.addr)
		if err == nil {
			break
		}
		logger.Error("reconnect error: " + err.Error())
		time.Sleep(time.Second)
	}

	client.mu.Lock()
	if conn != nil {
		client.conn = conn
	}
	// 旧连接上等待回复的请求不会再有回复了
	for drained := false; !drained; {
		select {
		case req := <-client.waitingReqs:
			req.err = errConnClosed
			req.waiting.Done()
		default:
			drained = true
		}
	}
	client.mu.Unlock()

	if conn == nil { // reach max retry, abort
		go client.Close()
		return
	}
	// restart handle read
	go client.handleRead(conn)
}

// ticker.Stop 不会关闭 ticker.C，退出只能靠 done
func (client *Client) heartbeat() {
	for {
		select {
		case <-client.ticker.C:
			client.doHeartbeat()
		case <-client.done:
			return
		}
	}
}

// 写协程入口
func (client *Client) handleWrite() {
	// 从 pendingReqs 通道中取出请求并将其发送给服务器
	for {
		select {
		case req := <-client.pendingReqs:
			client.doRequest(req)
		case <-client.done:
			return
		}
	}
}

// enqueue 把请求交给写协程，客户端已经关闭时返回 false
func (client *Client) enqueue(req *request) bool {
	select {
	case client.pendingReqs <- req:
		return true
	case <-client.done:
		return false
	}
}

// Send 用于发送请求并等待响应
// 超时或者连接失败时返回错误回复
func (client *Client) Send(args [][]byte) reply.Value {
	if client.closing.Get() {
		return reply.MakeErrReply("ERR client closed")
	}
	request := &request{
		args:      args,
		heartbeat: false,
		waiting:   &wait.Wait{},
	}
	request.waiting.Add(1)
	client.working.Add(1)
	defer client.working.Done()
	// 请求入队
	if !client.enqueue(request) {
		return reply.MakeErrReply("ERR client closed")
	}
	// 等待响应或者超时
	timeout := request.waiting.WaitWithTimeout(maxWait)
	if timeout {
		return reply.MakeErrReply("ERR server time out")
	}
	if request.err != nil {
		return reply.MakeErrReply("ERR request failed " + request.err.Error())
	}
	return request.reply
}

// 定时发送 PING，确保连接的稳定性
func (client *Client) doHeartbeat() {
	if client.closing.Get() {
		return
	}
	request := &request{
		args:      [][]byte{[]byte("PING")},
		heartbeat: true,
		waiting:   &wait.Wait{},
	}
	request.waiting.Add(1)
	client.working.Add(1)
	defer client.working.Done()
	if client.enqueue(request) {
		request.waiting.WaitWithTimeout(maxWait)
	}
}

// 发送请求
func (client *Client) doRequest(req *request) {
	if req == nil || len(req.args) == 0 {
		return
	}
	// 序列化请求
	bytes := reply.MakeMultiBulkReply(req.args).ToBytes()
	// 写入和入队在同一把锁下，保证顺序和回复一致
	client.mu.RLock()
	defer client.mu.RUnlock()
	var err error
	for i := 0; i < maxRetry; i++ {
		_, err = client.conn.Write(bytes)
		// 只重试超时
		var netErr net.Error
		if err == nil || !errors.As(err, &netErr) || !netErr.Timeout() {
			break
		}
	}
	if err == nil {
		// 发送成功等待服务器响应
		client.waitingReqs <- req
	} else {
		req.err = err
		req.waiting.Done()
	}
}

// 读协程是个 RESP 协议解析器
func (client *Client) handleRead(conn net.Conn) {
	ch := parser.ParseStream(conn)
	for payload := range ch {
		if payload.Err != nil {
			for range ch {
			}
			if client.closing.Get() {
				return
			}
			client.reconnect()
			return
		}
		// 匹配请求并完成
		client.finishRequest(payload.Data)
	}
}

// 将该响应与之前发送的请求进行匹配
func (client *Client) finishRequest(v reply.Value) {
	defer func() {
		if err := recover(); err != nil {
			logger.Error(fmt.Sprintf("%v\n%s", err, debug.Stack()))
		}
	}()
	// 请求写出之后才入队，回复可能先一步到达
	var request *request
	select {
	case request = <-client.waitingReqs:
	case <-time.After(maxWait):
		logger.Warn("unexpected reply: " + reply.DebugString(v))
		return
	}
	request.reply = v
	//  解除阻塞，表示该请求已处理完成
	if request.waiting != nil {
		request.waiting.Done()
	}
}
