package activityrpc

import (
	"context"
	dailyfeed "dailyfeed/errors"
	"dailyfeed/models"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/valyala/fasthttp"
)

const ChannelName = "rpc"

// 每一类事件对应成员活动服务的一个接口
var categoryPaths = map[string]string{
	models.CategoryPost:        "/api/member-activities/posts",
	models.CategoryComment:     "/api/member-activities/comments",
	models.CategoryPostLike:    "/api/member-activities/posts/likes",
	models.CategoryCommentLike: "/api/member-activities/comments/likes",
}

type Options struct {
	BaseURL string
	Retry   int
	Timeout time.Duration
}

// Client 同步调用成员活动服务，是活动事件的 RPC 通道
type Client struct {
	opts   Options
	client *fasthttp.Client
}

var client *Client

func InitClient() {
	client = NewClient(Options{
		BaseURL: viper.GetString("activity.rpc.base_url"),
		Retry:   viper.GetInt("activity.rpc.retry"),
		Timeout: time.Duration(viper.GetInt64("activity.rpc.timeout")) * time.Second,
	})
}

func GetClient() *Client {
	return client
}

func NewClient(opts Options) *Client {
	if opts.Retry <= 0 {
		opts.Retry = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Client{
		opts: opts,
		client: &fasthttp.Client{
			Name:                "dailyfeed-content",
			MaxConnsPerHost:     64,
			ReadTimeout:         opts.Timeout,
			WriteTimeout:        opts.Timeout,
			MaxIdleConnDuration: time.Minute,
		},
	}
}

func (c *Client) Name() string {
	return ChannelName
}

// Deliver 失败时本地重试；对方返回 429 时立即返回 ErrTooManyRequests，不再重试
func (c *Client) Deliver(ctx context.Context, event *models.ActivityEvent, token string) error {
	path, ok := categoryPaths[event.Category()]
	if !ok {
		return errors.Errorf("activityrpc:Deliver: unknown category %s", event.Category())
	}
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "activityrpc:Deliver: Marshal")
	}

	for i := 0; i < c.opts.Retry; i++ {
		err = c.post(c.opts.BaseURL+path, body, token)
		if err == nil || errors.Is(err, dailyfeed.ErrTooManyRequests) {
			return err
		}
		if ctx.Err() != nil {
			break
		}
	}
	return errors.Wrap(err, "activityrpc:Deliver: post")
}

func (c *Client) post(url string, body []byte, token string) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if token != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
	}
	req.SetBody(body)

	if err := c.client.DoTimeout(req, resp, c.opts.Timeout); err != nil {
		return errors.Wrap(err, "activityrpc:post: DoTimeout")
	}

	switch status := resp.StatusCode(); {
	case status == fasthttp.StatusTooManyRequests:
		return dailyfeed.ErrTooManyRequests
	case status >= 200 && status < 300:
		return nil
	default:
		return errors.Errorf("activityrpc:post: unexpected status %d: %s", status, resp.Body())
	}
}
