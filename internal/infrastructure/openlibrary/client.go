// Package openlibrary 实现基于Open Library的图书元数据查询
//
// 设计说明:
// 1. 外呼链路做了三层保护：限流器（对公共API保持礼貌）、重试（容忍瞬时抖动）、
//    熔断器（连续失败后快速失败，不再拖慢写路径）
// 2. *http.Client由外部注入并与其他外呼组件共享，复用连接池
// 3. 所有失败最终归一为元数据不可用错误，由上层决定吞掉还是上报
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/xiebiao/bookcatalog/internal/domain/metadata"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

const (
	defaultBaseURL   = "https://openlibrary.org"
	defaultUserAgent = "bookcatalog/1.0"

	// maxCandidates 每次搜索最多取前几条结果
	maxCandidates = 3
	// maxAuthors 候选记录最多合并几个作者名
	maxAuthors = 3
	// maxSubjects 候选记录最多保留几个主题
	maxSubjects = 3
)

// Client Open Library搜索客户端
type Client struct {
	baseURL    string
	userAgent  string
	maxRetries int
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *circuitbreaker.CircuitBreaker
}

// NewClient 创建Open Library客户端
// httpClient由调用方注入；cfg中的零值字段取内置缺省
func NewClient(cfg config.MetadataConfig, httpClient *http.Client) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	rateLimit := cfg.RateLimit
	if rateLimit <= 0 {
		rateLimit = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: httpClient.Transport,
		},
		limiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
		breaker: circuitbreaker.NewCircuitBreaker("openlibrary", circuitbreaker.Config{
			Timeout: 60 * time.Second,
		}),
	}
}

// =========================================
// Open Library响应结构（只声明用到的字段）
// =========================================

type searchResponse struct {
	Docs []searchDoc `json:"docs"`
}

type searchDoc struct {
	Key        string   `json:"key"` // 作品路径，如 /works/OL45883W
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
	ISBN       []string `json:"isbn"`
	Subject    []string `json:"subject"`
	CoverID    int      `json:"cover_i"`
}

// workResponse 作品详情，description字段可能是字符串也可能是{type,value}对象
type workResponse struct {
	Description json.RawMessage `json:"description"`
}

// SearchBook 按书名+作者搜索候选元数据
// 无结果返回空切片+nil错误；外呼失败返回元数据不可用错误
func (c *Client) SearchBook(ctx context.Context, title, author string) ([]metadata.Candidate, error) {
	query := url.Values{}
	query.Set("title", title)
	query.Set("author", author)
	query.Set("limit", fmt.Sprintf("%d", maxCandidates))
	searchURL := fmt.Sprintf("%s/search.json?%s", c.baseURL, query.Encode())

	var resp searchResponse
	if err := c.getJSON(ctx, searchURL, &resp); err != nil {
		return nil, err
	}

	candidates := make([]metadata.Candidate, 0, maxCandidates)
	for i, doc := range resp.Docs {
		if i >= maxCandidates {
			break
		}
		candidates = append(candidates, c.docToCandidate(ctx, doc))
	}
	return candidates, nil
}

// docToCandidate 搜索结果转候选记录
// 描述需要额外一次作品详情外呼，失败时只丢弃描述，不影响其余字段
func (c *Client) docToCandidate(ctx context.Context, doc searchDoc) metadata.Candidate {
	candidate := metadata.Candidate{
		Title:   doc.Title,
		CoverID: doc.CoverID,
	}

	if len(doc.AuthorName) > 0 {
		authors := doc.AuthorName
		if len(authors) > maxAuthors {
			authors = authors[:maxAuthors]
		}
		candidate.Author = strings.Join(authors, ", ")
	}
	if len(doc.ISBN) > 0 {
		candidate.ISBN = doc.ISBN[0]
	}
	if len(doc.Subject) > 0 {
		subjects := doc.Subject
		if len(subjects) > maxSubjects {
			subjects = subjects[:maxSubjects]
		}
		candidate.Subjects = append([]string(nil), subjects...)
	}

	if doc.Key != "" {
		if desc, err := c.fetchDescription(ctx, doc.Key); err == nil {
			candidate.Description = desc
		}
	}

	return candidate
}

// fetchDescription 取作品详情中的描述
func (c *Client) fetchDescription(ctx context.Context, workKey string) (string, error) {
	workURL := fmt.Sprintf("%s%s.json", c.baseURL, workKey)

	var work workResponse
	if err := c.getJSON(ctx, workURL, &work); err != nil {
		return "", err
	}
	if len(work.Description) == 0 {
		return "", nil
	}

	// description可能是裸字符串或{"type":..., "value":...}对象
	var plain string
	if err := json.Unmarshal(work.Description, &plain); err == nil {
		return plain, nil
	}
	var typed struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(work.Description, &typed); err == nil {
		return typed.Value, nil
	}
	return "", nil
}

// getJSON 限流 + 熔断 + 重试的GET外呼
func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeMetadataUnavailable, err, "元数据限流等待被取消")
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return apperrors.WrapCode(apperrors.ErrCodeMetadataUnavailable, ctx.Err(), "元数据查询被取消")
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		err := c.breaker.Execute(func() error {
			return c.doGet(ctx, rawURL, out)
		})
		if err == nil {
			return nil
		}
		lastErr = err

		// 熔断器拒绝时重试没有意义，直接失败
		if err == circuitbreaker.ErrOpenState || err == circuitbreaker.ErrTooManyRequests {
			break
		}
	}

	return apperrors.WrapCode(apperrors.ErrCodeMetadataUnavailable, lastErr, "元数据服务不可用")
}

// doGet 单次GET请求
func (c *Client) doGet(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("open library返回状态码 %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
