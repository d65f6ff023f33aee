package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// JSONBinClient 外部单文档存储（JSONBin.io风格）
// 设计说明：
// 1. 整个集合序列化为一个JSON文档，挂在一个bin（key）之下
// 2. 读取=GET整个文档，写入=PUT整体替换，单次请求天然不会出现半写状态
// 3. 没有乐观锁，一致性由外部服务自身保证，最后写入者获胜
// 4. 复用进程级共享的HTTP客户端（连接池），不自己创建
type JSONBinClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// binDocument bin文档的外层结构：{"record": [ ...记录... ]}
type binDocument struct {
	Record []Record `json:"record"`
}

// NewJSONBinClient 创建外部单文档存储客户端
// httpClient由调用方注入：进程内所有外呼共享同一个连接池
func NewJSONBinClient(baseURL, apiKey string, httpClient *http.Client) *JSONBinClient {
	return &JSONBinClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// GetData 从外部存储加载集合
func (c *JSONBinClient) GetData(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, "构建存储请求失败")
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrCodeStorageUnavailable, err, "存储后端不可达")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// bin还不存在视为空集合
		return []Record{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.WrapCode(apperrors.ErrCodeStorageUnavailable,
			fmt.Errorf("unexpected status %d", resp.StatusCode), "存储后端返回异常状态")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrCodeStorageUnavailable, err, "读取存储响应失败")
	}

	var doc binDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrCodeStorageUnavailable, err, "解析存储文档失败")
	}

	if doc.Record == nil {
		return []Record{}, nil
	}

	log.Printf("[storage] loaded %d records from jsonbin", len(doc.Record))
	return doc.Record, nil
}

// SaveData 整体替换外部存储中的集合
func (c *JSONBinClient) SaveData(ctx context.Context, records []Record) error {
	payload, err := json.Marshal(binDocument{Record: records})
	if err != nil {
		return apperrors.Wrap(err, "序列化存储文档失败")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return apperrors.Wrap(err, "构建存储请求失败")
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeStorageUnavailable, err, "存储后端不可达")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.WrapCode(apperrors.ErrCodeStorageUnavailable,
			fmt.Errorf("unexpected status %d", resp.StatusCode), "存储后端返回异常状态")
	}

	log.Printf("[storage] saved %d records to jsonbin", len(records))
	return nil
}

func (c *JSONBinClient) setHeaders(req *http.Request) {
	req.Header.Set("X-Master-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
}
