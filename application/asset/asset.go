package asset

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/muhammadheryan/mogadishu-rentals/cmd/config"
	"github.com/muhammadheryan/mogadishu-rentals/model"
	redisrepo "github.com/muhammadheryan/mogadishu-rentals/repository/redis"
	"github.com/muhammadheryan/mogadishu-rentals/utils/logger"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "asset:style:"

// AssetApp proxies front-end static files. Style sheets are served cache
// first; everything else goes straight to the upstream.
type AssetApp interface {
	Fetch(ctx context.Context, path string) *model.Asset
}

type assetAppImpl struct {
	config     *config.Config
	redisRepo  redisrepo.Repository
	httpClient *http.Client
}

func NewAssetApp(config *config.Config, redisRepo redisrepo.Repository, httpClient *http.Client) AssetApp {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Asset.Timeout}
	}
	return &assetAppImpl{
		config:     config,
		redisRepo:  redisRepo,
		httpClient: httpClient,
	}
}

func isStyle(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".css")
}

func gatewayTimeout() *model.Asset {
	return &model.Asset{Status: http.StatusGatewayTimeout, Body: []byte{}}
}

func (s *assetAppImpl) Fetch(ctx context.Context, path string) *model.Asset {
	path = "/" + strings.TrimLeft(path, "/")

	if !isStyle(path) {
		asset, err := s.fetchUpstream(ctx, path)
		if err != nil {
			logger.Warn("[Fetch] upstream failed", zap.String("path", path), zap.String("error", err.Error()))
			return gatewayTimeout()
		}
		return asset
	}

	key := cacheKeyPrefix + path
	if raw, err := s.redisRepo.Get(ctx, key); err == nil {
		var cached model.Asset
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			cached.Cached = true
			return &cached
		}
	}

	asset, err := s.fetchUpstream(ctx, path)
	if err != nil {
		logger.Warn("[Fetch] style sheet unavailable", zap.String("path", path), zap.String("error", err.Error()))
		return gatewayTimeout()
	}

	if asset.Status == http.StatusOK {
		if raw, err := json.Marshal(asset); err == nil {
			if err := s.redisRepo.SetWithTTL(ctx, key, string(raw), s.config.Asset.CacheTTL); err != nil {
				logger.Warn("[Fetch] err redisRepo.SetWithTTL", zap.String("error", err.Error()))
			}
		}
	}
	return asset
}

func (s *assetAppImpl) fetchUpstream(ctx context.Context, path string) (*model.Asset, error) {
	url := strings.TrimRight(s.config.Asset.UpstreamURL, "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &model.Asset{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
