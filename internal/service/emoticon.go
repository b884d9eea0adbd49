package service

import (
	"context"
	"errors"
	"fmt"

	"emoticon-rest-api/internal/cache"
	"emoticon-rest-api/internal/logging"
	"emoticon-rest-api/internal/model"
	"emoticon-rest-api/internal/upstream"
)

// EmoticonKeySuffix is appended to the username to form the cache key.
const EmoticonKeySuffix = "_emoticon"

// EmoticonContentType is the media type of every emoticon.
const EmoticonContentType = "image/png"

// EmoticonKey returns the cache key for username.
func EmoticonKey(username string) string {
	return username + EmoticonKeySuffix
}

// EmoticonService serves per-user emoticons, caching upstream results forever.
// It holds no mutable state; concurrent misses for one user each fetch and
// each write the cache.
type EmoticonService struct {
	store   cache.Store
	fetcher upstream.Fetcher
	log     logging.Logger
}

// NewEmoticonService creates a new emoticon service.
func NewEmoticonService(store cache.Store, fetcher upstream.Fetcher, log logging.Logger) *EmoticonService {
	return &EmoticonService{
		store:   store,
		fetcher: fetcher,
		log:     log.With("component", "emoticon_service"),
	}
}

// Retrieve returns the emoticon bytes for target on behalf of requester.
func (s *EmoticonService) Retrieve(ctx context.Context, requester model.Identity, target string) ([]byte, error) {
	if requester.Username != target {
		s.log.Info(ctx, "emoticon requested for another user",
			"username", requester.Username, "target", target)
		return nil, ErrForbidden
	}

	key := EmoticonKey(target)

	image, err := s.store.Get(ctx, key)
	if err == nil {
		s.log.Debug(ctx, "emoticon cache hit", "username", target, "size", len(image))
		return image, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		return nil, fmt.Errorf("read emoticon cache: %w", err)
	}

	image, err = s.fetcher.Fetch(ctx, target)
	if err != nil {
		var statusErr *upstream.StatusError
		switch {
		case errors.Is(err, upstream.ErrUnavailable):
			s.log.Warn(ctx, "emoticon service unreachable", "username", target, "error", err)
			return nil, ErrServiceUnavailable
		case errors.As(err, &statusErr):
			s.log.Warn(ctx, "emoticon service error", "username", target, "status", statusErr.StatusCode)
			return nil, ErrUpstreamFailed
		default:
			return nil, fmt.Errorf("fetch emoticon: %w", err)
		}
	}

	if err := s.store.Set(ctx, key, image); err != nil {
		return nil, fmt.Errorf("write emoticon cache: %w", err)
	}

	s.log.Info(ctx, "emoticon fetched and cached", "username", target, "size", len(image))
	return image, nil
}
