package leavetype

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const optionsCacheKey = "leave_types:options"

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]LeaveTypeResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

// GetAll serves the catalog from redis when possible; cache misses are
// deduplicated with singleflight so a cold cache causes one query, not one
// per concurrent caller.
func (s *service) GetAll(ctx context.Context) ([]LeaveTypeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, optionsCacheKey).Result(); err == nil {
			var resp []LeaveTypeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(optionsCacheKey, func() (interface{}, error) {
		types, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]LeaveTypeResponse, len(types))
		for i, t := range types {
			resp[i] = LeaveTypeResponse{ID: t.ID, TypeName: t.TypeName}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, optionsCacheKey, jsonData, 1*time.Hour).Err(); err != nil {
					s.logger.Warn("cache leave types failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]LeaveTypeResponse), nil
}
