package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DRSN-tech/production-admin/internal/cfg"
	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/internal/repository/redis/converter"
	"github.com/DRSN-tech/production-admin/pkg/clients"
	"github.com/DRSN-tech/production-admin/pkg/e"
	"github.com/DRSN-tech/production-admin/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// ViewStateRepo хранит активные фильтры сессий в Redis с TTL.
type ViewStateRepo struct {
	client *clients.RedisClient
	conv   converter.ViewStateConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewViewStateRepo(client *clients.RedisClient, conv converter.ViewStateConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *ViewStateRepo {
	return &ViewStateRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// Get читает состояние сессии и продлевает его TTL одним pipeline.
// Промах, битая запись или запись другой версии возвращаются как e.ErrSessionNotFound.
func (v *ViewStateRepo) Get(ctx context.Context, sessionID string) (*domain.ViewState, error) {
	key := viewStateKey(sessionID)

	pipeline := v.client.Client.Pipeline()
	get := pipeline.Get(ctx, key)
	pipeline.Expire(ctx, key, v.cfg.ViewStateTTL)

	if _, err := pipeline.Exec(ctx); err != nil && !errors.Is(err, r.Nil) {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	data, err := get.Bytes()
	if errors.Is(err, r.Nil) {
		return nil, e.ErrSessionNotFound
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := unmarshalViewState(data)
	if err != nil {
		v.logger.Warnf("Redis unmarshal failed, session_id=%s: %v", sessionID, e.Wrap(whereami.WhereAmI(), err))
		v.dropBroken(ctx, key)
		return nil, e.ErrSessionNotFound
	}

	if model.Version != converter.ViewStateVersion {
		v.logger.Warnf("View state version mismatch: session_id=%s, version=%d", sessionID, model.Version)
		v.dropBroken(ctx, key)
		return nil, e.ErrSessionNotFound
	}

	return v.conv.ToDomain(model), nil
}

// Save перезаписывает состояние сессии и выставляет TTL.
func (v *ViewStateRepo) Save(ctx context.Context, sessionID string, state *domain.ViewState) error {
	data, err := json.Marshal(v.conv.ToRedisModel(state))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := v.client.Client.Set(ctx, viewStateKey(sessionID), data, v.cfg.ViewStateTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (v *ViewStateRepo) Delete(ctx context.Context, sessionID string) error {
	if err := v.client.Client.Del(ctx, viewStateKey(sessionID)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (v *ViewStateRepo) dropBroken(ctx context.Context, key string) {
	if err := v.client.Client.Del(context.WithoutCancel(ctx), key).Err(); err != nil {
		v.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

func unmarshalViewState(data []byte) (*converter.ViewStateRedisModel, error) {
	var model converter.ViewStateRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}

	return &model, nil
}

// viewStateKey возвращает Redis-ключ состояния одной сессии
func viewStateKey(sessionID string) string {
	return fmt.Sprintf("view_state:%s", sessionID)
}
