package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"library-api/internal/domains/author/model"
	"library-api/pkg/cache"
)

// cachedRepository is a read-through cache in front of another
// RepositoryInterface. Only GetByID is cached; cache failures are logged and
// the call falls through to the wrapped repository.
type cachedRepository struct {
	RepositoryInterface
	cache cache.Cache
	ttl   time.Duration
	delay time.Duration
}

func NewCachedRepository(next RepositoryInterface, c cache.Cache, ttl time.Duration) RepositoryInterface {
	return &cachedRepository{
		RepositoryInterface: next,
		cache:               c,
		ttl:                 ttl,
		delay:               cache.InvalidationDelay,
	}
}

func (r *cachedRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	key := cache.AuthorKey(id)

	var a model.Author
	found, err := r.cache.Get(ctx, key, &a)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[CACHE] Get failed")
	}
	if err == nil && found {
		return &a, nil
	}

	author, err := r.RepositoryInterface.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, author, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[CACHE] Set failed")
	}

	return author, nil
}

// Update drops the author and every cached book, since books embed the
// author's name.
func (r *cachedRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	updated, err := r.RepositoryInterface.Update(ctx, a)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, a.ID, true)

	return updated, nil
}

func (r *cachedRepository) Delete(ctx context.Context, id int64) error {
	if err := r.RepositoryInterface.Delete(ctx, id); err != nil {
		return err
	}

	r.invalidate(ctx, id, false)
	return nil
}

func (r *cachedRepository) invalidate(ctx context.Context, id int64, books bool) {
	err := cache.Invalidate(ctx, r.delay, func(ctx context.Context) error {
		err := r.cache.Delete(ctx, cache.AuthorKey(id))
		if books {
			err = errors.Join(err, r.cache.DeletePattern(ctx, cache.BookPattern))
		}
		return err
	})
	if err != nil {
		log.Warn().Err(err).Int64("author_id", id).Msg("[CACHE] Invalidate failed")
	}
}
