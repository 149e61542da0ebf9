package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"library-api/internal/domains/book/model"
	"library-api/pkg/cache"
)

// cachedRepository caches GetByID. Writes drop the book and the cached
// authors whose book lists changed.
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

func (r *cachedRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	key := cache.BookKey(id)

	var b model.Book
	found, err := r.cache.Get(ctx, key, &b)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[CACHE] Get failed")
	}
	if err == nil && found {
		return &b, nil
	}

	book, err := r.RepositoryInterface.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, book, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[CACHE] Set failed")
	}
	return book, nil
}

func (r *cachedRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	created, err := r.RepositoryInterface.Create(ctx, b)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, cache.AuthorKey(created.AuthorID))
	return created, nil
}

func (r *cachedRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	keys := []string{cache.BookKey(b.ID), cache.AuthorKey(b.AuthorID)}
	if old, err := r.RepositoryInterface.GetByID(ctx, b.ID); err == nil && old.AuthorID != b.AuthorID {
		keys = append(keys, cache.AuthorKey(old.AuthorID))
	}

	updated, err := r.RepositoryInterface.Update(ctx, b)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, keys...)
	return updated, nil
}

func (r *cachedRepository) Delete(ctx context.Context, id int64) error {
	keys := []string{cache.BookKey(id)}
	if old, err := r.RepositoryInterface.GetByID(ctx, id); err == nil {
		keys = append(keys, cache.AuthorKey(old.AuthorID))
	}

	if err := r.RepositoryInterface.Delete(ctx, id); err != nil {
		return err
	}

	r.invalidate(ctx, keys...)
	return nil
}

func (r *cachedRepository) invalidate(ctx context.Context, keys ...string) {
	err := cache.Invalidate(ctx, r.delay, func(ctx context.Context) error {
		return r.cache.Delete(ctx, keys...)
	})
	if err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("[CACHE] Invalidate failed")
	}
}
