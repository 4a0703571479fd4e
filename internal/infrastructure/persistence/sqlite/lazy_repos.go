package sqlite

import (
	"context"

	"github.com/bnema/cardver/internal/application/port"
	"github.com/bnema/cardver/internal/domain/entity"
)

// lazyCheckRunRepo opens the database on the first repository call.
type lazyCheckRunRepo struct {
	lazy *LazyDB
}

// NewLazyCheckRunRepository returns a CheckRunRepository backed by lazy.
func NewLazyCheckRunRepository(lazy *LazyDB) port.CheckRunRepository {
	return &lazyCheckRunRepo{lazy: lazy}
}

func (r *lazyCheckRunRepo) repo(ctx context.Context) (port.CheckRunRepository, error) {
	db, err := r.lazy.DB(ctx)
	if err != nil {
		return nil, err
	}
	return NewCheckRunRepository(db), nil
}

func (r *lazyCheckRunRepo) Save(ctx context.Context, run *entity.CheckRun) error {
	repo, err := r.repo(ctx)
	if err != nil {
		return err
	}
	return repo.Save(ctx, run)
}

func (r *lazyCheckRunRepo) GetRecent(ctx context.Context, limit int) ([]*entity.CheckRun, error) {
	repo, err := r.repo(ctx)
	if err != nil {
		return nil, err
	}
	return repo.GetRecent(ctx, limit)
}

func (r *lazyCheckRunRepo) FindByID(ctx context.Context, id string) (*entity.CheckRun, error) {
	repo, err := r.repo(ctx)
	if err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, id)
}
