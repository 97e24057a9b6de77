package repositories

import (
	"context"

	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"

	"gorm.io/gorm"
)

type LoadTestRepository interface {
	GetByID(ctx context.Context, id string) (*LoadTest, error)
	Create(ctx context.Context, loadTest *LoadTest) error
	Update(ctx context.Context, loadTest *LoadTest) error
	GetAll(ctx context.Context) ([]*LoadTest, error)
}

type loadTestRepository struct {
	db  database.DB
	log logger.Logger
}

func NewLoadTest(db database.DB) LoadTestRepository {
	return &loadTestRepository{
		db:  db,
		log: logger.New("loadTestRepository"),
	}
}

func (r *loadTestRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *loadTestRepository) GetByID(ctx context.Context, id string) (*LoadTest, error) {
	var loadTest LoadTest
	if err := r.getDB(ctx).First(&loadTest, "id = ?", id).Error; err != nil {
		return nil, r.log.Function("GetByID").Err("failed to get load test by id", err, "id", id)
	}

	return &loadTest, nil
}

func (r *loadTestRepository) Create(ctx context.Context, loadTest *LoadTest) error {
	if err := r.getDB(ctx).Create(loadTest).Error; err != nil {
		return r.log.Function("Create").Err("failed to create load test", err)
	}

	return nil
}

func (r *loadTestRepository) Update(ctx context.Context, loadTest *LoadTest) error {
	if err := r.getDB(ctx).Save(loadTest).Error; err != nil {
		return r.log.Function("Update").
			Err("failed to update load test", err, "id", loadTest.ID)
	}

	return nil
}

func (r *loadTestRepository) GetAll(ctx context.Context) ([]*LoadTest, error) {
	var loadTests []*LoadTest
	if err := r.getDB(ctx).Order("created_at DESC").Limit(10).Find(&loadTests).Error; err != nil {
		return nil, r.log.Function("GetAll").Err("failed to get all load tests", err)
	}

	return loadTests, nil
}
