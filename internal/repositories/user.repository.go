package repositories

import (
	"context"
	"time"

	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"

	"gorm.io/gorm"
)

const USER_CACHE_EXPIRY = 1 * time.Hour

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *User) error
	GetRandomProviderByHospital(ctx context.Context, hospitalName string) (*User, error)
	GetProviderByID(ctx context.Context, id string) (*User, error)
	GetProviderByEmail(ctx context.Context, email string) (*User, error)
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUser(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*User, error) {
	log := r.log.Function("GetByID")

	var user User
	found, err := database.NewCacheBuilder(r.db.Cache.User, id).WithContext(ctx).Get(&user)
	if err != nil {
		log.Warn("failed to read user from cache", "userID", id, "error", err)
	}
	if found {
		return &user, nil
	}

	if err := r.getDB(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get user by id", err, "id", id)
	}

	r.addUserToCache(ctx, &user)

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := r.getDB(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, r.log.Function("GetByEmail").
			Err("failed to get user by email", err, "email", email)
	}

	return &user, nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.getDB(ctx).Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, r.log.Function("EmailExists").
			Err("failed to count users by email", err, "email", email)
	}

	return count > 0, nil
}

func (r *userRepository) Create(ctx context.Context, user *User) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(user).Error; err != nil {
		return log.Err("failed to create user", err, "email", user.Email)
	}

	r.addUserToCache(ctx, user)

	return nil
}

// GetRandomProviderByHospital picks one provider at the hospital for the
// automatic patient assignment done at signup.
func (r *userRepository) GetRandomProviderByHospital(ctx context.Context, hospitalName string) (*User, error) {
	var provider User
	err := r.getDB(ctx).
		Where("hospital_name = ? AND is_provider = ?", hospitalName, true).
		Order("RANDOM()").
		First(&provider).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, r.log.Function("GetRandomProviderByHospital").
			Err("failed to pick provider", err, "hospital", hospitalName)
	}

	return &provider, nil
}

func (r *userRepository) GetProviderByID(ctx context.Context, id string) (*User, error) {
	var provider User
	err := r.getDB(ctx).First(&provider, "id = ? AND is_provider = ?", id, true).Error
	if err != nil {
		return nil, r.log.Function("GetProviderByID").
			Err("failed to get provider by id", err, "id", id)
	}

	return &provider, nil
}

func (r *userRepository) GetProviderByEmail(ctx context.Context, email string) (*User, error) {
	var provider User
	err := r.getDB(ctx).First(&provider, "email = ? AND is_provider = ?", email, true).Error
	if err != nil {
		return nil, r.log.Function("GetProviderByEmail").
			Err("failed to get provider by email", err, "email", email)
	}

	return &provider, nil
}

func (r *userRepository) addUserToCache(ctx context.Context, user *User) {
	if err := database.NewCacheBuilder(r.db.Cache.User, user.ID).
		WithStruct(user).
		WithTTL(USER_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		r.log.Function("addUserToCache").
			Warn("failed to add user to cache", "userID", user.ID, "error", err)
	}
}
