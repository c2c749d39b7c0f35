package repositories

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rohits-web03/goalai/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ConnectDatabase opens the Postgres database behind dsn and migrates the schema.
func ConnectDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	// Run migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Onboarding{},
		&models.Profile{},
		&models.ChatMessage{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

// NewGormStore returns a Store backed by db.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:      &gormUsers{db: db},
		Sessions:   &gormSessions{db: db},
		Onboarding: &gormOnboarding{db: db},
		Profiles:   &gormProfiles{db: db},
		Chats:      &gormChats{db: db},
	}
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

type gormUsers struct {
	db *gorm.DB
}

func (r *gormUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	row := *u
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

func (r *gormUsers) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *gormUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *gormUsers) UpdateName(ctx context.Context, id int64, name string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormUsers) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

type gormSessions struct {
	db *gorm.DB
}

func (r *gormSessions) Create(ctx context.Context, s *models.Session) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *gormSessions) Find(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *gormSessions) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Session{}).Error
}

func (r *gormSessions) DeleteByUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Session{}).Error
}

type gormOnboarding struct {
	db *gorm.DB
}

func (r *gormOnboarding) Merge(ctx context.Context, userID int64, fields models.Fields, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// FOR UPDATE only locks existing rows, so make sure there is one.
		seed := models.Onboarding{UserID: userID, Fields: models.Fields{}, UpdatedAt: at}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}
		var row models.Onboarding
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&row).Error
		if err != nil {
			return err
		}
		row.UserID = userID
		row.Fields = row.Fields.Merge(fields)
		row.Completed = true
		row.UpdatedAt = at
		return tx.Save(&row).Error
	})
}

func (r *gormOnboarding) Find(ctx context.Context, userID int64) (*models.Onboarding, error) {
	var row models.Onboarding
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

type gormProfiles struct {
	db *gorm.DB
}

func (r *gormProfiles) Merge(ctx context.Context, userID int64, fields models.Fields, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := models.Profile{UserID: userID, Fields: models.Fields{}, UpdatedAt: at}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}
		var row models.Profile
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&row).Error
		if err != nil {
			return err
		}
		row.UserID = userID
		row.Fields = row.Fields.Merge(fields)
		row.UpdatedAt = at
		return tx.Save(&row).Error
	})
}

func (r *gormProfiles) Find(ctx context.Context, userID int64) (*models.Profile, error) {
	var row models.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

type gormChats struct {
	db *gorm.DB
}

func (r *gormChats) Append(ctx context.Context, msg *models.ChatMessage) error {
	msg.ID = 0
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *gormChats) List(ctx context.Context, userID int64) ([]models.ChatMessage, error) {
	rows := []models.ChatMessage{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *gormChats) TrimOldest(ctx context.Context, userID int64, keep int) ([]models.ChatMessage, error) {
	if keep < 0 {
		return nil, nil
	}
	var dropped []models.ChatMessage
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Newest first, skip the ones we keep.
		err := tx.Where("user_id = ?", userID).
			Order("id DESC").
			Offset(keep).
			Find(&dropped).Error
		if err != nil || len(dropped) == 0 {
			return err
		}
		ids := make([]int64, len(dropped))
		for i, m := range dropped {
			ids[i] = m.ID
		}
		return tx.Where("id IN ?", ids).Delete(&models.ChatMessage{}).Error
	})
	if err != nil {
		return nil, err
	}
	// Back to insertion order.
	slices.Reverse(dropped)
	return dropped, nil
}

func (r *gormChats) DeleteByIDs(ctx context.Context, userID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&models.ChatMessage{}).Error
}
