package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"sauti/backend/internal/config"
	"sauti/backend/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

type Storage interface {
	CreateComplaint(complaint *models.Complaint) error
	SaveComplaint(complaint *models.Complaint) error
	GetComplaintByID(id string) (*models.Complaint, error)
	ListUnprocessedComplaints(limit int) ([]models.Complaint, error)
	ListComplaints(limit int) ([]models.Complaint, error)
	VerifyComplaint(id string) error

	SaveUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	AddAccountabilityPoints(userID string, points int) error

	DashboardStats() (*models.DashboardStats, error)
	CachedDashboardStats() (*models.DashboardStats, error)

	PublishComplaintEvent(event models.ComplaintEvent) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor. Redis may be nil (the admin CLI runs without
// it); cache and pub/sub calls degrade to no-ops then.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// CreateComplaint inserts a new complaint; the UUID is assigned by the
// BeforeCreate hook and never changes afterwards.
func (s *Service) CreateComplaint(complaint *models.Complaint) error {
	return s.DB.Create(complaint).Error
}

// SaveComplaint persists all pending mutations of an existing complaint in a
// single write.
func (s *Service) SaveComplaint(complaint *models.Complaint) error {
	return s.DB.Save(complaint).Error
}

func (s *Service) GetComplaintByID(id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.First(&complaint, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// ListUnprocessedComplaints returns at most limit complaints that still need
// AI processing, oldest first so the backlog drains in order.
func (s *Service) ListUnprocessedComplaints(limit int) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.Where("ai_processed = ?", false).
		Order("created_at asc").
		Limit(limit).
		Find(&complaints).Error
	return complaints, err
}

// ListComplaints returns at most limit complaints regardless of processing
// state, newest first.
func (s *Service) ListComplaints(limit int) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.Order("created_at desc").
		Limit(limit).
		Find(&complaints).Error
	return complaints, err
}

// VerifyComplaint marks a complaint as reviewed by an administrator.
func (s *Service) VerifyComplaint(id string) error {
	res := s.DB.Model(&models.Complaint{}).
		Where("id = ?", id).
		Update("is_verified", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AddAccountabilityPoints credits a citizen for a signed submission, creating
// the row on first contact.
func (s *Service) AddAccountabilityPoints(userID string, points int) error {
	user := models.User{ID: userID}
	if err := s.DB.FirstOrCreate(&user, models.User{ID: userID}).Error; err != nil {
		return err
	}
	return s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("accountability_points", gorm.Expr("accountability_points + ?", points)).Error
}

// DashboardStats aggregates the complaint table for the public dashboard.
func (s *Service) DashboardStats() (*models.DashboardStats, error) {
	stats := &models.DashboardStats{GeneratedAt: time.Now().UTC()}

	if err := s.DB.Model(&models.Complaint{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)
	if err := s.DB.Model(&models.Complaint{}).
		Where("created_at >= ?", startOfDay).
		Count(&stats.Today).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Complaint{}).
		Where("ai_processed = ?", false).
		Count(&stats.Unprocessed).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Complaint{}).
		Select("category as key, count(*) as count").
		Group("category").
		Order("count desc").
		Scan(&stats.ByCategory).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Complaint{}).
		Select("county as key, count(*) as count").
		Group("county").
		Order("count desc").
		Limit(config.TopCountiesLimit).
		Scan(&stats.ByCounty).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Complaint{}).
		Select("urgency as key, count(*) as count").
		Group("urgency").
		Order("count desc").
		Scan(&stats.ByUrgency).Error; err != nil {
		return nil, err
	}

	weekAgo := startOfDay.AddDate(0, 0, -7)
	if err := s.DB.Model(&models.Complaint{}).
		Select("to_char(created_at::date, 'YYYY-MM-DD') as date, count(*) as count").
		Where("created_at >= ?", weekAgo).
		Group("date").
		Order("date asc").
		Scan(&stats.Trend).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

const statsCacheKey = "stats:dashboard"

// CachedDashboardStats serves the dashboard snapshot from Redis when a fresh
// one exists, recomputing and re-caching it otherwise.
func (s *Service) CachedDashboardStats() (*models.DashboardStats, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(s.Ctx, statsCacheKey).Result()
		if err == nil {
			var stats models.DashboardStats
			if jsonErr := json.Unmarshal([]byte(cached), &stats); jsonErr == nil {
				return &stats, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			// Redis being down should not take the dashboard with it.
			return s.DashboardStats()
		}
	}

	stats, err := s.DashboardStats()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			s.Redis.Set(s.Ctx, statsCacheKey, payload, config.StatsCacheTTL)
		}
	}
	return stats, nil
}

// PublishComplaintEvent pushes a live-feed event to Redis Pub/Sub.
func (s *Service) PublishComplaintEvent(event models.ComplaintEvent) error {
	if s.Redis == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, config.LiveFeedChannel, payload).Err()
}

// SubscribeToFeed subscribes to the live-feed channel. Callers own the
// returned PubSub and must close it.
func (s *Service) SubscribeToFeed() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, config.LiveFeedChannel)
}
