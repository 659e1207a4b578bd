package assistant

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Command is one interpreted entry in a user's history.
type Command struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index" json:"-"`
	Input     string    `json:"input"`
	Provider  string    `json:"provider"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"timestamp"`
}

// HistoryStore persists interpreted commands per user.
type HistoryStore interface {
	Record(ctx context.Context, cmd Command) error
	List(ctx context.Context, userID string, limit int) ([]Command, error)
}

type gormHistoryStore struct {
	db *gorm.DB
}

func NewHistoryStore(db *gorm.DB) (HistoryStore, error) {
	if err := db.AutoMigrate(&Command{}); err != nil {
		return nil, err
	}
	return &gormHistoryStore{db: db}, nil
}

func (s *gormHistoryStore) Record(ctx context.Context, cmd Command) error {
	return s.db.WithContext(ctx).Create(&cmd).Error
}

func (s *gormHistoryStore) List(ctx context.Context, userID string, limit int) ([]Command, error) {
	var commands []Command
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&commands).Error
	return commands, err
}

// memoryHistoryStore backs demo mode: bounded per-user slices seeded with a
// small example history so the panel is never empty.
type memoryHistoryStore struct {
	mu       sync.Mutex
	byUser   map[string][]Command
	capacity int
}

func NewMemoryHistoryStore() HistoryStore {
	return &memoryHistoryStore{
		byUser:   make(map[string][]Command),
		capacity: 100,
	}
}

func (s *memoryHistoryStore) Record(_ context.Context, cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := append(s.byUser[cmd.UserID], cmd)
	if len(list) > s.capacity {
		list = list[len(list)-s.capacity:]
	}
	s.byUser[cmd.UserID] = list
	return nil
}

func (s *memoryHistoryStore) List(_ context.Context, userID string, limit int) ([]Command, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byUser[userID]
	if len(list) == 0 {
		return seedHistory(userID), nil
	}

	// Newest first.
	out := make([]Command, 0, limit)
	for i := len(list) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, list[i])
	}
	return out, nil
}

func seedHistory(userID string) []Command {
	now := time.Now().UTC()
	return []Command{
		{
			ID:        uuid.New().String(),
			UserID:    userID,
			Input:     "Show me my running instances",
			Provider:  "aws",
			Action:    "list_resources",
			CreatedAt: now.Add(-1 * time.Hour),
		},
		{
			ID:        uuid.New().String(),
			UserID:    userID,
			Input:     "Create a new web server",
			Provider:  "aws",
			Action:    "create_instance",
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:        uuid.New().String(),
			UserID:    userID,
			Input:     "What is my current spending?",
			Provider:  "aws",
			Action:    "show_billing",
			CreatedAt: now.Add(-3 * time.Hour),
		},
	}
}
