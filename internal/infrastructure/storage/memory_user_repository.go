package storage

import (
	"context"
	"sync"

	"pip-counter/internal/domain/entity"
	"pip-counter/internal/domain/port"
)

// MemoryUserRepository in-memory хранилище пользователей
type MemoryUserRepository struct {
	mu               sync.RWMutex
	users            map[int64]*entity.User
	defaultThreshold int
}

// NewMemoryUserRepository создаёт новое in-memory хранилище.
// Новые пользователи получают порог оттенка defaultThreshold.
func NewMemoryUserRepository(defaultThreshold int) *MemoryUserRepository {
	return &MemoryUserRepository{
		users:            make(map[int64]*entity.User),
		defaultThreshold: defaultThreshold,
	}
}

// Get возвращает пользователя по ID, создаёт нового если не найден
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, exists := r.users[userID]; exists {
		// Отдаём копию, чтобы вызывающий не менял состояние мимо Save
		u := *user
		return &u, nil
	}

	newUser := entity.NewUser(userID, chatID, r.defaultThreshold)
	r.users[userID] = newUser

	u := *newUser
	return &u, nil
}

// Save сохраняет состояние пользователя
func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	u := *user

	r.mu.Lock()
	r.users[user.ID] = &u
	r.mu.Unlock()

	return nil
}

// UpdateState обновляет состояние пользователя
func (r *MemoryUserRepository) UpdateState(ctx context.Context, userID int64, state entity.UserState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, exists := r.users[userID]; exists {
		user.SetState(state)
	}

	return nil
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*MemoryUserRepository)(nil)
