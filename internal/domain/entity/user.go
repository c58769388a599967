package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu          UserState = "main_menu"          // В главном меню
	StateAwaitingThreshold UserState = "awaiting_threshold" // Ожидание нового порога оттенка
	StateProcessing        UserState = "processing"         // Обработка изображения
)

// User представляет пользователя бота
type User struct {
	ID           int64     // Telegram User ID
	ChatID       int64     // Telegram Chat ID
	State        UserState // Текущее состояние пользователя
	HueThreshold int       // Полуширина окна оттенка для этого пользователя
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64, hueThreshold int) *User {
	return &User{
		ID:           userID,
		ChatID:       chatID,
		State:        StateMainMenu,
		HueThreshold: hueThreshold,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// SetHueThreshold обновляет порог оттенка
func (u *User) SetHueThreshold(threshold int) {
	u.HueThreshold = threshold
}
