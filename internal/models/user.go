package models

// Роли пользователей. Администратор управляет каталогом услуг и
// пользователями, диспетчер работает с заявками.
const (
	RoleAdmin      = "admin"
	RoleDispatcher = "dispatcher"
)

// User пользователь системы.
type User struct {
	UID          string // Уникальный идентификатор (uuid)
	Username     string
	Email        string
	PasswordHash string
	Role         string
}

// DummyRegisterUser используется для приёма данных регистрации из JSON-запроса.
type DummyRegisterUser struct {
	Username string `json:"username" validate:"required,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// DummyLoginUser используется для приёма данных входа из JSON-запроса.
type DummyLoginUser struct {
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required"`
}
