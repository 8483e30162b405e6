package users

import "time"

type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

type User struct {
	ID         int64
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	Phone      string
	Role       Role
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Telegram struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// DisplayName имя для приветствия и заявки ("Имя Фамилия", иначе @username).
func (u User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" && u.Username != "" {
		return "@" + u.Username
	}
	return name
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
