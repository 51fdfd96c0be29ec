package db

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           uint        `gorm:"primaryKey"`
	Email        string      `gorm:"size:254;uniqueIndex;not null"`
	PasswordHash string      `gorm:"size:72;not null"`
	Role         string      `gorm:"size:16;not null;default:user"`
	CreatedAt    time.Time   `gorm:"not null"`
	UpdatedAt    time.Time   `gorm:"not null"`
	Games        []Game      `gorm:"foreignKey:OwnerID"`
	Entries      []RankEntry `gorm:"foreignKey:OwnerID"`
}

type Game struct {
	ID        uint        `gorm:"primaryKey"`
	Name      string      `gorm:"size:128;uniqueIndex;not null"`
	OwnerID   uint        `gorm:"index;not null"`
	Owner     *User       `gorm:"foreignKey:OwnerID"`
	CreatedAt time.Time   `gorm:"not null"`
	UpdatedAt time.Time   `gorm:"not null"`
	Entries   []RankEntry `gorm:"foreignKey:GameID"`
}

type RankEntry struct {
	ID          uint      `gorm:"primaryKey"`
	Rank        int       `gorm:"not null"`
	Date        time.Time `gorm:"index;not null"`
	Description string    `gorm:"size:512"`
	OwnerID     uint      `gorm:"index;not null"`
	Owner       *User     `gorm:"foreignKey:OwnerID"`
	GameID      uint      `gorm:"index;not null"`
	Game        *Game     `gorm:"foreignKey:GameID"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

type Session struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    uint      `gorm:"index"`
	Flash     string    `gorm:"size:256"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Event struct {
	ID        uint           `gorm:"primaryKey"`
	UserID    uint           `gorm:"index;not null"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
