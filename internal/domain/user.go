package domain

type User struct {
	ID             uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Email          string `json:"email" gorm:"size:255;not null;uniqueIndex"`
	HashedPassword string `json:"-" gorm:"size:255;not null"`
}
