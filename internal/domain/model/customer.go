package model

import "time"

// 注文者情報
// 会員機能は無いので注文のたびに作成する。
type Customer struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(30);not null" json:"phone"`
	Email     *string   `gorm:"type:varchar(255)" json:"email"`
	Address   string    `gorm:"type:varchar(500);not null" json:"address"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
