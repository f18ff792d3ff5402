package domain

import "time"

// Account is an administrator login. The site runs with a single account but
// nothing below the admin surface assumes that.
type Account struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"size:80;uniqueIndex;not null"`
	// Password holds the bcrypt hash, never the plaintext.
	Password  string `gorm:"size:200;not null"`
	CreatedAt time.Time
}
