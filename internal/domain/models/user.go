package models

import "time"

// Profile holds the editable household details attached to a user account.
type Profile struct {
	FullName      string `bson:"full_name" json:"full_name"`
	City          string `bson:"city" json:"city"`
	Area          string `bson:"area" json:"area"`
	Age           int    `bson:"age" json:"age"`
	Phone         string `bson:"phone" json:"phone"`
	Occupation    string `bson:"occupation" json:"occupation"`
	HouseholdSize int    `bson:"household_size" json:"household_size"`
}

// User is an account document. PasswordHash is a bcrypt digest and never
// leaves the repository/auth layer.
type User struct {
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password" json:"-"`
	Profile      Profile   `bson:"profile" json:"profile"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// LoginEvent records one successful authentication.
type LoginEvent struct {
	Username  string    `bson:"username" json:"username"`
	LoginTime time.Time `bson:"login_time" json:"login_time"`
	LoginDate string    `bson:"login_date" json:"login_date"`
	SessionID string    `bson:"session_id" json:"session_id"`
	IPAddress string    `bson:"ip_address" json:"ip_address"`
	UserAgent string    `bson:"user_agent" json:"user_agent"`
}
