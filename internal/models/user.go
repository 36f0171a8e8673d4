package models

// User is an admin account for the management panel.
type User struct {
	Base         `bson:",inline"`
	Email        string `bson:"email" json:"email"`
	Name         string `bson:"name,omitempty" json:"name,omitempty"`
	PasswordHash string `bson:"password_hash" json:"-"`
}
