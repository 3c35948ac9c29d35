package entity

// AdminUser can edit capacity and manage bookings. Login requires both the
// password and a secondary secure key, each stored as a bcrypt hash.
type AdminUser struct {
	BaseSimple
	Email         string `db:"email"`
	PasswordHash  string `db:"password_hash"`
	SecureKeyHash string `db:"secure_key_hash"`
}
