package model

import "time"

// User represents a row in the `usuarios` table. The Admin flag drives
// every authorization decision in the writers; handlers always re-read
// it from storage instead of trusting anything supplied by the client.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Nombre       – display name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Admin        – whether the user is a club administrator.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           int       // usuarios.id
	Nombre       string    // usuarios.nombre
	Email        string    // usuarios.email
	PasswordHash string    // usuarios.password_hash
	Admin        bool      // usuarios.admin
	CreatedAt    time.Time // usuarios.created_at
}
