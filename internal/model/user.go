package model

import "time"

// RoleAdmin is the only role the platform distinguishes. Users without a
// role are ordinary participants.
const RoleAdmin = "admin"

// User represents a platform account as stored in the `users` collection
// (or table). Email is the identity; ID is the surrogate key used by the
// admin endpoints.
//
// Fields:
//
//	ID          – surrogate key.
//	Name        – display name.
//	Email       – unique, case-sensitive as stored.
//	PhoneNumber – optional phone number.
//	Contact     – optional free-form contact info.
//	Image       – avatar URL.
//	Role        – "" for participants, "admin" for administrators.
//	CreatedAt   – when the record was first inserted.
type User struct {
	ID          ID        `bson:"_id" json:"_id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	PhoneNumber string    `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Contact     string    `bson:"contact,omitempty" json:"contact,omitempty"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	Role        string    `bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// ProfileUpdate is the fixed whitelist of user fields a profile edit may
// overwrite. Role is intentionally absent.
type ProfileUpdate struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Contact     string `json:"contact"`
	Image       string `json:"image"`
}
