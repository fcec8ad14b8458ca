package model

import "time"

// Registration is a pending cart entry: a participant's intent to attend a
// camp that has not been paid for yet. Once a payment settles it, the row
// is removed.
//
// Fields:
//
//	ID                     – surrogate key, referenced by Payment.CartIDs.
//	Email                  – participant email.
//	ParticipantName        – participant display name.
//	CampID                 – camp being registered for (weak reference).
//	CampName               – camp name at registration time.
//	CampFees               – fee snapshot at registration time.
//	Location               – camp location snapshot.
//	HealthcareProfessional – camp professional snapshot.
//	CreatedAt              – insertion timestamp.
type Registration struct {
	ID                     ID        `bson:"_id" json:"_id"`
	Email                  string    `bson:"email" json:"email"`
	ParticipantName        string    `bson:"participantName" json:"participantName"`
	CampID                 ID        `bson:"campId" json:"campId"`
	CampName               string    `bson:"campName" json:"campName"`
	CampFees               float64   `bson:"campFees" json:"campFees"`
	Location               string    `bson:"location,omitempty" json:"location,omitempty"`
	HealthcareProfessional string    `bson:"healthcareProfessional,omitempty" json:"healthcareProfessional,omitempty"`
	CreatedAt              time.Time `bson:"createdAt" json:"createdAt"`
}
