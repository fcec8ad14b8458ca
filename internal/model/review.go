package model

import "time"

// Review is participant feedback. Reviews are create-only.
type Review struct {
	ID        ID        `bson:"_id" json:"_id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	CampID    ID        `bson:"campId,omitempty" json:"campId,omitempty"`
	Feedback  string    `bson:"feedback" json:"feedback"`
	Rating    int       `bson:"rating" json:"rating"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
