package model

import "time"

// Camp is a medical camp participants can register for. Camps have no
// owner; any admin may edit them.
type Camp struct {
	ID                     ID        `bson:"_id" json:"_id"`
	CampName               string    `bson:"campName" json:"campName"`
	CampFees               float64   `bson:"campFees" json:"campFees"`
	DateTime               string    `bson:"dateTime" json:"dateTime"`
	Location               string    `bson:"location" json:"location"`
	HealthcareProfessional string    `bson:"healthcareProfessional" json:"healthcareProfessional"`
	Description            string    `bson:"description" json:"description"`
	Image                  string    `bson:"image" json:"image"`
	CreatedAt              time.Time `bson:"createdAt" json:"createdAt"`
}

// CampUpdate lists the camp fields an update overwrites.
type CampUpdate struct {
	CampName               string  `json:"campName"`
	CampFees               float64 `json:"campFees"`
	DateTime               string  `json:"dateTime"`
	Location               string  `json:"location"`
	HealthcareProfessional string  `json:"healthcareProfessional"`
	Description            string  `json:"description"`
	Image                  string  `json:"image"`
}
