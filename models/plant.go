package models

import "time"

// Plant represents a plant in a user's collection.
type Plant struct {
	ID              string    `bson:"id" json:"id"`
	UserID          string    `bson:"userId" json:"userId"`
	Name            string    `bson:"name" json:"name"`
	Species         string    `bson:"species,omitempty" json:"species,omitempty"`
	ScientificName  string    `bson:"scientificName,omitempty" json:"scientificName,omitempty"`
	Location        string    `bson:"location,omitempty" json:"location,omitempty"`
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	WateringDays    int       `bson:"wateringDays,omitempty" json:"wateringDays,omitempty"`
	SunlightNeeds   string    `bson:"sunlightNeeds,omitempty" json:"sunlightNeeds,omitempty"`
	AcquiredAt      time.Time `bson:"acquiredAt,omitempty" json:"acquiredAt,omitempty"`
	LastWateredDate time.Time `bson:"lastWateredDate,omitempty" json:"lastWateredDate,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PlantUpdateRequest carries the editable fields of a plant. Pointer fields
// distinguish "not provided" from an explicit zero value.
type PlantUpdateRequest struct {
	Name          *string `json:"name,omitempty"`
	Species       *string `json:"species,omitempty"`
	Location      *string `json:"location,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	WateringDays  *int    `json:"wateringDays,omitempty"`
	SunlightNeeds *string `json:"sunlightNeeds,omitempty"`
}

// PlantDiagnosis is the result of a disease-diagnosis request.
type PlantDiagnosis struct {
	PlantID     string    `json:"plantId"`
	Condition   string    `json:"condition"`
	Details     string    `json:"details"`
	GeneratedAt time.Time `json:"generatedAt"`
}
