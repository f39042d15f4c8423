package core

import "time"

type Employee struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
}

type AppraisalType struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Ranges []AppraisalRange `json:"ranges,omitempty"`
}

type AppraisalRange struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
