package models

// Client is a reusable named profile used to pre-fill the client section
// of a new starter. Name matching is exact and case-sensitive.
type Client struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"uniqueIndex;not null" json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

func (Client) TableName() string { return "clients" }
