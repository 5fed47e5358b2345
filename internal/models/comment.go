package models

import "time"

// VacancyComment is one node of a discussion thread under a vacancy.
// Replies reference their parent by id; the tree itself is assembled at
// serialization time from a parent -> children index.
type VacancyComment struct {
	ID    uint       `gorm:"column:id;primaryKey" json:"id"`
	JobID uint       `gorm:"column:job_id;index" json:"job_id"`
	Job   JobVacancy `gorm:"foreignKey:JobID" json:"-"`

	UserID uint `gorm:"column:user_id;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Text     string `gorm:"column:text;type:text" json:"text"`
	ParentID *uint  `gorm:"column:parent_id;index" json:"parent"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (VacancyComment) TableName() string { return "vacancy_comments" }
