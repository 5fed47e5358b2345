package models

import "time"

type JobType string

const (
	JobFullTime JobType = "FULL_TIME"
	JobPartTime JobType = "PART_TIME"
	JobRemote   JobType = "REMOTE"
	JobOnSite   JobType = "ON_SITE"
	JobHybrid   JobType = "HYBRID"
	JobContract JobType = "CONTRACT"
)

func (t JobType) Valid() bool {
	switch t {
	case JobFullTime, JobPartTime, JobRemote, JobOnSite, JobHybrid, JobContract:
		return true
	}
	return false
}

type JobVacancy struct {
	ID     uint        `gorm:"column:id;primaryKey" json:"id"`
	ShopID uint        `gorm:"column:shop_id;index" json:"shop_id"`
	Shop   ShopProfile `gorm:"foreignKey:ShopID" json:"-"`

	Title              string  `gorm:"column:title;type:text" json:"title"`
	JobType            JobType `gorm:"column:job_type;type:text;default:FULL_TIME" json:"job_type"`
	Description        string  `gorm:"column:description;type:text" json:"description"`
	SkillsRequired     string  `gorm:"column:skills_required;type:text" json:"skills_required"`
	ExperienceRequired string  `gorm:"column:experience_required;type:text" json:"experience_required"`
	EducationRequired  string  `gorm:"column:education_required;type:text" json:"education_required"`
	SalaryRange        *string `gorm:"column:salary_range;type:text" json:"salary_range"`

	// object path on the media backend
	Image string `gorm:"column:image;type:text" json:"-"`

	IsActive bool `gorm:"column:is_active;default:true" json:"is_active"`

	// incremented by 1 on every single-record retrieval
	Views int64 `gorm:"column:views;default:0" json:"views"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (JobVacancy) TableName() string { return "job_vacancies" }
