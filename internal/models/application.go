package models

import "time"

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "PENDING"
	StatusShortlisted ApplicationStatus = "SHORTLISTED"
	StatusAccepted    ApplicationStatus = "ACCEPTED"
	StatusRejected    ApplicationStatus = "REJECTED"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusShortlisted, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// JobApplication links an applicant to a vacancy. The composite unique
// index is what actually prevents duplicate applications; the handler check
// only exists to give a friendly message before the insert races.
type JobApplication struct {
	ID          uint       `gorm:"column:id;primaryKey" json:"id"`
	JobID       uint       `gorm:"column:job_id;uniqueIndex:idx_job_applicant" json:"job_id"`
	Job         JobVacancy `gorm:"foreignKey:JobID" json:"-"`
	ApplicantID uint       `gorm:"column:applicant_id;uniqueIndex:idx_job_applicant" json:"applicant_id"`
	Applicant   User       `gorm:"foreignKey:ApplicantID" json:"-"`

	MeetsRequirements bool   `gorm:"column:meets_requirements;default:false" json:"meets_requirements"`
	ContactNumber     string `gorm:"column:contact_number;type:text" json:"contact_number"`

	// object path on the raw (non-public) backend
	CV string `gorm:"column:cv;type:text" json:"-"`

	Notes     string            `gorm:"column:notes;type:text" json:"notes"`
	OwnerNote string            `gorm:"column:owner_note;type:text" json:"owner_note"`
	Status    ApplicationStatus `gorm:"column:status;type:text;default:PENDING" json:"status"`
	AppliedAt time.Time         `gorm:"column:applied_at;autoCreateTime" json:"applied_at"`
}

func (JobApplication) TableName() string { return "job_applications" }
