package model

import "time"

// Applicant links a user to a job they applied to, together with the stored
// resume key. The composite unique index makes "apply at most once" a
// database invariant and keeps concurrent applications from different users
// independent inserts.
type Applicant struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	JobID     uint      `json:"job_id" gorm:"uniqueIndex:idx_applicants_job_user"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_applicants_job_user"`
	Resume    string    `json:"resume" gorm:"type:varchar(255)"`
	AppliedAt time.Time `json:"applied_at"`
}
