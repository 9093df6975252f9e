package model

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

// Job type values
const (
	JobTypePermanent  = "Permanent"
	JobTypeTemporary  = "Temporary"
	JobTypeInternship = "Internship"
)

// Enumerated field values
var (
	Industries = []string{
		"Information Technology",
		"Banking",
		"Education/Training",
		"Healthcare",
		"Others",
	}
	JobTypes    = []string{JobTypePermanent, JobTypeTemporary, JobTypeInternship}
	Educations  = []string{"Bachelors", "Masters", "PhD"}
	Experiences = []string{"No Experience", "1 Year - 2 Years", "2 Years - 5 Years", "5 Years+"}
)

// Default application window after the posting date.
const applyWindow = 7 * 24 * time.Hour

// Job represents a posting owned by an employer. Slug and the location
// columns are derived, never client-supplied: handlers call DeriveSlug and
// SetLocation on the write path before persisting.
type Job struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Title        string         `json:"title" gorm:"type:varchar(100)"`
	Slug         string         `json:"slug" gorm:"type:varchar(120);index"`
	Description  string         `json:"description" gorm:"type:varchar(1000)"`
	Email        string         `json:"email,omitempty" gorm:"type:varchar(100)"`
	Address      string         `json:"address"`
	Company      string         `json:"company"`
	Industry     pq.StringArray `json:"industry" gorm:"type:text[]"`
	JobType      string         `json:"job_type" gorm:"type:varchar(20)"`
	MinEducation string         `json:"min_education" gorm:"type:varchar(20)"`
	Positions    int            `json:"positions"`
	Experience   string         `json:"experience" gorm:"type:varchar(30)"`
	Salary       float64        `json:"salary"`
	UserID       uint           `json:"user_id" gorm:"index"`
	PostingDate  time.Time      `json:"posting_date" gorm:"index"`
	LastDate     time.Time      `json:"last_date"`

	// Geocoded from Address.
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formatted_address"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	Zipcode          string  `json:"zipcode"`
	Country          string  `json:"country"`

	Applicants []Applicant `json:"applicants,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// Location holds geocoded address components.
type Location struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
	City             string
	State            string
	Zipcode          string
	Country          string
}

// DeriveSlug recomputes the slug from the title. Called on every save of the
// title so the slug can never go stale.
func (j *Job) DeriveSlug() {
	j.Slug = Slugify(j.Title)
}

// SetLocation applies geocoded address components.
func (j *Job) SetLocation(loc Location) {
	j.Latitude = loc.Latitude
	j.Longitude = loc.Longitude
	j.FormattedAddress = loc.FormattedAddress
	j.City = loc.City
	j.State = loc.State
	j.Zipcode = loc.Zipcode
	j.Country = loc.Country
}

// SetDefaults stamps the posting date and application deadline on creation.
func (j *Job) SetDefaults(now time.Time) {
	if j.PostingDate.IsZero() {
		j.PostingDate = now
	}
	if j.LastDate.IsZero() {
		j.LastDate = j.PostingDate.Add(applyWindow)
	}
}

// Expired reports whether the application deadline has passed.
func (j *Job) Expired(now time.Time) bool {
	return now.After(j.LastDate)
}

// Validate checks the enumerated and bounded fields.
func (j *Job) Validate() []string {
	var problems []string

	if len(j.Industry) == 0 {
		problems = append(problems, "Please enter industry.")
	}
	for _, ind := range j.Industry {
		if !contains(Industries, ind) {
			problems = append(problems, "Please select correct options for industry.")
			break
		}
	}
	if !contains(JobTypes, j.JobType) {
		problems = append(problems, "Please select correct options for job type.")
	}
	if !contains(Educations, j.MinEducation) {
		problems = append(problems, "Please select correct options for education.")
	}
	if !contains(Experiences, j.Experience) {
		problems = append(problems, "Please select correct options for experience.")
	}
	if j.Positions <= 0 {
		problems = append(problems, "Please enter number of positions.")
	}
	return problems
}

// Slugify turns a title into its URL-safe lowercase identifier.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
