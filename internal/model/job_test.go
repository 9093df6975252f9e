package model_test

import (
	"testing"
	"time"

	"github.com/techBikashRepo/jobbee-api/internal/model"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Node Developer", "node-developer"},
		{"Senior C++ Engineer", "senior-c-engineer"},
		{"  Spaced   Out  ", "spaced-out"},
		{"Already-Slugged", "already-slugged"},
		{"UPPER case 123", "upper-case-123"},
	}
	for _, c := range cases {
		if got := model.Slugify(c.title); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

func TestDeriveSlug_FollowsTitle(t *testing.T) {
	job := model.Job{Title: "Node Developer"}
	job.DeriveSlug()
	if job.Slug != "node-developer" {
		t.Fatalf("slug = %q", job.Slug)
	}

	job.Title = "Go Developer"
	job.DeriveSlug()
	if job.Slug != "go-developer" {
		t.Errorf("slug after title change = %q, want go-developer", job.Slug)
	}
}

func TestSetDefaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	job := model.Job{}
	job.SetDefaults(now)

	if !job.PostingDate.Equal(now) {
		t.Errorf("posting date = %v, want %v", job.PostingDate, now)
	}
	if want := now.Add(7 * 24 * time.Hour); !job.LastDate.Equal(want) {
		t.Errorf("last date = %v, want %v", job.LastDate, want)
	}
}

func TestSetDefaults_KeepsExplicitDates(t *testing.T) {
	posting := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	job := model.Job{PostingDate: posting, LastDate: last}
	job.SetDefaults(time.Now())

	if !job.PostingDate.Equal(posting) || !job.LastDate.Equal(last) {
		t.Errorf("explicit dates changed: %v, %v", job.PostingDate, job.LastDate)
	}
}

func TestExpired(t *testing.T) {
	deadline := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	job := model.Job{LastDate: deadline}

	if job.Expired(deadline) {
		t.Error("job should not be expired exactly at the deadline")
	}
	if !job.Expired(deadline.Add(time.Second)) {
		t.Error("job should be expired after the deadline")
	}
}

func validJob() model.Job {
	return model.Job{
		Industry:     []string{"Banking"},
		JobType:      model.JobTypePermanent,
		MinEducation: "Masters",
		Experience:   "No Experience",
		Positions:    2,
	}
}

func TestValidate_OK(t *testing.T) {
	job := validJob()
	if problems := job.Validate(); len(problems) != 0 {
		t.Errorf("valid job reported problems: %v", problems)
	}
}

func TestValidate_Problems(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.Job)
	}{
		{"empty industry", func(j *model.Job) { j.Industry = nil }},
		{"bad industry", func(j *model.Job) { j.Industry = []string{"Astrology"} }},
		{"bad job type", func(j *model.Job) { j.JobType = "Gig" }},
		{"bad education", func(j *model.Job) { j.MinEducation = "Kindergarten" }},
		{"bad experience", func(j *model.Job) { j.Experience = "100 Years" }},
		{"zero positions", func(j *model.Job) { j.Positions = 0 }},
	}
	for _, c := range cases {
		job := validJob()
		c.mutate(&job)
		if problems := job.Validate(); len(problems) == 0 {
			t.Errorf("%s: expected validation problems, got none", c.name)
		}
	}
}
