package handler_test

import (
	"testing"

	"github.com/techBikashRepo/jobbee-api/internal/apperr"
	"github.com/techBikashRepo/jobbee-api/internal/handler"
)

func TestCheckResume_AllowedExtensions(t *testing.T) {
	for _, name := range []string{"resume.pdf", "resume.doc", "resume.docx", "RESUME.PDF"} {
		if err := handler.CheckResume(name, 1024, 2*1024*1024); err != nil {
			t.Errorf("CheckResume(%q) = %v, want nil", name, err)
		}
	}
}

func TestCheckResume_RejectedExtensions(t *testing.T) {
	for _, name := range []string{"resume.png", "resume.exe", "resume", "resume.pdf.sh"} {
		err := handler.CheckResume(name, 1024, 2*1024*1024)
		if err == nil {
			t.Errorf("CheckResume(%q) accepted", name)
			continue
		}
		appErr, ok := apperr.As(err)
		if !ok || appErr.Kind != apperr.KindPayload {
			t.Errorf("CheckResume(%q) error kind = %v, want KindPayload", name, err)
		}
	}
}

func TestCheckResume_SizeCeiling(t *testing.T) {
	if err := handler.CheckResume("resume.pdf", 2048, 1024); err == nil {
		t.Error("oversized file accepted")
	}
	if err := handler.CheckResume("resume.pdf", 1024, 1024); err != nil {
		t.Errorf("file exactly at the ceiling rejected: %v", err)
	}
}

func TestResumeKey_Deterministic(t *testing.T) {
	a := handler.ResumeKey(7, 12, "My Resume.PDF")
	b := handler.ResumeKey(7, 12, "another.pdf")
	if a != b {
		t.Errorf("keys differ for same user/job: %q vs %q", a, b)
	}
	if a != "resume_u7_j12.pdf" {
		t.Errorf("key = %q, want resume_u7_j12.pdf", a)
	}
}

func TestResumeKey_DistinctPerUserAndJob(t *testing.T) {
	base := handler.ResumeKey(7, 12, "r.pdf")
	if handler.ResumeKey(8, 12, "r.pdf") == base {
		t.Error("different users share a resume key")
	}
	if handler.ResumeKey(7, 13, "r.pdf") == base {
		t.Error("different jobs share a resume key")
	}
}
