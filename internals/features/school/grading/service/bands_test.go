package service

import (
	"testing"

	model "schoolku_backend/internals/features/school/grading/model"
)

func TestLetterForScore(t *testing.T) {
	cases := []struct {
		score  float64
		letter string
		label  string
	}{
		{100, "A", "Very Good"},
		{90, "A", "Very Good"},
		{89.9, "B", "Good"},
		{80, "B", "Good"},
		{79, "C", "Fair"},
		{70, "C", "Fair"},
		{69, "D", "Poor"},
		{60, "D", "Poor"},
		{59.9, "E", "Very Poor"},
		{0, "E", "Very Poor"},
	}
	for _, c := range cases {
		letter, label := LetterForScore(c.score)
		if letter != c.letter || label != c.label {
			t.Errorf("LetterForScore(%v) = %q/%q, mau %q/%q", c.score, letter, label, c.letter, c.label)
		}
	}
}

func TestPredicateForAverage(t *testing.T) {
	cases := []struct {
		avg  float64
		want string
	}{
		{95, "Excellent"},
		{90, "Excellent"},
		{85, "Good"},
		{75, "Fair"},
		{60, "Poor"},
		{30, "Very Poor"},
	}
	for _, c := range cases {
		got := PredicateForAverage(c.avg)
		if got == nil || *got != c.want {
			t.Errorf("PredicateForAverage(%v) = %v, mau %q", c.avg, got, c.want)
		}
	}
	if PredicateForAverage(0) != nil {
		t.Errorf("PredicateForAverage(0) harus nil")
	}
}

func TestPassForScore(t *testing.T) {
	if passForScore(60) != model.GradeRecordPassPassed {
		t.Errorf("60 harus lulus")
	}
	if passForScore(59.9) != model.GradeRecordPassFailed {
		t.Errorf("59.9 harus gagal")
	}
}
