// file: internals/features/school/grading/service/bands.go
package service

import model "schoolku_backend/internals/features/school/grading/model"

// Ambang kehadiran. Dua angka ini memang beda dan tidak boleh disamakan:
// 75% mengatur KAPAN guru boleh input nilai, 60% mengatur APAKAH term
// dihitung lulus.
const (
	MinAttendanceForEntry    = 75.0
	MinAttendanceForTermPass = 60.0
)

const (
	// Batas lulus per mapel + nilai remediasi saat lock
	PassingScore     = 60.0
	RemediationScore = 60.0
)

// LetterForScore memetakan skor angka ke huruf + label kualitatif.
func LetterForScore(score float64) (letter string, label string) {
	switch {
	case score >= 90:
		return "A", "Very Good"
	case score >= 80:
		return "B", "Good"
	case score >= 70:
		return "C", "Fair"
	case score >= 60:
		return "D", "Poor"
	default:
		return "E", "Very Poor"
	}
}

// PredicateForAverage memetakan rata-rata rapor ke predikat; nil kalau
// belum ada nilai (rata-rata 0).
func PredicateForAverage(avg float64) *string {
	var p string
	switch {
	case avg >= 90:
		p = "Excellent"
	case avg >= 80:
		p = "Good"
	case avg >= 70:
		p = "Fair"
	case avg >= 60:
		p = "Poor"
	case avg > 0:
		p = "Very Poor"
	default:
		return nil
	}
	return &p
}

func passForScore(score float64) model.GradeRecordPass {
	if score >= PassingScore {
		return model.GradeRecordPassPassed
	}
	return model.GradeRecordPassFailed
}
