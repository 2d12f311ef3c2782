// file: internals/features/school/grading/export/grade_sheet_xlsx.go
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	model "schoolku_backend/internals/features/school/grading/model"
)

// BuildGradeSheet menyusun workbook rekap nilai satu mapel (satu slot
// jadwal). Satu baris per siswa, kolom mengikuti urutan input.
func BuildGradeSheet(subjectName string, records []model.GradeRecordModel) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Rekap Nilai"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"No", "Siswa", "Nilai", "Huruf", "Label", "Status", "Lulus", "Remediasi", "Kehadiran %"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheet, "A1", last, style)
	}

	for i, rec := range records {
		row := i + 2
		score := ""
		if rec.GradeRecordScore != nil {
			score = fmt.Sprintf("%.1f", *rec.GradeRecordScore)
		}
		values := []any{
			i + 1,
			rec.GradeRecordStudentID.String(),
			score,
			strOrEmpty(rec.GradeRecordLetter),
			strOrEmpty(rec.GradeRecordLabel),
			string(rec.GradeRecordStatus),
			string(rec.GradeRecordPass),
			rec.GradeRecordIsRemediated,
			rec.GradeRecordAttendancePercentSnapshot,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	// judul mapel ditaruh di properti dokumen supaya nama sheet tetap pendek
	_ = f.SetDocProps(&excelize.DocProperties{Title: "Rekap Nilai " + subjectName})
	return f, nil
}

// BuildReportCardRecap menyusun workbook rekap rapor satu kelas: satu baris
// per siswa dengan agregat rapor.
func BuildReportCardRecap(cards []model.ReportCardModel) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Rekap Rapor"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"No", "Siswa", "Jumlah Mapel", "Tuntas", "Tidak Tuntas", "Rata-rata", "Predikat", "Kehadiran %", "Status Term", "Terbit"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheet, "A1", last, style)
	}

	for i, card := range cards {
		row := i + 2
		values := []any{
			i + 1,
			card.ReportCardStudentID.String(),
			card.ReportCardSubjectCount,
			card.ReportCardPassCount,
			card.ReportCardFailCount,
			card.ReportCardAverageScore,
			strOrEmpty(card.ReportCardPredicate),
			card.ReportCardAttendancePercent,
			string(card.ReportCardPass),
			card.ReportCardIsPublished,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
