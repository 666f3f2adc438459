package attendance

import (
	"bytes"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/validator"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Attendance"

var statusLabels = map[attendance.Status]string{
	attendance.StatusPresent: "Present",
	attendance.StatusAbsent:  "Absent",
	attendance.StatusOnLeave: "On Leave",
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// renderMonthWorkbook writes a single-sheet workbook: a title, one row per entry and a
// summary block underneath.
func renderMonthWorkbook(emp employee.Employee, month time.Time, snapshot monthSnapshot) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	f.SetColWidth(exportSheet, "A", "A", 14)
	f.SetColWidth(exportSheet, "B", "B", 12)
	f.SetColWidth(exportSheet, "C", "D", 14)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	f.SetCellValue(exportSheet, "A1", fmt.Sprintf("%s (%s) - %s", emp.FullName, emp.EmployeeCode, month.Format("January 2006")))
	f.SetCellStyle(exportSheet, "A1", "A1", boldStyle)

	row := 3
	for i, h := range []string{"Date", "Status", "Hours Worked", "Tasks Logged"} {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(exportSheet, cell(col, row), h)
	}
	f.SetCellStyle(exportSheet, cell("A", row), cell("D", row), headerStyle)

	for _, e := range snapshot.Entries {
		row++
		f.SetCellValue(exportSheet, cell("A", row), e.Date.Format(validator.DateLayout))
		f.SetCellValue(exportSheet, cell("B", row), statusLabels[e.Status])
		if e.HoursWorked != nil {
			f.SetCellValue(exportSheet, cell("C", row), *e.HoursWorked)
		} else {
			f.SetCellValue(exportSheet, cell("C", row), "-")
		}
		if e.TasksLogged != nil {
			f.SetCellValue(exportSheet, cell("D", row), *e.TasksLogged)
		} else {
			f.SetCellValue(exportSheet, cell("D", row), "-")
		}
	}

	s := snapshot.Summary
	row += 2
	summary := []struct {
		label string
		value interface{}
	}{
		{"Present Days", s.PresentDays},
		{"Leave Days", s.LeaveDays},
		{"Absent Days", s.AbsentDays},
		{"Total Hours", attendance.NewSummaryResponse(emp.ID, month, s).TotalHours},
		{"Total Tasks", s.TotalTasks},
		{"Attendance Rate (%)", s.AttendanceRate()},
	}
	for _, item := range summary {
		f.SetCellValue(exportSheet, cell("A", row), item.label)
		f.SetCellStyle(exportSheet, cell("A", row), cell("A", row), boldStyle)
		f.SetCellValue(exportSheet, cell("B", row), item.value)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
