package xlsexport

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	ExportLeaveRegistry(list []dbmodels.LeaveApplication) (*bytes.Buffer, error)
	ExportBalanceReport(list []dbmodels.LeaveBalance) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var leaveHeaders = []string{"Сотрудник", "Вид отпуска", "Период", "Дней", "Статус", "Этап", "Дата отправки", "Комментарий"}

func (i impl) ExportLeaveRegistry(list []dbmodels.LeaveApplication) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, leaveHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeLeaveData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Заявки на отпуск")
	return f.WriteToBuffer()
}

func writeLeaveData(f *excelize.File, sheet string, list []dbmodels.LeaveApplication, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(leaveHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Сотрудник"
		col := 1
		employeeName := item.EmployeeID
		if item.Employee != nil {
			employeeName = item.Employee.GetFullName()
		}
		if err := writeColumn(f, sheet, col, row, employeeName); err != nil {
			return row, err
		}

		// "Вид отпуска"
		col++
		if item.LeaveType != nil {
			if err := writeColumn(f, sheet, col, row, item.LeaveType.Name); err != nil {
				return row, err
			}
		}

		// "Период"
		col++
		period := fmt.Sprintf("%v - %v", item.DateFrom.Format("02.01.2006"), item.DateTo.Format("02.01.2006"))
		if err := writeColumn(f, sheet, col, row, period); err != nil {
			return row, err
		}

		// "Дней"
		col++
		if err := writeColumn(f, sheet, col, row, item.Days.String()); err != nil {
			return row, err
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, item.Status.ToHuman()); err != nil {
			return row, err
		}

		// "Этап"
		col++
		if item.TotalLevels > 0 {
			stage := fmt.Sprintf("%d из %d", item.CurrentLevel, item.TotalLevels)
			if err := writeColumn(f, sheet, col, row, stage); err != nil {
				return row, err
			}
		}

		// "Дата отправки"
		col++
		if item.SubmittedAt != nil {
			if err := writeColumn(f, sheet, col, row, item.SubmittedAt.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		// "Комментарий"
		col++
		if err := writeColumn(f, sheet, col, row, item.DecisionComment); err != nil {
			return row, err
		}
	}
	return row, nil
}

var balanceHeaders = []string{"Сотрудник", "Вид отпуска", "Год", "Начислено", "Использовано", "Зарезервировано", "Доступно"}

func (i impl) ExportBalanceReport(list []dbmodels.LeaveBalance) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, balanceHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeBalanceData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Остатки отпусков")
	return f.WriteToBuffer()
}

func writeBalanceData(f *excelize.File, sheet string, list []dbmodels.LeaveBalance, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(balanceHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		col := 1
		employeeName := item.EmployeeID
		if item.Employee != nil {
			employeeName = item.Employee.GetFullName()
		}
		if err := writeColumn(f, sheet, col, row, employeeName); err != nil {
			return row, err
		}

		col++
		if item.LeaveType != nil {
			if err := writeColumn(f, sheet, col, row, item.LeaveType.Name); err != nil {
				return row, err
			}
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.Year); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.Earned.String()); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.Used.String()); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.Pending.String()); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.Available().String()); err != nil {
			return row, err
		}
	}
	return row, nil
}
