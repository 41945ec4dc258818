package handlers

import (

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/colih/gestao-medicos/database"
	"github.com/colih/gestao-medicos/models"
)

const doctorsSheet = "Medicos"

var doctorsHeader = []interface{}{
	"ID", "Nome", "CRM", "Especialidade", "Subespecialidade", "Hospital", "Cidade", "Endereço",
	"E-mail", "Tipo de paciente", "Status", "Atende SUS", "Atende particular", "Realiza cirurgias",
	"Última visita",
}

func simNao(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

// buildDoctorsWorkbook monta a planilha com uma linha por médico
func buildDoctorsWorkbook(doctors []models.Doctor) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", doctorsSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(doctorsSheet, "A1", &doctorsHeader); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(doctorsHeader))
	if err := f.SetCellStyle(doctorsSheet, "A1", lastCol+"1", bold); err != nil {
		return nil, err
	}

	for i, d := range doctors {
		lastVisit := ""
		if !d.LastVisit.IsZero() {
			lastVisit = d.LastVisit.Format("02/01/2006")
		}
		row := []interface{}{
			d.ID, d.Name, d.CRM, d.SpecialtyName, d.Subspecialty, d.HospitalName, d.CityName, d.Address,
			d.Email, d.TypePatient, d.Status, simNao(d.AttendsSUS), simNao(d.AttendsPrivate),
			simNao(d.PerformsSurgeries), lastVisit,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(doctorsSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(doctorsSheet, "B", "B", 35); err != nil {
		return nil, err
	}
	return f, nil
}

// ExportarMedicosXLSX baixa a lista (filtrada) de médicos em .xlsx
func ExportarMedicosXLSX(c *fiber.Ctx) error {
	filter, err := doctorFilter(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Filtro inválido")
	}
	doctors, err := database.ListDoctors(c.UserContext(), filter)
	if err != nil {
		return dbError(c, err, "")
	}

	f, err := buildDoctorsWorkbook(doctors)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao gerar a planilha")
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao gerar a planilha")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="medicos.xlsx"`)
	return c.Send(buf.Bytes())
}
