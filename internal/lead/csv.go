package lead

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"buildsite-service/internal/model"
)

// importScore is the fixed qualification score for CSV-imported leads; they
// have not been through the qualifier.
const importScore = 50

// Column-name aliases accepted by the importer, all compared lowercase.
var (
	nameColumns  = []string{"name", "full_name", "contact", "contact_name"}
	phoneColumns = []string{"phone", "mobile", "phone_number", "tel"}
	emailColumns = []string{"email", "e-mail", "email_address", "mail"}
)

// ParseCSV reads lead rows from CSV content. The header row is matched
// case-insensitively against known aliases, so "Name" and "name" both bind.
// Rows with no name, phone, or email are skipped.
func ParseCSV(r io.Reader, projectID uint) ([]model.Lead, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	nameIdx := findColumn(header, nameColumns)
	phoneIdx := findColumn(header, phoneColumns)
	emailIdx := findColumn(header, emailColumns)
	if nameIdx == -1 && phoneIdx == -1 && emailIdx == -1 {
		return nil, fmt.Errorf("csv has no recognizable lead columns")
	}

	var leads []model.Lead
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}

		name := fieldAt(record, nameIdx)
		phone := fieldAt(record, phoneIdx)
		email := fieldAt(record, emailIdx)
		if name == "" && phone == "" && email == "" {
			continue
		}

		lead := model.Lead{
			ProjectID: projectID,
			Name:      name,
			Source:    model.LeadSourceCSVImport,
			LeadScore: importScore,
			Status:    "New",
		}
		if phone != "" {
			lead.Phone = &phone
		}
		if email != "" {
			lead.Email = &email
		}
		leads = append(leads, lead)
	}

	return leads, nil
}

func findColumn(header []string, aliases []string) int {
	for i, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		for _, alias := range aliases {
			if normalized == alias {
				return i
			}
		}
	}
	return -1
}

func fieldAt(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
