package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"learntrack/backend/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ImportResult lists what a spreadsheet import created and which rows were
// skipped. Errors are numbered by spreadsheet row, header being row 1.
type ImportResult struct {
	Created []models.Resource `json:"created"`
	Errors  []string          `json:"errors"`
}

var importColumns = []string{"title", "url", "type", "status", "notes", "order"}

// ImportSpreadsheet creates one resource per data row of the first sheet of
// an .xlsx workbook. The header row names the columns; only "title" is
// required. Bad rows are reported and skipped, the rest are created in a
// single transaction.
func (s *ResourceService) ImportSpreadsheet(ctx context.Context, topicID string, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, invalid("cannot read spreadsheet: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, invalid("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, invalid("cannot read sheet %q: %v", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, invalid("spreadsheet is empty")
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := header["title"]; !ok {
		return nil, invalid("header row must contain a %q column (known columns: %s)", "title", strings.Join(importColumns, ", "))
	}

	result := &ImportResult{Created: []models.Resource{}, Errors: []string{}}
	var inputs []CreateResourceInput
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blankRow(row) {
			continue
		}
		in, err := rowInput(topicID, header, row)
		if err == nil {
			err = s.validateCreate(&in)
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		inputs = append(inputs, in)
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Topic{}, "id = ?", topicID).Error; err != nil {
			return notFound(err, "Topic")
		}
		for _, in := range inputs {
			resource, err := s.create(tx, in)
			if err != nil {
				return err
			}
			result.Created = append(result.Created, *resource)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func rowInput(topicID string, header map[string]int, row []string) (CreateResourceInput, error) {
	cell := func(name string) string {
		i, ok := header[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	optional := func(name string) *string {
		if v := cell(name); v != "" {
			return &v
		}
		return nil
	}

	in := CreateResourceInput{
		TopicID: topicID,
		Title:   cell("title"),
		URL:     optional("url"),
		Notes:   optional("notes"),
	}
	if v := cell("type"); v != "" {
		t := models.ResourceType(strings.ToLower(v))
		in.Type = &t
	}
	if v := cell("status"); v != "" {
		st := models.ResourceStatus(strings.ToLower(v))
		in.Status = &st
	}
	if v := cell("order"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, fmt.Errorf("order must be a whole number, got %q", v)
		}
		in.Order = &n
	}
	return in, nil
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
