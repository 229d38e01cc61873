/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"chartkit/internal/plot"
)

// LoadXLSXData reads data points from a worksheet. Columns default to A for
// x, B for y and none for labels; the first sheet is used when Sheet is empty.
// Rows without a y value are skipped.
func LoadXLSXData(src DataSource) ([]plot.Datum, error) {
	f, err := excelize.OpenFile(src.XLSX)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := src.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	xc, err := column(src.XColumn, "A")
	if err != nil {
		return nil, err
	}
	yc, err := column(src.YColumn, "B")
	if err != nil {
		return nil, err
	}
	lc := -1
	if src.LabelColumn != "" {
		if lc, err = column(src.LabelColumn, ""); err != nil {
			return nil, err
		}
	}

	var out []plot.Datum
	for i, row := range rows {
		if i == 0 && src.Header {
			continue
		}
		ys := cell(row, yc)
		if ys == "" {
			continue
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: y %q is not a number", sheet, i+1, ys)
		}
		d := plot.Datum{Y: y, X: float64(len(out) + 1)}
		if xs := cell(row, xc); xs != "" {
			x, err := strconv.ParseFloat(xs, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: x %q is not a number", sheet, i+1, xs)
			}
			d.X = x
		}
		if lc >= 0 {
			d.Label = cell(row, lc)
		}
		out = append(out, d)
	}
	return out, nil
}

// SaveXLSXData writes data to a new workbook with a header row, in the
// layout LoadXLSXData reads with Header set.
func SaveXLSXData(path, sheet string, data []plot.Datum) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}
	header := []any{"x", "y", "label"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, d := range data {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{d.X, d.Y, d.Label}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}

// column converts a column letter to a zero-based index.
func column(name, def string) (int, error) {
	if name == "" {
		name = def
	}
	n, err := excelize.ColumnNameToNumber(strings.ToUpper(name))
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", name, err)
	}
	return n - 1, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
