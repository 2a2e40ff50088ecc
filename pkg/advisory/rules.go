package advisory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadWindows reads a crop -> planting window table from a .csv or .xlsx file
// (first sheet). Header names are matched loosely so "Crop Name",
// "crop_name" and "CROP" all work.
func LoadWindows(path string) (map[string]string, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported rules file %s", path)
	}
	if err != nil {
		return nil, err
	}
	return parseWindows(rows)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets", path)
	}
	return x.GetRows(sheets[0])
}

func normHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

func parseWindows(rows [][]string) (map[string]string, error) {
	if len(rows) == 0 {
		return nil, errors.New("rules file is empty")
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[normHeader(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if i, ok := cols[normHeader(k)]; ok {
				return i
			}
		}
		return -1
	}
	cCrop := findAny("crop", "crop_name", "seed")
	cWindow := findAny("planting_window", "window", "advice", "notes", "tips")
	if cCrop == -1 || cWindow == -1 {
		return nil, fmt.Errorf("rules file needs crop and planting_window columns, found %v", rows[0])
	}

	out := map[string]string{}
	for _, rec := range rows[1:] {
		get := func(i int) string {
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		crop, window := strings.ToLower(get(cCrop)), get(cWindow)
		if crop == "" || window == "" {
			continue
		}
		out[crop] = window
	}
	if len(out) == 0 {
		return nil, errors.New("rules file has no usable rows")
	}
	return out, nil
}
