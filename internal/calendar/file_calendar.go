package calendar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// yamlHolidayFile is the YAML layout of a holiday file
type yamlHolidayFile struct {
	Year     int       `yaml:"year"`
	Holidays []Holiday `yaml:"holidays"`
}

// LoadHolidayFile reads a holiday set for year from a local file.
// Files ending in .yaml or .yml use the YAML layout, anything else is plain text.
func LoadHolidayFile(path string, year int, logger *zap.Logger) (*HolidaySet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	var holidays []Holiday
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		holidays, err = parseYAMLHolidays(file, year, logger)
	default:
		holidays, err = parseTextHolidays(file, logger)
	}
	if err != nil {
		return nil, err
	}

	holidays = keepYear(holidays, year, logger)
	set := NewHolidaySetFrom(year, holidays)

	logger.Info("Holiday file loaded",
		zap.String("file", path),
		zap.Int("year", year),
		zap.Int("holidays", set.Len()))

	return set, nil
}

// parseTextHolidays reads lines of the form:
//
//	# comment
//	01/01/2026 Новогодние каникулы
func parseTextHolidays(r io.Reader, logger *zap.Logger) ([]Holiday, error) {
	scanner := bufio.NewScanner(r)
	var holidays []Holiday

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, " ", 2)
		holiday := Holiday{Date: parts[0]}
		if len(parts) == 2 {
			holiday.Note = strings.TrimSpace(parts[1])
		}

		if _, ok := parseLexical(holiday.Date); !ok {
			logger.Warn("Invalid holiday line", zap.String("line", line))
			continue
		}

		holidays = append(holidays, holiday)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading holiday file: %w", err)
	}

	return holidays, nil
}

func parseYAMLHolidays(r io.Reader, year int, logger *zap.Logger) ([]Holiday, error) {
	var doc yamlHolidayFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse holiday file: %w", err)
	}

	if doc.Year != 0 && doc.Year != year {
		logger.Warn("Holiday file year differs from reference year",
			zap.Int("file_year", doc.Year),
			zap.Int("reference_year", year))
	}

	holidays := make([]Holiday, 0, len(doc.Holidays))
	for _, h := range doc.Holidays {
		h.Date = strings.TrimSpace(h.Date)
		if _, ok := parseLexical(h.Date); !ok {
			logger.Warn("Invalid holiday entry", zap.String("date", h.Date))
			continue
		}
		holidays = append(holidays, h)
	}

	return holidays, nil
}

// keepYear drops entries outside the reference year
func keepYear(holidays []Holiday, year int, logger *zap.Logger) []Holiday {
	kept := holidays[:0]
	for _, h := range holidays {
		parsed, _ := parseLexical(h.Date)
		if parsed.Year != year {
			logger.Warn("Skipping holiday outside reference year",
				zap.String("date", h.Date),
				zap.Int("reference_year", year))
			continue
		}
		kept = append(kept, h)
	}
	return kept
}
