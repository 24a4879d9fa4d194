package excel

import (
	"fmt"

	"schedulebot/utils"

	log "github.com/sirupsen/logrus"
)

// Loader читает файлы расписания в листы.
// Имена листов получают сквозной номер, так как в разных файлах
// (и даже в одном) листы часто называются одинаково.
type Loader struct {
	charset string
	seq     int
}

func NewLoader(charset string) *Loader {
	if charset == "" {
		charset = "utf-8"
	}
	return &Loader{charset: charset}
}

// Load читает .xls или .xlsx файл
func (l *Loader) Load(path string) ([]Sheet, error) {
	var (
		sheets []Sheet
		err    error
	)

	switch utils.GetFileExtension(path) {
	case ".xls":
		sheets, err = loadXLS(path, l.charset)
	case ".xlsx":
		sheets, err = loadXLSX(path)
	default:
		return nil, &LoadError{Path: path, Err: ErrUnsupportedFile}
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(sheets) == 0 {
		return nil, &LoadError{Path: path, Err: ErrNoSheets}
	}

	for i := range sheets {
		sheets[i].Name = fmt.Sprintf("%s%d", sheets[i].Name, l.seq)
		l.seq++
		log.Debugf("Loaded sheet %s (%dx%d) from %s",
			sheets[i].Name, sheets[i].Grid.Cols(), sheets[i].Grid.Rows(), path)
	}

	return sheets, nil
}
