package updater

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"schedulebot/database"
	"schedulebot/excel"
	"schedulebot/parser"
	"schedulebot/utils"

	log "github.com/sirupsen/logrus"
)

// Options - параметры одного прогона загрузки
type Options struct {
	Dir            string
	Extensions     []string
	ShowAll        bool
	ShowIncomplete bool
	Force          bool
	ReportPath     string
	DumpPath       string
	// LoadPath - взять расписание из YAML вместо разбора таблиц
	LoadPath string
	Target   string

	Out     io.Writer
	Confirm func(prompt string) bool
}

// Result - итог прогона
type Result struct {
	Files   int
	Groups  int
	Counter parser.Counter
	Stats   WriteStats
	Written bool
}

// Updater разбирает файлы расписания и записывает результат в базу
type Updater struct {
	db     *database.DB
	loader *excel.Loader
	writer *Writer
}

func New(db *database.DB, loader *excel.Loader) *Updater {
	return &Updater{db: db, loader: loader, writer: NewWriter(db)}
}

// Run: файлы -> листы -> группы -> подтверждение -> запись
func (u *Updater) Run(opts Options) (Result, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Confirm == nil {
		opts.Confirm = func(prompt string) bool {
			return AskConfirm(os.Stdin, opts.Out, prompt)
		}
	}

	var (
		res    Result
		groups []parser.GroupSchedule
		err    error
	)
	if opts.LoadPath != "" {
		groups, err = LoadYAML(opts.LoadPath)
		if err != nil {
			return res, err
		}
		res.Files = 1
	} else {
		groups, err = u.scan(opts, &res)
		if err != nil {
			return res, err
		}
	}
	res.Groups = len(groups)

	fmt.Fprintf(opts.Out, "Files: %d, groups: %d\n%s\n", res.Files, res.Groups, res.Counter.String())

	if opts.DumpPath != "" {
		if err := DumpYAML(opts.DumpPath, groups); err != nil {
			return res, err
		}
		log.Infof("Schedule dumped to %s", opts.DumpPath)
	}

	if len(groups) == 0 {
		log.Warn("No groups found, database left untouched")
		return res, nil
	}

	if !opts.Force && !opts.Confirm(fmt.Sprintf("Put data into database (%s)? [y/n]", opts.Target)) {
		log.Info("Cancelled")
		return res, nil
	}

	stats, err := u.writer.Write(Collect(groups), groups)
	if err != nil {
		return res, err
	}
	res.Stats = stats
	res.Written = true
	return res, nil
}

func (u *Updater) scan(opts Options, res *Result) ([]parser.GroupSchedule, error) {
	files, err := DiscoverFiles(opts.Dir, opts.Extensions)
	if err != nil {
		return nil, err
	}

	var (
		groups []parser.GroupSchedule
		report []excel.ReportEntry
	)
	for _, path := range files {
		sheets, err := u.loader.Load(path)
		if err != nil {
			log.WithError(err).Error("Skipping file")
			continue
		}
		res.Files++

		for _, sheet := range sheets {
			source := filepath.Base(path)
			sheetName := sheet.Name
			observer := func(group string, slot parser.Slot, l parser.Lesson) {
				if opts.ShowAll || (opts.ShowIncomplete && !l.IsFull()) {
					fmt.Fprintln(opts.Out, l.String())
				}
				if !l.IsFull() {
					report = append(report, excel.ReportEntry{
						File: source, Sheet: sheetName, Group: group, Slot: slot, Lesson: l,
					})
				}
			}
			groups = append(groups, parser.ScanSheet(sheet.Grid, &res.Counter, parser.WithObserver(observer))...)
		}
	}

	if opts.ReportPath != "" {
		if err := excel.WriteReport(opts.ReportPath, report); err != nil {
			return nil, err
		}
		log.Infof("Report with %d incomplete lessons saved to %s", len(report), opts.ReportPath)
	}

	return groups, nil
}

// DiscoverFiles возвращает файлы каталога с подходящим расширением
// в порядке имён, чтобы повторный прогон шёл в том же порядке
func DiscoverFiles(dir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !utils.IsScheduleFile(e.Name(), extensions) {
			log.Debugf("Skip %s: extension not accepted", e.Name())
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// AskConfirm задаёт вопрос и ждёт "y" или "n"
func AskConfirm(in io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, prompt, " ")
		line, err := reader.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes", "д", "да":
			return true
		case "n", "no", "н", "нет":
			return false
		}
		if err != nil {
			return false
		}
	}
}
