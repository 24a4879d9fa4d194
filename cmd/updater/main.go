// Загрузка расписания из таблиц в базу.
//
//	updater -d schedule -b schedule.db -i -report incomplete.xlsx
package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"schedulebot/config"
	"schedulebot/database"
	"schedulebot/downloader"
	"schedulebot/excel"
	"schedulebot/updater"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	var (
		dir            = flag.String("d", cfg.ScheduleDir, "directory with schedule files")
		showAll        = flag.Bool("a", false, "print every parsed lesson")
		showIncomplete = flag.Bool("i", false, "print incomplete lessons only")
		dsn            = flag.String("b", cfg.DBPath, "database path or DSN")
		driver         = flag.String("driver", cfg.DBDriver, "database driver: sqlite3 or pgx")
		force          = flag.Bool("f", false, "write without confirmation")
		debug          = flag.Bool("debug", false, "debug logging")
		download       = flag.Bool("download", false, "download files from the schedule page into -d first")
		report         = flag.String("report", "", "save incomplete lessons to this xlsx file")
		dump           = flag.String("dump", "", "save parsed schedule to this yaml file")
		load           = flag.String("load", "", "take schedule from a yaml dump instead of parsing files")
		accepted       = flag.String("ext", strings.Join(cfg.Extensions, ","), "accepted file extensions")
	)
	flag.Parse()

	cfg.SetupLogging()
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.NewDB(*driver, *dsn)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	var extensions []string
	for _, ext := range strings.Split(*accepted, ",") {
		if ext = strings.TrimSpace(ext); ext != "" {
			extensions = append(extensions, ext)
		}
	}

	if *download {
		d := downloader.New(cfg.SchedulePage, cfg.ScheduleBaseURL, *dir, extensions, db)
		changed, err := d.Download(context.Background())
		if err != nil {
			log.Fatalf("Download failed: %v", err)
		}
		log.Infof("%d files changed", len(changed))
	}

	u := updater.New(db, excel.NewLoader(cfg.XLSCharset))
	res, err := u.Run(updater.Options{
		Dir:            *dir,
		Extensions:     extensions,
		ShowAll:        *showAll,
		ShowIncomplete: *showIncomplete,
		Force:          *force,
		ReportPath:     *report,
		DumpPath:       *dump,
		LoadPath:       *load,
		Target:         *dsn,
		Out:            os.Stdout,
	})
	if err != nil {
		log.Fatalf("Update failed: %v", err)
	}
	if res.Written {
		log.Infof("Done: %d rows, %d unknown lesson types", res.Stats.Rows, res.Stats.UnknownTypes)
	}
}
