package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"schedulebot/excel"
	"schedulebot/updater"
	"schedulebot/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// downloadTimeout - сколько ждать скачивания всех файлов с сайта
const downloadTimeout = 10 * time.Minute

func (h *BotHandler) handleAddExcel(chatID int64, document *tgbotapi.Document) {
	if document == nil {
		h.sendError(chatID, "Прикрепите файл расписания к команде /add_excel")
		return
	}

	if !utils.IsScheduleFile(document.FileName, h.config.Extensions) {
		h.sendError(chatID, fmt.Sprintf("Файл должен быть в формате %v", h.config.Extensions))
		return
	}

	// Получаем прямую ссылку на файл
	fileURL, err := h.bot.GetFileDirectURL(document.FileID)
	if err != nil {
		h.sendError(chatID, "Ошибка получения файла: "+err.Error())
		return
	}

	if err := os.MkdirAll(h.config.ScheduleDir, 0755); err != nil {
		h.sendError(chatID, "Ошибка создания каталога: "+err.Error())
		return
	}
	target := filepath.Join(h.config.ScheduleDir, filepath.Base(document.FileName))

	h.send(chatID, "📥 Скачиваю файл...")
	if err := utils.DownloadFile(fileURL, target); err != nil {
		h.sendError(chatID, "Ошибка скачивания файла: "+err.Error())
		return
	}

	h.startUpdate(chatID, false, true)
}

// handleUpdate скачивает файлы с сайта и перезаливает расписание.
// Без force база не трогается, если ни один файл не изменился.
func (h *BotHandler) handleUpdate(chatID int64, force bool) {
	if !h.checkAdmin(chatID) {
		return
	}
	h.startUpdate(chatID, true, force)
}

func (h *BotHandler) startUpdate(chatID int64, download, force bool) {
	if !h.updating.CompareAndSwap(false, true) {
		h.sendError(chatID, "Обновление уже идёт")
		return
	}

	go func() {
		defer h.updating.Store(false)
		h.runUpdate(chatID, download, force)
	}()
}

func (h *BotHandler) runUpdate(chatID int64, download, force bool) {
	if download {
		h.send(chatID, "🌐 Скачиваю расписание с сайта...")

		ctx, cancel := context.WithTimeout(context.Background(), downloadTimeout)
		defer cancel()

		changed, err := h.downloader.Download(ctx)
		if err != nil {
			log.WithError(err).Error("Download failed")
			h.sendError(chatID, "Ошибка скачивания: "+err.Error())
			return
		}
		if len(changed) == 0 && !force {
			h.send(chatID, "Файлы на сайте не изменились. Для перезаливки: /update force")
			return
		}
		h.send(chatID, fmt.Sprintf("Изменилось файлов: %d", len(changed)))
	}

	h.send(chatID, "📊 Обрабатываю данные...")

	report := excel.ReportFileName()
	defer os.Remove(report)

	res, err := h.updater.Run(updater.Options{
		Dir:        h.config.ScheduleDir,
		Extensions: h.config.Extensions,
		Force:      true,
		ReportPath: report,
		Target:     h.config.DBPath,
		Out:        io.Discard,
	})
	if err != nil {
		log.WithError(err).Error("Update failed")
		h.sendError(chatID, "Ошибка обновления: "+err.Error())
		return
	}

	h.send(chatID, FormatUpdateResult(res))

	if res.Counter.Incomplete == 0 {
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(report))
	doc.Caption = "Неполностью разобранные пары"
	if _, err := h.bot.Send(doc); err != nil {
		h.sendError(chatID, "Ошибка отправки отчёта: "+err.Error())
	}
}

// FormatUpdateResult - итог обновления для администратора
func FormatUpdateResult(res updater.Result) string {
	if !res.Written {
		return fmt.Sprintf("⚠️ База не изменена: файлов %d, групп %d", res.Files, res.Groups)
	}
	return fmt.Sprintf("✅ Расписание обновлено\nФайлов: %d\nГрупп: %d\nПар: %d\nНеизвестных типов: %d\n\n%s",
		res.Files, res.Groups, res.Stats.Rows, res.Stats.UnknownTypes, res.Counter.String())
}

func (h *BotHandler) handleStat(chatID int64) {
	if !h.checkAdmin(chatID) {
		return
	}

	users, err := h.db.CountUsers()
	if err != nil {
		h.sendError(chatID, "Ошибка получения данных: "+err.Error())
		return
	}
	groups, err := h.db.GetGroups()
	if err != nil {
		h.sendError(chatID, "Ошибка получения данных: "+err.Error())
		return
	}
	vip, err := h.db.GetVIPUsers()
	if err != nil {
		h.sendError(chatID, "Ошибка получения данных: "+err.Error())
		return
	}

	h.send(chatID, fmt.Sprintf("📋 Пользователей: %d (рассылка: %d)\nГрупп в расписании: %d",
		users, len(vip), len(groups)))
}
