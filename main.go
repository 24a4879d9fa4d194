package main

import (
	"strings"
	"time"

	"schedulebot/config"
	"schedulebot/database"
	"schedulebot/handlers"
	"schedulebot/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Загрузка конфигурации
	cfg := config.Load()
	cfg.SetupLogging()
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	if len(cfg.AdminIDs) == 0 {
		log.Warn("ADMIN_IDS not set, some commands will be unavailable")
	}

	// Инициализация базы данных
	db, err := database.NewDB(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Инициализация бота
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	bot.Debug = log.IsLevelEnabled(log.DebugLevel)
	log.Infof("Authorized on account %s", bot.Self.UserName)

	handler := handlers.NewBotHandler(bot, db, cfg)

	if cfg.DigestHour >= 0 {
		go runDigest(handler, cfg)
	}

	// Настройка обновлений
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := bot.GetUpdatesChan(u)

	// Обработка сообщений
	for update := range updates {
		if update.CallbackQuery != nil {
			handler.HandleCallback(update)
			continue
		}

		if update.Message != nil {
			text := update.Message.Text
			if update.Message.Document != nil {
				text = update.Message.Caption
			}
			// Проверяем права для административных команд
			if isAdminCommand(text) && !cfg.IsAdmin(update.Message.From.ID) {
				msg := tgbotapi.NewMessage(update.Message.Chat.ID, "❌ У вас нет прав для выполнения этой команды")
				bot.Send(msg)
				continue
			}

			handler.HandleMessage(update)
		}
	}
}

// runDigest раз в день в DigestHour рассылает расписание VIP-пользователям
func runDigest(handler *handlers.BotHandler, cfg *config.Config) {
	for {
		now := utils.Now(cfg.Timezone)
		next := nextDigest(now, cfg.DigestHour)
		log.Debugf("Next digest at %s", next.Format(time.RFC3339))
		time.Sleep(next.Sub(now))
		handler.SendDigest(next)
	}
}

func nextDigest(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// isAdminCommand проверяет, является ли команда административной
func isAdminCommand(text string) bool {
	if text == "" {
		return false
	}

	adminCommands := []string{
		"/add_excel",
		"/update",
		"/stat",
	}

	for _, cmd := range adminCommands {
		if strings.HasPrefix(text, cmd) {
			return true
		}
	}
	return false
}
