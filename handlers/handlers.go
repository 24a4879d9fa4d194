package handlers

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"schedulebot/config"
	"schedulebot/database"
	"schedulebot/downloader"
	"schedulebot/excel"
	"schedulebot/parser"
	"schedulebot/updater"
	"schedulebot/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Состояния диалога
const (
	stateWaitingGroup   = "waiting_group"
	stateWaitingTeacher = "waiting_teacher"
)

// maxGroupChoices - сколько найденных групп предлагать кнопками
const maxGroupChoices = 20

type BotHandler struct {
	bot        *tgbotapi.BotAPI
	db         *database.DB
	updater    *updater.Updater
	downloader *downloader.Downloader
	userStates map[int64]string
	config     *config.Config

	updating atomic.Bool
}

func NewBotHandler(bot *tgbotapi.BotAPI, db *database.DB, cfg *config.Config) *BotHandler {
	return &BotHandler{
		bot:        bot,
		db:         db,
		updater:    updater.New(db, excel.NewLoader(cfg.XLSCharset)),
		downloader: downloader.New(cfg.SchedulePage, cfg.ScheduleBaseURL, cfg.ScheduleDir, cfg.Extensions, db),
		userStates: make(map[int64]string),
		config:     cfg,
	}
}

func (h *BotHandler) HandleMessage(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)
	command, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)

	// Файл расписания с подписью /add_excel
	if update.Message.Document != nil && strings.HasPrefix(update.Message.Caption, "/add_excel") {
		if !h.checkAdmin(chatID) {
			return
		}
		h.handleAddExcel(chatID, update.Message.Document)
		return
	}

	switch {
	case command == "/start":
		h.handleStart(chatID)
	case command == "/help":
		h.handleHelp(chatID)
	case text == btnToday || command == "/today":
		h.handleDay(chatID, 0)
	case text == btnTomorrow || command == "/tomorrow":
		h.handleDay(chatID, 1)
	case command == "/date":
		h.handleDate(chatID, arg)
	case text == btnWeek || command == "/week":
		h.handleWeekMenu(chatID)
	case text == btnNow || command == "/now":
		h.handleNow(chatID)
	case text == btnTimes || command == "/times":
		h.send(chatID, "🔔 Звонки:\n\n"+utils.TimeSchedule())
	case text == btnGroup || command == "/group":
		if arg != "" {
			h.processGroupInput(chatID, arg)
			return
		}
		h.userStates[chatID] = stateWaitingGroup
		h.send(chatID, "Введите номер группы, например Б22-191-1")
	case text == btnTeacher || command == "/teacher":
		if arg != "" {
			h.processTeacherInput(chatID, arg)
			return
		}
		h.userStates[chatID] = stateWaitingTeacher
		h.send(chatID, "Введите преподавателя в формате Фамилия И.О.")
	case command == "/vip":
		h.handleVIP(chatID)
	case command == "/logout":
		h.handleLogout(chatID)
	case command == "/update":
		h.handleUpdate(chatID, arg == "force")
	case command == "/stat":
		h.handleStat(chatID)
	case command == "/add_excel":
		h.sendError(chatID, "Прикрепите файл расписания к команде /add_excel")
	case h.userStates[chatID] == stateWaitingGroup:
		h.processGroupInput(chatID, text)
	case h.userStates[chatID] == stateWaitingTeacher:
		h.processTeacherInput(chatID, text)
	case parser.IsGroupHeader(strings.ToUpper(text)):
		h.processGroupInput(chatID, text)
	default:
		h.send(chatID, "Не понимаю команду. Используйте кнопки или /help.")
	}
}

func (h *BotHandler) HandleCallback(update tgbotapi.Update) {
	callback := update.CallbackQuery
	data := callback.Data
	chatID := callback.Message.Chat.ID

	// Убираем "часики" на кнопке
	if _, err := h.bot.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		log.WithError(err).Debug("Callback answer failed")
	}

	switch {
	case strings.HasPrefix(data, cbGroup):
		h.bot.Request(tgbotapi.NewDeleteMessage(chatID, callback.Message.MessageID))
		h.processGroupInput(chatID, strings.TrimPrefix(data, cbGroup))
	case strings.HasPrefix(data, cbWeek):
		h.handleWeek(chatID, strings.TrimPrefix(data, cbWeek) == "over")
	}
}

func (h *BotHandler) handleStart(chatID int64) {
	if err := h.db.RegisterUser(chatID); err != nil {
		h.sendError(chatID, "Ошибка регистрации: "+err.Error())
		return
	}

	user, err := h.db.GetUser(chatID)
	if err == nil && user.Group != "" {
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("С возвращением! Ваша группа: %s", user.Group))
		msg.ReplyMarkup = GetMainKeyboard()
		h.bot.Send(msg)
		return
	}

	h.userStates[chatID] = stateWaitingGroup
	msg := tgbotapi.NewMessage(chatID, "Добро пожаловать! Введите номер своей группы, например Б22-191-1")
	msg.ReplyMarkup = GetMainKeyboard()
	h.bot.Send(msg)
}

func (h *BotHandler) handleHelp(chatID int64) {
	h.send(chatID, strings.Join([]string{
		"/today, /tomorrow - пары на сегодня и завтра",
		"/date 02.09 - пары на дату",
		"/week - неделя над или под чертой",
		"/now - текущая и следующая пара",
		"/times - расписание звонков",
		"/group Б22-191-1 - сменить группу",
		"/teacher Фамилия И.О. - пары преподавателя сегодня",
		"/vip - утренняя рассылка расписания",
		"/logout - отвязать группу",
	}, "\n"))
}

// processGroupInput привязывает группу; по началу номера предлагает варианты
func (h *BotHandler) processGroupInput(chatID int64, text string) {
	name := strings.ToUpper(strings.TrimSpace(text))
	if name == "" {
		h.sendError(chatID, "Номер группы не может быть пустым")
		return
	}

	err := h.db.SetUserGroup(chatID, name)
	switch {
	case err == nil:
		delete(h.userStates, chatID)
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("✅ Группа %s сохранена", name))
		msg.ReplyMarkup = GetMainKeyboard()
		h.bot.Send(msg)
		return
	case !errors.Is(err, database.ErrNotFound):
		h.sendError(chatID, "Ошибка сохранения группы: "+err.Error())
		return
	}

	matches, err := h.findGroups(name)
	if err != nil {
		h.sendError(chatID, "Ошибка поиска группы: "+err.Error())
		return
	}
	if len(matches) == 0 {
		h.sendError(chatID, fmt.Sprintf("Группа %s не найдена", name))
		return
	}

	msg := tgbotapi.NewMessage(chatID, "Выберите группу:")
	msg.ReplyMarkup = CreateGroupSelectionKeyboard(matches)
	h.bot.Send(msg)
}

func (h *BotHandler) findGroups(prefix string) ([]string, error) {
	groups, err := h.db.GetGroups()
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, g := range groups {
		if strings.HasPrefix(g.Name, prefix) {
			matches = append(matches, g.Name)
		}
		if len(matches) == maxGroupChoices {
			break
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// userGroup возвращает группу пользователя или просит её выбрать
func (h *BotHandler) userGroup(chatID int64) (string, bool) {
	user, err := h.db.GetUser(chatID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		h.sendError(chatID, "Ошибка получения пользователя: "+err.Error())
		return "", false
	}
	if user.Group == "" {
		h.userStates[chatID] = stateWaitingGroup
		h.send(chatID, "Сначала выберите группу: введите её номер, например Б22-191-1")
		return "", false
	}
	return user.Group, true
}

func (h *BotHandler) now() time.Time {
	return utils.Now(h.config.Timezone)
}

func (h *BotHandler) handleDay(chatID int64, offset int) {
	group, ok := h.userGroup(chatID)
	if !ok {
		return
	}
	h.sendDay(chatID, group, h.now().AddDate(0, 0, offset))
}

func (h *BotHandler) handleDate(chatID int64, arg string) {
	if arg == "" {
		h.sendError(chatID, "Укажите дату: /date 02.09")
		return
	}
	day, err := utils.ParseDate(arg, h.now())
	if err != nil {
		h.sendError(chatID, err.Error())
		return
	}

	group, ok := h.userGroup(chatID)
	if !ok {
		return
	}
	h.sendDay(chatID, group, day)
}

func (h *BotHandler) sendDay(chatID int64, group string, day time.Time) {
	weekday := utils.Weekday(day)
	if weekday >= 6 {
		h.send(chatID, DayTitle(day)+"\n\nВыходной 🎉")
		return
	}

	rows, err := h.db.GetSchedule(group, weekday, utils.IsOverline(day))
	if err != nil {
		h.sendError(chatID, "Ошибка получения расписания: "+err.Error())
		return
	}
	h.send(chatID, FormatDay(DayTitle(day), rows, false))
}

func (h *BotHandler) handleWeekMenu(chatID int64) {
	if _, ok := h.userGroup(chatID); !ok {
		return
	}
	current := utils.LineName(utils.IsOverline(h.now()))
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Сейчас неделя %s чертой. Какую показать?", current))
	msg.ReplyMarkup = CreateWeekKeyboard()
	h.bot.Send(msg)
}

func (h *BotHandler) handleWeek(chatID int64, overline bool) {
	group, ok := h.userGroup(chatID)
	if !ok {
		return
	}

	var days [6][]database.ScheduleRow
	for weekday := range days {
		rows, err := h.db.GetSchedule(group, weekday, overline)
		if err != nil {
			h.sendError(chatID, "Ошибка получения расписания: "+err.Error())
			return
		}
		days[weekday] = rows
	}
	h.send(chatID, FormatWeek(days, overline))
}

func (h *BotHandler) handleNow(chatID int64) {
	group, ok := h.userGroup(chatID)
	if !ok {
		return
	}

	now := h.now()
	weekday := utils.Weekday(now)
	if weekday >= 6 {
		h.send(chatID, "Сегодня выходной 🎉")
		return
	}
	rows, err := h.db.GetSchedule(group, weekday, utils.IsOverline(now))
	if err != nil {
		h.sendError(chatID, "Ошибка получения расписания: "+err.Error())
		return
	}
	h.send(chatID, FormatNow(rows, now))
}

func (h *BotHandler) processTeacherInput(chatID int64, text string) {
	delete(h.userStates, chatID)

	name := strings.TrimSpace(text)
	exists, err := h.db.AuthorExists(name)
	if err != nil {
		h.sendError(chatID, "Ошибка поиска преподавателя: "+err.Error())
		return
	}
	if !exists {
		h.sendError(chatID, fmt.Sprintf("Преподаватель %s не найден. Формат: Фамилия И.О.", name))
		return
	}

	day := h.now()
	weekday := utils.Weekday(day)
	if weekday >= 6 {
		h.send(chatID, name+": сегодня выходной")
		return
	}
	rows, err := h.db.GetAuthorSchedule(name, weekday, utils.IsOverline(day))
	if err != nil {
		h.sendError(chatID, "Ошибка получения расписания: "+err.Error())
		return
	}
	h.send(chatID, FormatDay(name+"\n"+DayTitle(day), rows, true))
}

func (h *BotHandler) handleVIP(chatID int64) {
	user, err := h.db.GetUser(chatID)
	if errors.Is(err, database.ErrNotFound) {
		h.sendError(chatID, "Сначала нажмите /start")
		return
	}
	if err != nil {
		h.sendError(chatID, "Ошибка получения пользователя: "+err.Error())
		return
	}

	if err := h.db.SetVIP(chatID, !user.VIP); err != nil {
		h.sendError(chatID, "Ошибка сохранения: "+err.Error())
		return
	}
	if user.VIP {
		h.send(chatID, "Утренняя рассылка выключена")
		return
	}
	h.send(chatID, fmt.Sprintf("✅ Каждое утро в %d:00 буду присылать расписание на день", h.config.DigestHour))
}

func (h *BotHandler) handleLogout(chatID int64) {
	if err := h.db.SetUserGroup(chatID, ""); err != nil {
		h.sendError(chatID, "Ошибка: "+err.Error())
		return
	}
	h.userStates[chatID] = stateWaitingGroup
	h.send(chatID, "Группа отвязана. Введите номер новой группы")
}

// SendDigest рассылает VIP-пользователям расписание на день
func (h *BotHandler) SendDigest(day time.Time) {
	weekday := utils.Weekday(day)
	if weekday >= 6 {
		return
	}

	users, err := h.db.GetVIPUsers()
	if err != nil {
		log.WithError(err).Error("Failed to get VIP users")
		return
	}

	overline := utils.IsOverline(day)
	for _, u := range users {
		rows, err := h.db.GetSchedule(u.Group, weekday, overline)
		if err != nil {
			log.WithError(err).WithField("group", u.Group).Error("Failed to get schedule")
			continue
		}
		if len(rows) == 0 {
			continue
		}
		h.send(u.TID, "☀️ Доброе утро!\n"+FormatDay(DayTitle(day), rows, false))
	}
	log.Infof("Digest sent to %d users", len(users))
}

// send режет длинный текст на несколько сообщений
func (h *BotHandler) send(chatID int64, text string) {
	for _, part := range SplitMessage(text, MaxMessageLength) {
		if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, part)); err != nil {
			log.WithError(err).WithField("chat", chatID).Error("Send failed")
		}
	}
}

func (h *BotHandler) sendError(chatID int64, message string) {
	msg := tgbotapi.NewMessage(chatID, "❌ "+message)
	h.bot.Send(msg)
}

func (h *BotHandler) isAdmin(chatID int64) bool {
	return h.config.IsAdmin(chatID)
}

func (h *BotHandler) checkAdmin(chatID int64) bool {
	if !h.isAdmin(chatID) {
		h.sendError(chatID, "У вас нет прав для выполнения этой команды")
		return false
	}
	return true
}
