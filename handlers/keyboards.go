package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Кнопки главного меню
const (
	btnToday    = "Сегодня"
	btnTomorrow = "Завтра"
	btnWeek     = "Неделя"
	btnNow      = "Сейчас"
	btnTimes    = "Звонки"
	btnGroup    = "Группа"
	btnTeacher  = "Преподаватель"
)

// Префиксы данных inline-кнопок
const (
	cbGroup = "group_"
	cbWeek  = "week_"
)

func GetMainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnToday),
			tgbotapi.NewKeyboardButton(btnTomorrow),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnWeek),
			tgbotapi.NewKeyboardButton(btnNow),
			tgbotapi.NewKeyboardButton(btnTimes),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnGroup),
			tgbotapi.NewKeyboardButton(btnTeacher),
		),
	)
}

// CreateWeekKeyboard - выбор недели над или под чертой
func CreateWeekKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Над чертой", cbWeek+"over"),
			tgbotapi.NewInlineKeyboardButtonData("Под чертой", cbWeek+"under"),
		),
	)
}

// CreateGroupSelectionKeyboard - найденные группы в две колонки
func CreateGroupSelectionKeyboard(groups []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for i := 0; i < len(groups); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(groups[i], cbGroup+groups[i]),
		}
		if i+1 < len(groups) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(groups[i+1], cbGroup+groups[i+1]))
		}
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
