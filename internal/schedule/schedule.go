// Package schedule вычисляет конкретные даты занятий группы по её
// недельному паттерну дней и границам срока обучения. Чистые функции,
// состояние не хранится — пересчитываем на каждый запрос, диапазон
// ограничен учебным сроком.
package schedule

import (
	"strings"
	"time"
)

// DateFormat — единый формат дат в API (dd.mm.yyyy).
const DateFormat = "02.01.2006"

// LessonDates возвращает по возрастанию все даты из [start, end]
// включительно, чей день недели входит в days. Имена дней сравниваются
// без учёта регистра ("Monday" == "monday"). start > end — забота
// вызывающего, тогда результат пуст.
func LessonDates(start, end time.Time, days []string) []time.Time {
	set := make(map[string]struct{}, len(days))
	for _, d := range days {
		set[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}

	start = truncate(start)
	end = truncate(end)

	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if _, ok := set[WeekdayName(d)]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Contains — входит ли date в расписание; та же проверка, что и при
// обходе в LessonDates, но без построения всей последовательности.
func Contains(date, start, end time.Time, days []string) bool {
	date = truncate(date)
	if date.Before(truncate(start)) || date.After(truncate(end)) {
		return false
	}
	name := WeekdayName(date)
	for _, d := range days {
		if strings.ToLower(strings.TrimSpace(d)) == name {
			return true
		}
	}
	return false
}

// WeekdayName — английское имя дня недели в нижнем регистре,
// как хранится в справочнике days.
func WeekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// ParseDate разбирает дату запроса в формате dd.mm.yyyy.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, strings.TrimSpace(s))
}

func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// truncate нормализует до полуночи UTC: сравниваем календарные дни,
// а не моменты времени.
func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
