package validation

import (
	"time"
)

// DateLayout - основной формат дат в системе
const DateLayout = "2006-01-02"

// inputLayouts - форматы, которые принимаются при вводе данных
var inputLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006", "2006/01/02"}

// ParseDate разбирает дату в любом из поддерживаемых форматов
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsDateValid проверяет дату в формате YYYY-MM-DD
func IsDateValid(value string) bool {
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// NormalizeDate приводит дату к формату YYYY-MM-DD; нераспознанное значение
// возвращается без изменений
func NormalizeDate(value string) string {
	t, ok := ParseDate(value)
	if !ok {
		return value
	}
	return t.Format(DateLayout)
}

// FormatDate форматирует дату как DD/MM/YYYY
func FormatDate(value string) string {
	t, ok := ParseDate(value)
	if !ok {
		return value
	}
	return t.Format("02/01/2006")
}

// CalculateAge возвращает возраст в полных годах на момент now
func CalculateAge(birthDate string, now time.Time) (int, bool) {
	dob, err := time.Parse(DateLayout, birthDate)
	if err != nil {
		return 0, false
	}

	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age, true
}

// DaysBetween возвращает абсолютную разницу в днях между двумя датами
func DaysBetween(date1, date2 string) (int, bool) {
	t1, err := time.Parse(DateLayout, date1)
	if err != nil {
		return 0, false
	}
	t2, err := time.Parse(DateLayout, date2)
	if err != nil {
		return 0, false
	}

	days := int(t2.Sub(t1).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days, true
}
