package schedule

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLessonDates(t *testing.T) {
	// 01.01.2024 — понедельник, 10.01.2024 — среда.
	got := LessonDates(date(2024, 1, 1), date(2024, 1, 10), []string{"Monday", "Wednesday"})

	want := []time.Time{
		date(2024, 1, 1),
		date(2024, 1, 3),
		date(2024, 1, 8),
		date(2024, 1, 10),
	}
	if len(got) != len(want) {
		t.Fatalf("ожидали %d дат, получили %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("дата %d: ожидали %v, получили %v", i, want[i], got[i])
		}
	}
}

func TestLessonDatesSortedAndInRange(t *testing.T) {
	start := date(2024, 2, 1)
	end := date(2024, 5, 31)
	days := []string{"tuesday", "THURSDAY", "saturday"}

	got := LessonDates(start, end, days)
	if len(got) == 0 {
		t.Fatal("пустой результат на четырёх месяцах")
	}
	seen := map[string]bool{}
	for i, d := range got {
		if d.Before(start) || d.After(end) {
			t.Fatalf("дата %v вне диапазона", d)
		}
		if i > 0 && !got[i-1].Before(d) {
			t.Fatalf("нарушен порядок: %v после %v", d, got[i-1])
		}
		switch d.Weekday() {
		case time.Tuesday, time.Thursday, time.Saturday:
		default:
			t.Fatalf("день недели %v не из паттерна", d.Weekday())
		}
		key := FormatDate(d)
		if seen[key] {
			t.Fatalf("дата %s встретилась дважды", key)
		}
		seen[key] = true
	}

	// Обратное включение: каждый подходящий день диапазона присутствует.
	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Tuesday, time.Thursday, time.Saturday:
			n++
		}
	}
	if n != len(got) {
		t.Fatalf("ожидали %d дат, получили %d", n, len(got))
	}
}

func TestLessonDatesEmptySet(t *testing.T) {
	if got := LessonDates(date(2024, 1, 1), date(2024, 12, 31), nil); got != nil {
		t.Fatalf("пустой набор дней должен давать пустую последовательность, получили %v", got)
	}
}

func TestLessonDatesSingleDay(t *testing.T) {
	d := date(2024, 1, 1) // понедельник
	if got := LessonDates(d, d, []string{"monday"}); len(got) != 1 || !got[0].Equal(d) {
		t.Fatalf("ожидали ровно [%v], получили %v", d, got)
	}
	if got := LessonDates(d, d, []string{"friday"}); len(got) != 0 {
		t.Fatalf("ожидали пусто, получили %v", got)
	}
}

func TestContains(t *testing.T) {
	start, end := date(2024, 1, 1), date(2024, 1, 10)
	days := []string{"monday", "wednesday"}

	cases := []struct {
		d    time.Time
		want bool
	}{
		{date(2024, 1, 1), true},   // понедельник в диапазоне
		{date(2024, 1, 2), false},  // вторник
		{date(2024, 1, 10), true},  // последняя среда
		{date(2024, 1, 15), false}, // понедельник, но за концом
		{date(2023, 12, 25), false},
	}
	for _, c := range cases {
		if got := Contains(c.d, start, end, days); got != c.want {
			t.Errorf("Contains(%s) = %v, ожидали %v", FormatDate(c.d), got, c.want)
		}
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("05.03.2024")
	if err != nil {
		t.Fatal(err)
	}
	if FormatDate(d) != "05.03.2024" {
		t.Fatalf("round-trip сломан: %s", FormatDate(d))
	}
	if _, err := ParseDate("2024-03-05"); err == nil {
		t.Fatal("ISO-формат не должен приниматься")
	}
	if _, err := ParseDate("32.01.2024"); err == nil {
		t.Fatal("несуществующая дата не должна приниматься")
	}
}
