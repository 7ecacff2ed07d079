package alarm

import (
	"testing"
	"time"
)

func TestRepeatLabel(t *testing.T) {
	cases := []struct {
		name string
		days []DayOfWeek
		want string
	}{
		{"empty", nil, "없음"},
		{"every day", DaysInOrder, "매일"},
		{"weekdays", []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday}, "주중 (월~금)"},
		{"weekend", []DayOfWeek{Saturday, Sunday}, "주말 (토~일)"},
		{"three days", []DayOfWeek{Monday, Wednesday, Friday}, "3일 선택됨"},
		{"single day", []DayOfWeek{Sunday}, "1일 선택됨"},
		{"six days", []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}, "6일 선택됨"},
	}

	for _, tc := range cases {
		if got := RepeatLabel(tc.days); got != tc.want {
			t.Errorf("%s: RepeatLabel = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestRepeatLabelIgnoresOrderAndDuplicates(t *testing.T) {
	// 集合语义：顺序与重复不影响标签
	shuffled := []DayOfWeek{Friday, Monday, Wednesday, Thursday, Tuesday, Monday}
	if got := RepeatLabel(shuffled); got != "주중 (월~금)" {
		t.Fatalf("RepeatLabel = %q, want %q", got, "주중 (월~금)")
	}
}

func TestWeekdayNumber(t *testing.T) {
	// 平台每周触发器编号：1=周日..7=周六
	expected := map[DayOfWeek]int{
		Sunday:    1,
		Monday:    2,
		Tuesday:   3,
		Wednesday: 4,
		Thursday:  5,
		Friday:    6,
		Saturday:  7,
	}
	for day, number := range expected {
		if got := day.WeekdayNumber(); got != number {
			t.Errorf("%s: WeekdayNumber = %d, want %d", day, got, number)
		}
	}

	if got := DayOfWeek("holiday").WeekdayNumber(); got != 0 {
		t.Errorf("unknown day: WeekdayNumber = %d, want 0", got)
	}
}

func TestNormalizeDays(t *testing.T) {
	got := NormalizeDays([]DayOfWeek{Saturday, Monday, Saturday, Sunday})
	want := []DayOfWeek{Sunday, Monday, Saturday}

	if len(got) != len(want) {
		t.Fatalf("NormalizeDays returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NormalizeDays returned %v, want %v", got, want)
		}
	}
}

func TestAlarmTimeOccurrenceOn(t *testing.T) {
	day := time.Date(2024, 5, 17, 22, 41, 37, 123, time.Local)
	at := AlarmTime{Hours: 7, Minutes: 30}

	got := at.OccurrenceOn(day)
	want := time.Date(2024, 5, 17, 7, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("OccurrenceOn = %v, want %v", got, want)
	}
}

func TestAlarmTimeValid(t *testing.T) {
	valid := []AlarmTime{{0, 0}, {23, 59}, {7, 30}}
	for _, at := range valid {
		if !at.Valid() {
			t.Errorf("%v: expected valid", at)
		}
	}

	invalid := []AlarmTime{{24, 0}, {-1, 0}, {0, 60}, {0, -5}}
	for _, at := range invalid {
		if at.Valid() {
			t.Errorf("%v: expected invalid", at)
		}
	}
}
