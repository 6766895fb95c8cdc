package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
)

func utcOptions() Options {
	return Options{Location: time.UTC}
}

func TestGenerateDefaultDay(t *testing.T) {
	seq, err := Generate("2026-09-10", utcOptions())
	require.NoError(t, err)

	// Окно 08:00-23:00 с шагом 15 минут дает 60 слотов
	require.Len(t, seq, 60)

	require.Equal(t, time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC), seq[0].Start)
	require.Equal(t, time.Date(2026, 9, 10, 23, 0, 0, 0, time.UTC), seq[len(seq)-1].End)

	for i, slot := range seq {
		require.Equal(t, i, slot.Index)
		require.True(t, slot.Available)
		require.Equal(t, 15*time.Minute, slot.Duration())
		if i > 0 {
			// Слоты непрерывны и упорядочены
			require.True(t, slot.Start.Equal(seq[i-1].End))
		}
	}
}

func TestGenerateCustomGranularity(t *testing.T) {
	opts := utcOptions()
	opts.OpenTime = "10:00"
	opts.CloseTime = "12:00"
	opts.GranularityMinutes = 30

	seq, err := Generate("2026-09-10", opts)
	require.NoError(t, err)
	require.Len(t, seq, 4)
	require.Equal(t, time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC), seq[0].Start)
	require.Equal(t, time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC), seq[3].End)
}

func TestGenerateTodayExcludesPastSlots(t *testing.T) {
	opts := utcOptions()
	opts.Now = time.Date(2026, 9, 10, 10, 5, 0, 0, time.UTC)

	seq, err := Generate("2026-09-10", opts)
	require.NoError(t, err)

	// Слоты 08:00..10:00 начинаются раньше Now и исключаются целиком
	require.Len(t, seq, 51)
	require.Equal(t, time.Date(2026, 9, 10, 10, 15, 0, 0, time.UTC), seq[0].Start)

	// Нумерация идет по оставшейся последовательности
	for i, slot := range seq {
		require.Equal(t, i, slot.Index)
	}
}

func TestGenerateFutureDateKeepsFullDay(t *testing.T) {
	opts := utcOptions()
	opts.Now = time.Date(2026, 9, 10, 22, 0, 0, 0, time.UTC)

	seq, err := Generate("2026-09-11", opts)
	require.NoError(t, err)
	require.Len(t, seq, 60)
}

func TestGenerateCrossMidnightWindow(t *testing.T) {
	opts := utcOptions()
	opts.OpenTime = "20:00"
	opts.CloseTime = "02:00"

	seq, err := Generate("2026-09-10", opts)
	require.NoError(t, err)

	// CloseTime <= OpenTime: окно закрывается на следующей календарной дате
	require.Len(t, seq, 24)
	require.Equal(t, time.Date(2026, 9, 10, 20, 0, 0, 0, time.UTC), seq[0].Start)
	require.Equal(t, time.Date(2026, 9, 11, 2, 0, 0, 0, time.UTC), seq[len(seq)-1].End)
}

func TestGenerateDSTTransitions(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	opts := Options{Location: loc, OpenTime: "20:00", CloseTime: "04:00"}

	// Ночь перевода стрелок вперед (в 02:00 наступает 03:00): окно 20:00-04:00
	// длится 7 астрономических часов вместо 8
	seq, err := Generate("2026-03-07", opts)
	require.NoError(t, err)
	require.Len(t, seq, 28)
	require.Equal(t, time.Date(2026, 3, 7, 20, 0, 0, 0, loc), seq[0].Start)
	require.True(t, seq[len(seq)-1].End.Equal(time.Date(2026, 3, 8, 4, 0, 0, 0, loc)))

	for i := 1; i < len(seq); i++ {
		// Последовательность остается непрерывной в абсолютном времени
		require.True(t, seq[i].Start.Equal(seq[i-1].End))
		require.Equal(t, 15*time.Minute, seq[i].Duration())
	}

	// На стене часов слот после 01:45 начинается в 03:00
	jump := seq[23]
	require.Equal(t, "01:45", jump.Start.Format("15:04"))
	require.Equal(t, "03:00", jump.End.Format("15:04"))

	// Ночь перевода назад: час 01:00-02:00 проживается дважды, окно длится 9 часов
	seq, err = Generate("2026-10-31", opts)
	require.NoError(t, err)
	require.Len(t, seq, 36)
	require.True(t, seq[len(seq)-1].End.Equal(time.Date(2026, 11, 1, 4, 0, 0, 0, loc)))
	require.Equal(t, 9*time.Hour, seq[len(seq)-1].End.Sub(seq[0].Start))
}

func TestGenerateInvalidDate(t *testing.T) {
	for _, date := range []string{"", "not-a-date", "2026-13-40", "10.09.2026"} {
		_, err := Generate(date, utcOptions())
		require.ErrorIs(t, err, ErrInvalidDate, "date=%q", date)
	}
}

func TestWindow(t *testing.T) {
	start, end, err := Window("2026-09-10", utcOptions())
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2026, 9, 10, 23, 0, 0, 0, time.UTC), end)

	opts := utcOptions()
	opts.OpenTime = "20:00"
	opts.CloseTime = "02:00"
	start, end, err = Window("2026-09-10", opts)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 9, 10, 20, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2026, 9, 11, 2, 0, 0, 0, time.UTC), end)

	_, _, err = Window("", utcOptions())
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestFromConfig(t *testing.T) {
	cfg := domain.DefaultScheduleConfig()
	cfg.Timezone = "UTC"
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	opts := FromConfig(cfg, now)
	require.Equal(t, cfg.OpenTime, opts.OpenTime)
	require.Equal(t, cfg.CloseTime, opts.CloseTime)
	require.Equal(t, cfg.SlotGranularityMinutes, opts.GranularityMinutes)
	require.Equal(t, time.UTC, opts.Location)
	require.Equal(t, now, opts.Now)
}

func TestAt(t *testing.T) {
	seq, err := Generate("2026-09-10", utcOptions())
	require.NoError(t, err)

	slot, ok := At(seq, 0)
	require.True(t, ok)
	require.Equal(t, seq[0], slot)

	_, ok = At(seq, -1)
	require.False(t, ok)
	_, ok = At(seq, len(seq))
	require.False(t, ok)
}
