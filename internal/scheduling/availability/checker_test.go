package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/padding"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/slots"
	"github.com/m04kA/EVT-SchedulingService/pkg/types"
)

const testDate = "2026-09-10"

func testDay() time.Time {
	return time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
}

func testChecker() *Checker {
	return NewChecker(padding.DefaultConfig(), slots.Options{Location: time.UTC})
}

func booking(start, end string, services ...domain.ServiceType) *domain.Booking {
	return &domain.Booking{
		ID:        1,
		UserID:    1,
		Date:      testDay(),
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Services:  services,
		Status:    domain.StatusConfirmed,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 9, 10, hour, minute, 0, 0, time.UTC)
}

func TestIsAvailableOccupiedWindow(t *testing.T) {
	c := testChecker()
	// Бронирование 14:00-18:00, одна услуга: занятое окно с полным паддингом
	// [12:30, 19:00): монтаж 60 + буфер 30 до, демонтаж 30 + буфер 30 после
	existing := []*domain.Booking{booking("14:00", "18:00", domain.ServiceDJ)}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"внутри занятого окна", at(13, 30), at(14, 0), false},
		{"пересекает начало занятого окна", at(12, 0), at(13, 0), false},
		{"пересекает конец занятого окна", at(18, 30), at(19, 30), false},
		{"задолго до", at(10, 0), at(10, 15), true},
		{"заканчивается ровно в начале окна", at(12, 0), at(12, 30), true},
		{"начинается ровно в конце окна", at(19, 0), at(20, 0), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.IsAvailable(testDate, tc.start, tc.end, existing, FullPadding())
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestIsAvailableBufferOnly(t *testing.T) {
	c := testChecker()
	existing := []*domain.Booking{booking("14:00", "18:00", domain.ServiceDJ)}

	// Без монтажа/демонтажа занятое окно [13:30, 18:30)
	got, err := c.IsAvailable(testDate, at(13, 0), at(13, 30), existing, BufferOnly())
	require.NoError(t, err)
	require.True(t, got)

	got, err = c.IsAvailable(testDate, at(13, 0), at(13, 45), existing, BufferOnly())
	require.NoError(t, err)
	require.False(t, got)
}

func TestIsAvailableExtendedSetup(t *testing.T) {
	c := testChecker()
	// Три уникальные услуги: монтаж 90 минут, занятое окно начинается в 12:00
	existing := []*domain.Booking{booking("14:00", "18:00",
		domain.ServiceDJ, domain.ServiceKaraoke, domain.ServicePhotography)}

	got, err := c.IsAvailable(testDate, at(12, 0), at(12, 30), existing, FullPadding())
	require.NoError(t, err)
	require.False(t, got)

	got, err = c.IsAvailable(testDate, at(11, 30), at(12, 0), existing, FullPadding())
	require.NoError(t, err)
	require.True(t, got)
}

func TestIsAvailableInactiveBookingsIgnored(t *testing.T) {
	c := testChecker()
	cancelled := booking("14:00", "18:00", domain.ServiceDJ)
	cancelled.Status = domain.StatusCancelledByUser

	got, err := c.IsAvailable(testDate, at(14, 0), at(15, 0), []*domain.Booking{cancelled}, FullPadding())
	require.NoError(t, err)
	require.True(t, got)
}

func TestIsAvailableOutsideWindowIsNotAnError(t *testing.T) {
	c := testChecker()

	// До открытия
	got, err := c.IsAvailable(testDate, at(6, 0), at(7, 0), nil, FullPadding())
	require.NoError(t, err)
	require.False(t, got)

	// Заканчивается после закрытия
	got, err = c.IsAvailable(testDate, at(22, 30), at(23, 30), nil, FullPadding())
	require.NoError(t, err)
	require.False(t, got)
}

func TestIsAvailableInvalidRange(t *testing.T) {
	c := testChecker()

	_, err := c.IsAvailable(testDate, at(15, 0), at(14, 0), nil, FullPadding())
	require.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = c.IsAvailable(testDate, at(14, 0), at(14, 0), nil, FullPadding())
	require.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = c.IsAvailable(testDate, time.Time{}, at(14, 0), nil, FullPadding())
	require.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestIsAvailableInvalidDate(t *testing.T) {
	c := testChecker()

	_, err := c.IsAvailable("not-a-date", at(10, 0), at(11, 0), nil, FullPadding())
	require.ErrorIs(t, err, slots.ErrInvalidDate)
}

func TestIsAvailableCrossMidnightBooking(t *testing.T) {
	// Окно 12:00-04:00 следующего дня
	c := NewChecker(padding.DefaultConfig(), slots.Options{
		OpenTime:  "12:00",
		CloseTime: "04:00",
		Location:  time.UTC,
	})

	// Бронирование 22:00-02:00 переходит через полночь:
	// занятое окно [20:30, 03:00 следующего дня)
	existing := []*domain.Booking{booking("22:00", "02:00", domain.ServiceDJ)}

	nextDay := time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)
	got, err := c.IsAvailable(testDate, nextDay.Add(time.Hour), nextDay.Add(2*time.Hour), existing, FullPadding())
	require.NoError(t, err)
	require.False(t, got)

	got, err = c.IsAvailable(testDate, nextDay.Add(3*time.Hour), nextDay.Add(4*time.Hour), existing, FullPadding())
	require.NoError(t, err)
	require.True(t, got)
}

func TestAnnotate(t *testing.T) {
	c := testChecker()

	seq, err := slots.Generate(testDate, slots.Options{Location: time.UTC})
	require.NoError(t, err)

	existing := []*domain.Booking{booking("14:00", "18:00", domain.ServiceDJ)}
	annotated := c.Annotate(seq, existing, FullPadding())
	require.Len(t, annotated, len(seq))

	occStart := at(12, 30)
	occEnd := at(19, 0)
	for _, slot := range annotated {
		overlapsOccupied := slot.Start.Before(occEnd) && occStart.Before(slot.End)
		require.Equal(t, !overlapsOccupied, slot.Available, "slot %d (%s)", slot.Index, slot.Start)
	}
}

func TestAnnotateDoesNotMutateInput(t *testing.T) {
	c := testChecker()

	seq, err := slots.Generate(testDate, slots.Options{Location: time.UTC})
	require.NoError(t, err)

	existing := []*domain.Booking{booking("08:00", "23:00", domain.ServiceDJ)}
	_ = c.Annotate(seq, existing, FullPadding())

	for _, slot := range seq {
		require.True(t, slot.Available)
	}
}
