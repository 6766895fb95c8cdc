package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	"github.com/m04kA/EVT-SchedulingService/pkg/ptr"
)

func TestResolveDurationSingleService(t *testing.T) {
	rules := domain.DefaultServiceRules()

	got, err := ResolveDuration([]domain.ServiceType{domain.ServiceDJ}, Options{}, rules)
	require.NoError(t, err)
	require.Equal(t, 300, got)

	got, err = ResolveDuration([]domain.ServiceType{domain.ServiceKaraoke}, Options{}, rules)
	require.NoError(t, err)
	require.Equal(t, 180, got)
}

func TestResolveDurationMaxNotSum(t *testing.T) {
	rules := domain.DefaultServiceRules()

	// Услуги идут параллельно: комбинация dj+karaoke занимает 300 минут, а не 480
	got, err := ResolveDuration(
		[]domain.ServiceType{domain.ServiceDJ, domain.ServiceKaraoke},
		Options{},
		rules,
	)
	require.NoError(t, err)
	require.Equal(t, 300, got)

	got, err = ResolveDuration(
		[]domain.ServiceType{domain.ServiceKaraoke, domain.ServicePhotography, domain.ServiceDJ},
		Options{},
		rules,
	)
	require.NoError(t, err)
	require.Equal(t, 300, got)
}

func TestResolveDurationCustomOverride(t *testing.T) {
	rules := domain.DefaultServiceRules()

	got, err := ResolveDuration([]domain.ServiceType{domain.ServiceDJ}, Options{CustomDuration: ptr.Ptr(120)}, rules)
	require.NoError(t, err)
	require.Equal(t, 120, got)

	// Переопределение возвращается как есть даже вне естественных границ услуги
	got, err = ResolveDuration([]domain.ServiceType{domain.ServiceKaraoke}, Options{CustomDuration: ptr.Ptr(1000)}, rules)
	require.NoError(t, err)
	require.Equal(t, 1000, got)

	// и даже при пустом наборе услуг
	got, err = ResolveDuration(nil, Options{CustomDuration: ptr.Ptr(120)}, rules)
	require.NoError(t, err)
	require.Equal(t, 120, got)
}

func TestResolveDurationEmptySet(t *testing.T) {
	_, err := ResolveDuration(nil, Options{}, domain.DefaultServiceRules())
	require.ErrorIs(t, err, ErrNoServicesSpecified)

	_, err = ResolveDuration([]domain.ServiceType{}, Options{}, domain.DefaultServiceRules())
	require.ErrorIs(t, err, ErrNoServicesSpecified)
}

func TestResolveDurationUnknownService(t *testing.T) {
	_, err := ResolveDuration(
		[]domain.ServiceType{domain.ServiceDJ, domain.ServiceType("fire-show")},
		Options{},
		domain.DefaultServiceRules(),
	)
	require.ErrorIs(t, err, ErrUnknownService)
}

func TestDistinctCount(t *testing.T) {
	require.Equal(t, 0, DistinctCount(nil))
	require.Equal(t, 1, DistinctCount([]domain.ServiceType{domain.ServiceDJ}))
	require.Equal(t, 1, DistinctCount([]domain.ServiceType{domain.ServiceDJ, domain.ServiceDJ, domain.ServiceDJ}))
	require.Equal(t, 3, DistinctCount([]domain.ServiceType{
		domain.ServiceDJ, domain.ServiceKaraoke, domain.ServicePhotography, domain.ServiceDJ,
	}))
}
