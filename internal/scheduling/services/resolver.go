package services

import (
	"errors"
	"fmt"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
)

var (
	// ErrNoServicesSpecified возвращается при пустом наборе услуг
	ErrNoServicesSpecified = errors.New("services: no services specified")

	// ErrUnknownService возвращается, когда для услуги нет правила в таблице
	ErrUnknownService = errors.New("services: unknown service")
)

// Options опции резолвера длительности
type Options struct {
	// CustomDuration явное переопределение длительности в минутах.
	// Возвращается как есть, даже если выходит за естественные границы услуги:
	// контроль границ на уровне UX остается за вызывающим кодом.
	CustomDuration *int
}

// ResolveDuration определяет требуемую длительность бронирования в минутах
// для набора запрошенных услуг.
//
// Услуги на одном мероприятии идут параллельно, а не последовательно, поэтому
// длительность комбинации равна максимуму из дефолтных длительностей, а не сумме.
func ResolveDuration(set []domain.ServiceType, opts Options, rules domain.ServiceRules) (int, error) {
	if opts.CustomDuration != nil {
		return *opts.CustomDuration, nil
	}

	if len(set) == 0 {
		return 0, ErrNoServicesSpecified
	}

	max := 0
	for _, svc := range set {
		rule, ok := rules[svc]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownService, svc)
		}
		if rule.DefaultDurationMinutes > max {
			max = rule.DefaultDurationMinutes
		}
	}

	return max, nil
}

// DistinctCount возвращает количество уникальных услуг в наборе
func DistinctCount(set []domain.ServiceType) int {
	seen := make(map[domain.ServiceType]struct{}, len(set))
	for _, svc := range set {
		seen[svc] = struct{}{}
	}
	return len(seen)
}
