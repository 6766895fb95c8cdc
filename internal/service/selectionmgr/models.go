package selectionmgr

// Типы событий интерактивного выбора
const (
	EventBegin  = "begin"
	EventMove   = "move"
	EventEnd    = "end"
	EventCancel = "cancel"
)

// Виды источника ввода
const (
	InputPointer = "pointer"
	InputTouch   = "touch"
)

// CreateSessionRequest запрос на создание сессии выбора слотов
type CreateSessionRequest struct {
	Date           string   `json:"date"`
	Services       []string `json:"services"`
	CustomDuration *int     `json:"customDurationMinutes,omitempty"`
}

// EventRequest входное событие указателя или касания
type EventRequest struct {
	Type      string  `json:"type"`      // begin | move | end | cancel
	Kind      string  `json:"kind"`      // pointer | touch
	TouchID   int64   `json:"touchId"`   // Идентификатор точки касания (для kind=touch)
	SlotIndex int     `json:"slotIndex"` // Индекс слота под указателем; -1 если вне сетки
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// RangeResponse кандидатный диапазон выбора
type RangeResponse struct {
	StartIndex              int  `json:"startIndex"`
	EndIndex                int  `json:"endIndex"`
	RequiredDurationMinutes int  `json:"requiredDurationMinutes"`
	Valid                   bool `json:"valid"`
}

// SelectionResponse итоговый закоммиченный выбор
type SelectionResponse struct {
	Date            string   `json:"date"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	Services        []string `json:"services"`
	DurationMinutes int      `json:"durationMinutes"`
}

// SessionResponse текущее состояние сессии выбора
type SessionResponse struct {
	SessionID       string             `json:"sessionId"`
	Date            string             `json:"date"`
	Phase           string             `json:"phase"`
	Range           *RangeResponse     `json:"range,omitempty"`
	Committed       *SelectionResponse `json:"committed,omitempty"`
	SnapshotVersion uint64             `json:"snapshotVersion"`
	SlotCount       int                `json:"slotCount"`
	Blocked         bool               `json:"blocked"`
}
