package cart

// State of the sync state machine
type State int

const (
	// Idle нет несинхронизированных изменений
	Idle State = iota
	// Waiting изменения накоплены, ждём окончания окна тишины
	Waiting
	// Syncing запрос на сервер в процессе
	Syncing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Waiting:
		return "waiting"
	case Syncing:
		return "syncing"
	default:
		return "unknown"
	}
}
