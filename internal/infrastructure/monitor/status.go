package monitor

import "time"

// Status reports backend health for the configured storage stack. Postgres
// and Redis are nil-checked: a backend that is not wired always reads true.
type Status struct {
	Bolt       bool      `json:"bolt"`
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	TodoCount  int       `json:"todo_count"`
	LastCheck  time.Time `json:"last_check"`
}

// Healthy reports whether every configured backend responded.
func (s Status) Healthy() bool {
	return s.Bolt && s.PostgreSQL && s.Redis
}
