package domain

import "context"

// DBClock reports the database server's current time, rendered as text.
type DBClock interface {
	Now(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
}

// DBTimeOutcome is the result of a database time query. Exactly one field is set.
type DBTimeOutcome struct {
	DBTime string `json:"db_time,omitempty"`
	Error  string `json:"error,omitempty"`
}

// DBInfo describes the configured database without credentials.
type DBInfo struct {
	Host string `json:"host"`
	Port int    `json:"port"`
	Name string `json:"name"`
}

// Greeting is the /api/hello payload.
type Greeting struct {
	Message string `json:"message"`
	DB      DBInfo `json:"db"`
}
