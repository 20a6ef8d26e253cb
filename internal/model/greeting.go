package model

import "time"

type GreetingEntry struct {
	Name      string
	CachedAt  time.Time
	LastGreet time.Time // zero means never greeted
}
