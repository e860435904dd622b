package aggregator

import "time"

// Greetings by part of the day.
const (
	GreetingMorning = "Доброе утро"
	GreetingDay     = "Добрый день"
	GreetingEvening = "Добрый вечер"
	GreetingNight   = "Доброй ночи"
)

// Greeting picks the greeting for the hour of t: [5,12) morning, [12,17)
// day, [17,23) evening, night otherwise.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return GreetingMorning
	case h >= 12 && h < 17:
		return GreetingDay
	case h >= 17 && h < 23:
		return GreetingEvening
	default:
		return GreetingNight
	}
}

// Greeting returns the greeting for the current time of the injected clock.
func (a *Aggregator) Greeting() string {
	return Greeting(a.Now())
}
