package analytics

// Time-of-day greetings. The evening band starts at 17:00 — the earlier of
// the two boundaries the product has used; see DESIGN.md.
const (
	GreetingMorning   = "Доброе утро"
	GreetingAfternoon = "Добрый день"
	GreetingEvening   = "Добрый вечер"
	GreetingNight     = "Доброй ночи"
)

// Greeting returns the salutation for the given hour of day [0,24).
func Greeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return GreetingMorning
	case hour >= 12 && hour < 17:
		return GreetingAfternoon
	case hour >= 17 && hour < 23:
		return GreetingEvening
	default:
		return GreetingNight
	}
}
