// internal/domain/homework/status.go
package homework

// Status is the review state of a submitted homework as reported by the API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// verdicts maps every known status to the sentence shown in the chat.
var verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict returns the human-readable sentence for s.
func (s Status) Verdict() (string, bool) {
	v, ok := verdicts[s]
	return v, ok
}

// Known reports whether s is one of the documented statuses.
func (s Status) Known() bool {
	_, ok := verdicts[s]
	return ok
}
