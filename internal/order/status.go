package order

type Status string

const (
	StatusPlaced     Status = "placed"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Steps is the forward fulfilment chain shown to customers.
var Steps = []Status{StatusPlaced, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered}

// AllStatuses lists every valid status, cancelled last.
var AllStatuses = append(append([]Status{}, Steps...), StatusCancelled)

func ParseStatus(s string) (Status, bool) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func (s Status) stepIndex() int {
	for i, st := range Steps {
		if st == s {
			return i
		}
	}
	return -1
}

// CanTransition reports whether an order may move from one status to
// another. Strict mode allows one step forward along Steps, or cancelled
// from any non-terminal status. Permissive mode allows any pair of valid
// statuses. Setting the current status again is always allowed.
func CanTransition(from, to Status, permissive bool) bool {
	if _, ok := ParseStatus(string(to)); !ok {
		return false
	}
	if from == to {
		return true
	}
	if permissive {
		return true
	}
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	fi, ti := from.stepIndex(), to.stepIndex()
	return fi >= 0 && ti == fi+1
}

// Progress is the customer-facing projection of a status.
type Progress struct {
	Status         Status   `json:"status"`
	StepsCompleted int      `json:"stepsCompleted"`
	Steps          []Status `json:"steps"`
	Cancelled      bool     `json:"cancelled"`
	Delivered      bool     `json:"delivered"`
}

// ProgressOf maps a status onto the step chain. A cancelled order reports
// zero completed steps.
func ProgressOf(s Status) Progress {
	p := Progress{
		Status:    s,
		Steps:     Steps,
		Cancelled: s == StatusCancelled,
		Delivered: s == StatusDelivered,
	}
	if i := s.stepIndex(); i >= 0 {
		p.StepsCompleted = i + 1
	}
	return p
}
