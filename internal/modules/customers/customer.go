package customers

// Customer is the remote customer record; ID is server assigned, Phone is the
// natural key in +254 form.
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Outcome string

const (
	OutcomeFound         Outcome = "found"
	OutcomeCreated       Outcome = "created"
	OutcomeRaceRecovered Outcome = "race_recovered"
)

type createRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
