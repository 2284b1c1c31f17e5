package dailyduty

import (
	"encoding/json"
	"strconv"
	"time"

	dutyDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/dailyduty"
	coreuser "github.com/rowalls/uh-internal-project/internal/core/user"
)

const (
	DutyEmail           = "email"
	DutyVoicemail       = "voicemail"
	DutyTickets         = "tickets"
	DutyPrinterRequests = "printer_requests"
)

// Names lists the duties in display order.
var Names = []string{DutyEmail, DutyVoicemail, DutyTickets, DutyPrinterRequests}

const (
	StatusOK    = "ok"
	StatusStale = "stale"

	ColorOK    = "#060"
	ColorStale = "#900"

	// FreshnessWindow is how long an acknowledgement keeps a duty green.
	FreshnessWindow = 24 * time.Hour
	TimeLayout      = "2006-01-02 15:04"

	DeletedUser     = "[Deleted User]"
	ConnectionError = "Connection Error!"
	unknownCount    = "?"
)

func IsKnown(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// Count is a backend count that may be unavailable. Unavailable counts are
// shown as "?".
type Count struct {
	value int
	known bool
}

func KnownCount(n int) Count {
	return Count{value: n, known: true}
}

func UnknownCount() Count {
	return Count{}
}

func (c Count) Value() (int, bool) {
	return c.value, c.known
}

func (c Count) String() string {
	if !c.known {
		return unknownCount
	}
	return strconv.Itoa(c.value)
}

func (c Count) MarshalJSON() ([]byte, error) {
	if !c.known {
		return json.Marshal(unknownCount)
	}
	return json.Marshal(c.value)
}

// Duty is the stored acknowledgement state of one duty.
type Duty struct {
	ID          int64
	Name        string
	LastChecked time.Time
	LastUserID  *int64
	LastUser    *coreuser.User
}

func FromDataModel(row *dutyDatamodel.Duty) *Duty {
	d := &Duty{
		ID:          row.ID,
		Name:        row.Name,
		LastChecked: row.LastChecked,
		LastUserID:  row.LastUserID,
	}
	if row.LastUser != nil {
		d.LastUser = &coreuser.User{
			ID:        row.LastUser.ID,
			Username:  row.LastUser.Username,
			FirstName: row.LastUser.FirstName,
			LastName:  row.LastUser.LastName,
		}
	}
	return d
}

func (d *Duty) LastUserName() string {
	if d.LastUser == nil {
		return DeletedUser
	}
	return d.LastUser.FullName()
}

// Status is what the duty board shows for one duty.
type Status struct {
	Name        string `json:"name"`
	Count       Count  `json:"count"`
	Status      string `json:"status"`
	Color       string `json:"status_color"`
	LastChecked string `json:"last_checked"`
	LastUser    string `json:"last_user"`
}

// Evaluate combines the stored state with a live count. A duty is ok only
// when it was checked within the freshness window.
func Evaluate(d *Duty, count Count, now time.Time) Status {
	st := Status{
		Name:        d.Name,
		Count:       count,
		LastChecked: d.LastChecked.Format(TimeLayout),
		LastUser:    d.LastUserName(),
	}
	if d.LastChecked.After(now.Add(-FreshnessWindow)) {
		st.Status, st.Color = StatusOK, ColorOK
	} else {
		st.Status, st.Color = StatusStale, ColorStale
	}
	return st
}

// Unavailable is shown when the stored state of a duty cannot be read.
func Unavailable(name string, now time.Time) Status {
	return Status{
		Name:        name,
		Count:       UnknownCount(),
		Status:      StatusStale,
		Color:       ColorStale,
		LastChecked: now.Format(TimeLayout),
		LastUser:    ConnectionError,
	}
}
