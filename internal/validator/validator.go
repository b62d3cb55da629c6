// package validator implements the field validation rules for catalog records and auth forms.
//
// All validators are pure functions. A validation pass evaluates an
// ordered rule table and returns a fresh [State]; callers chain the
// cross-field checks (email format, launch date validity, password
// match) only after every required field passed.
package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/vmsouza/musicctl/internal/models"
)

// Lowercase only. Uppercase anywhere in the address is rejected, the
// matcher never normalizes its input.
var emailRegex = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,4}$`)

// Field is the validation status of a single input field.
type Field struct {
	Message string
	Invalid bool
}

// State maps field names to their validation status. Every validated
// field has an entry after a pass; fields that pass are reset to clear.
type State map[string]Field

// Valid reports whether no field is marked invalid.
func (s State) Valid() bool {
	for _, f := range s {
		if f.Invalid {
			return false
		}
	}
	return true
}

// Message returns the error message for the given field, empty when clear.
func (s State) Message(field string) string {
	return s[field].Message
}

// Rule declares one field in a validation pass. Rules are evaluated in
// the order they appear in the table.
type Rule struct {
	Field    string
	Value    string
	Required bool
}

// Required evaluates the rule table and marks every required field whose
// value is empty with "<Capitalized Field> is required!".
func Required(rules []Rule) State {
	state := make(State, len(rules))
	for _, r := range rules {
		if r.Required && r.Value == "" {
			state[r.Field] = Field{
				Message: fmt.Sprintf("%s is required!", CapitalizeField(r.Field)),
				Invalid: true,
			}
			continue
		}
		state[r.Field] = Field{}
	}
	return state
}

// CapitalizeField turns a camelCase field identifier into a display
// label: split before each uppercase letter, uppercase the first letter
// of the whole string (e.g. "launchDate" becomes "Launch Date").
func CapitalizeField(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.ToUpper(r) == r {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsNotEmail reports whether the string fails the address pattern.
func IsNotEmail(email string) bool {
	return !emailRegex.MatchString(email)
}

// IsNotLaunchDateValid reports whether a "dd/mm/yyyy" string names a day
// that does not exist on the calendar. The day, month, and year are read
// back from a constructed [time.Date]; rollover (31/02 becoming 03/03)
// exposes impossible dates without a lookup table.
func IsNotLaunchDateValid(launchDate string) bool {
	parts := strings.Split(launchDate, "/")
	if len(parts) != 3 {
		return true
	}

	day, errD := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	year, errY := strconv.Atoi(parts[2])
	if errD != nil || errM != nil || errY != nil {
		return true
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return day != date.Day() || time.Month(month) != date.Month() || year != date.Year()
}

// PasswordsMismatch reports whether the two passwords differ.
func PasswordsMismatch(password, confirm string) bool {
	return password != confirm
}

// CheckMusic runs the full validation pass for a music record as entered
// in the edit form (launch date masked as dd/mm/yyyy). Returns the
// per-field state plus a summary message for the cross-field failure, or
// "" when the record is valid. ID, views number, and feat are never
// required.
func CheckMusic(m models.Music) (State, string) {
	state := Required([]Rule{
		{Field: "title", Value: m.Title, Required: true},
		{Field: "artist", Value: m.Artist, Required: true},
		{Field: "launchDate", Value: m.LaunchDate, Required: true},
		{Field: "duration", Value: m.Duration, Required: true},
	})
	if !state.Valid() {
		return state, ""
	}

	if IsNotLaunchDateValid(m.LaunchDate) {
		return state, "This Launch Date does not exist!"
	}

	return state, ""
}

// CheckCredentials runs the validation pass for the login form.
func CheckCredentials(c models.Credentials) (State, string) {
	state := Required([]Rule{
		{Field: "email", Value: c.Email, Required: true},
		{Field: "password", Value: c.Password, Required: true},
	})
	if !state.Valid() {
		return state, ""
	}

	if IsNotEmail(c.Email) {
		return state, "Valid E-Mail format is required!"
	}

	return state, ""
}

// CheckNewUser runs the validation pass for the sign-up form: required
// fields, confirm-password presence, email format, then password match.
func CheckNewUser(u models.User, confirmPassword string) (State, string) {
	state := Required([]Rule{
		{Field: "name", Value: u.Name, Required: true},
		{Field: "email", Value: u.Email, Required: true},
		{Field: "password", Value: u.Password, Required: true},
	})
	if !state.Valid() {
		state["confirmPassword"] = Field{}
		return state, ""
	}

	confirm := Required([]Rule{
		{Field: "confirmPassword", Value: confirmPassword, Required: true},
	})
	state["confirmPassword"] = confirm["confirmPassword"]
	if !state.Valid() {
		return state, ""
	}

	if IsNotEmail(u.Email) {
		return state, "Valid E-Mail format is required!"
	}

	if PasswordsMismatch(u.Password, confirmPassword) {
		return state, "Passwords must be the same!"
	}

	return state, ""
}
