package validator

import (
	"testing"

	"github.com/vmsouza/musicctl/internal/models"
)

func TestCapitalizeField(t *testing.T) {
	cases := []struct {
		field string
		want  string
	}{
		{"launchDate", "Launch Date"},
		{"email", "Email"},
		{"viewsNumber", "Views Number"},
		{"confirmPassword", "Confirm Password"},
		{"title", "Title"},
	}

	for _, c := range cases {
		t.Run(c.field, func(t *testing.T) {
			if got := CapitalizeField(c.field); got != c.want {
				t.Errorf("CapitalizeField(%q) = %q, want %q", c.field, got, c.want)
			}
		})
	}
}

func TestIsNotEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"a@b.co", false},
		{"user.name+tag@records.example", false},
		{"A@b.co", true},
		{"a@B.co", true},
		{"bad", true},
		{"a@b.c", true},
		{"a@b.watermelon", true},
		{"", true},
	}

	for _, c := range cases {
		t.Run(c.email, func(t *testing.T) {
			if got := IsNotEmail(c.email); got != c.want {
				t.Errorf("IsNotEmail(%q) = %v, want %v", c.email, got, c.want)
			}
		})
	}
}

func TestIsNotLaunchDateValid(t *testing.T) {
	cases := []struct {
		date string
		want bool
	}{
		{"01/01/2020", false},
		{"31/12/1999", false},
		{"29/02/2020", false}, // leap year
		{"29/02/2021", true},
		{"31/02/2021", true},
		{"31/04/2021", true},
		{"00/01/2021", true},
		{"01/13/2021", true},
		{"garbage", true},
		{"aa/bb/cccc", true},
		{"", true},
	}

	for _, c := range cases {
		t.Run(c.date, func(t *testing.T) {
			if got := IsNotLaunchDateValid(c.date); got != c.want {
				t.Errorf("IsNotLaunchDateValid(%q) = %v, want %v", c.date, got, c.want)
			}
		})
	}
}

func TestRequired(t *testing.T) {
	t.Run("Marks Exactly The Empty Required Fields", func(t *testing.T) {
		state := Required([]Rule{
			{Field: "title", Value: "", Required: true},
			{Field: "artist", Value: "Elis Regina", Required: true},
			{Field: "viewsNumber", Value: "", Required: false},
		})

		if !state["title"].Invalid {
			t.Error("expected title to be invalid")
		}
		if state["title"].Message != "Title is required!" {
			t.Errorf("unexpected message %q", state["title"].Message)
		}
		if state["artist"].Invalid {
			t.Error("expected artist to be clear")
		}
		if state["viewsNumber"].Invalid {
			t.Error("expected optional field to be clear")
		}
	})

	t.Run("Every Field Gets An Entry", func(t *testing.T) {
		state := Required([]Rule{
			{Field: "email", Value: "a@b.co", Required: true},
			{Field: "password", Value: "secret", Required: true},
		})

		if len(state) != 2 {
			t.Errorf("expected 2 entries, got %d", len(state))
		}
		if !state.Valid() {
			t.Error("expected state to be valid")
		}
	})
}

func TestCheckMusic(t *testing.T) {
	valid := models.Music{
		Title:      "Aguas de Marco",
		Artist:     "Elis Regina",
		LaunchDate: "03/03/1972",
		Duration:   "03:32",
	}

	t.Run("Valid Record", func(t *testing.T) {
		state, summary := CheckMusic(valid)
		if !state.Valid() {
			t.Error("expected state to be valid")
		}
		if summary != "" {
			t.Errorf("expected no summary, got %q", summary)
		}
	})

	t.Run("Empty Fields Marked Individually", func(t *testing.T) {
		state, summary := CheckMusic(models.Music{Artist: "Elis Regina"})

		if summary != "" {
			t.Errorf("expected required check to short-circuit the date check, got %q", summary)
		}
		for _, field := range []string{"title", "launchDate", "duration"} {
			if !state[field].Invalid {
				t.Errorf("expected %s to be invalid", field)
			}
		}
		if state["artist"].Invalid {
			t.Error("expected artist to be clear")
		}
	})

	t.Run("Impossible Launch Date", func(t *testing.T) {
		m := valid
		m.LaunchDate = "31/02/2021"
		state, summary := CheckMusic(m)

		if !state.Valid() {
			t.Error("field state should stay clear, the date failure is a summary error")
		}
		if summary != "This Launch Date does not exist!" {
			t.Errorf("unexpected summary %q", summary)
		}
	})
}

func TestCheckCredentials(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		_, summary := CheckCredentials(models.Credentials{Email: "a@b.co", Password: "pw"})
		if summary != "" {
			t.Errorf("expected no summary, got %q", summary)
		}
	})

	t.Run("Email Format Checked Only After Required Pass", func(t *testing.T) {
		state, summary := CheckCredentials(models.Credentials{Email: "not-an-email"})
		if summary != "" {
			t.Errorf("expected empty summary while password is missing, got %q", summary)
		}
		if !state["password"].Invalid {
			t.Error("expected password to be invalid")
		}

		_, summary = CheckCredentials(models.Credentials{Email: "not-an-email", Password: "pw"})
		if summary != "Valid E-Mail format is required!" {
			t.Errorf("unexpected summary %q", summary)
		}
	})
}

func TestCheckNewUser(t *testing.T) {
	user := models.User{Name: "Vin", Email: "vin@b.co", Password: "secret"}

	t.Run("Valid", func(t *testing.T) {
		state, summary := CheckNewUser(user, "secret")
		if !state.Valid() || summary != "" {
			t.Errorf("expected valid pass, got %v %q", state, summary)
		}
	})

	t.Run("Confirm Password Required", func(t *testing.T) {
		state, summary := CheckNewUser(user, "")
		if summary != "" {
			t.Errorf("expected no summary, got %q", summary)
		}
		if !state["confirmPassword"].Invalid {
			t.Error("expected confirmPassword to be invalid")
		}
		if state["confirmPassword"].Message != "Confirm Password is required!" {
			t.Errorf("unexpected message %q", state["confirmPassword"].Message)
		}
	})

	t.Run("Password Mismatch", func(t *testing.T) {
		_, summary := CheckNewUser(user, "other")
		if summary != "Passwords must be the same!" {
			t.Errorf("unexpected summary %q", summary)
		}
	})

	t.Run("Uppercase Email Rejected", func(t *testing.T) {
		u := user
		u.Email = "Vin@b.co"
		_, summary := CheckNewUser(u, "secret")
		if summary != "Valid E-Mail format is required!" {
			t.Errorf("unexpected summary %q", summary)
		}
	})
}
