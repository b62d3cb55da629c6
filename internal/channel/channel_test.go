package channel

import "testing"

func TestChannel(t *testing.T) {
	t.Run("Subscribe Replays Initial Empty Value", func(t *testing.T) {
		c := New()

		var got []string
		c.Subscribe(func(m string) { got = append(got, m) })

		if len(got) != 1 || got[0] != "" {
			t.Errorf("expected immediate replay of empty value, got %v", got)
		}
	})

	t.Run("Publish Delivers Synchronously In Subscription Order", func(t *testing.T) {
		c := New()

		var order []string
		c.Subscribe(func(m string) {
			if m != "" {
				order = append(order, "first:"+m)
			}
		})
		c.Subscribe(func(m string) {
			if m != "" {
				order = append(order, "second:"+m)
			}
		})

		c.Publish("hello")

		if len(order) != 2 || order[0] != "first:hello" || order[1] != "second:hello" {
			t.Errorf("unexpected delivery order %v", order)
		}
	})

	t.Run("Late Subscriber Sees Only The Most Recent Value", func(t *testing.T) {
		c := New()
		c.Publish("one")
		c.Publish("two")

		var got []string
		c.Subscribe(func(m string) { got = append(got, m) })

		if len(got) != 1 || got[0] != "two" {
			t.Errorf("expected only the last value, got %v", got)
		}
	})

	t.Run("Unsubscribe Stops Delivery", func(t *testing.T) {
		c := New()

		count := 0
		unsubscribe := c.Subscribe(func(m string) { count++ })
		unsubscribe()
		c.Publish("after")

		if count != 1 {
			t.Errorf("expected only the replay delivery, got %d", count)
		}
	})

	t.Run("Last", func(t *testing.T) {
		c := New()
		if c.Last() != "" {
			t.Errorf("expected empty initial value, got %q", c.Last())
		}
		c.Publish(ListChanged)
		if c.Last() != ListChanged {
			t.Errorf("expected %q, got %q", ListChanged, c.Last())
		}
	})
}

func TestUnauthenticated(t *testing.T) {
	t.Run("Round Trip", func(t *testing.T) {
		msg := Unauthenticated("Token expired!")
		suffix, ok := ParseUnauthenticated(msg)
		if !ok {
			t.Fatal("expected an unauthenticated notice")
		}
		if suffix != "Token expired!" {
			t.Errorf("unexpected suffix %q", suffix)
		}
	})

	t.Run("Empty Server Message", func(t *testing.T) {
		suffix, ok := ParseUnauthenticated(Unauthenticated(""))
		if !ok || suffix != "" {
			t.Errorf("expected empty suffix, got %q ok=%v", suffix, ok)
		}
	})

	t.Run("Other Messages", func(t *testing.T) {
		if _, ok := ParseUnauthenticated(UserCreated); ok {
			t.Error("user-created notice should not parse as unauthenticated")
		}
	})
}
