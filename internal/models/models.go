package models

// PageSize is the fixed window size for every paginated catalog request.
const PageSize = 5

// Music represents a single catalog record.
//
// A nil ID denotes an unsaved record being created; a non-nil ID denotes
// an existing record being edited. ViewsNumber and Feat are the only
// optional fields.
type Music struct {
	ID          *int64 `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	LaunchDate  string `json:"launchDate"` // ddmmyyyy, entered as dd/mm/yyyy
	Duration    string `json:"duration"`   // mm:ss
	ViewsNumber *int64 `json:"viewsNumber"`
	Feat        bool   `json:"feat"`
}

// Saved reports whether the record already exists on the server.
func (m Music) Saved() bool {
	return m.ID != nil
}

// Page is one window into a server-paginated collection.
//
// Index*PageSize is the zero-based offset requested from the server;
// len(Items) never exceeds [PageSize].
type Page struct {
	Items         []Music
	TotalElements int
	Index         int
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the sign-up payload.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the authenticated identity for the running client.
//
// A session is usable only when Token is non-empty and Expired is false.
type Session struct {
	Token    string
	Username string
	Email    string
	Expired  bool
}

// Authenticated reports whether the session can be used for catalog calls.
func (s Session) Authenticated() bool {
	return s.Token != "" && !s.Expired
}

// Selection is the set of deleted records chosen for bulk recovery.
//
// Recovery submits the full records, not just IDs, so the selection
// carries [Music] values keyed by their server IDs.
type Selection struct {
	records map[int64]Music
	order   []int64
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{records: map[int64]Music{}}
}

// Toggle adds the record to the selection, or removes it when already present.
// Records without a server ID are ignored.
func (s *Selection) Toggle(m Music) {
	if m.ID == nil {
		return
	}
	id := *m.ID
	if _, ok := s.records[id]; ok {
		delete(s.records, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return
	}
	s.records[id] = m
	s.order = append(s.order, id)
}

// Contains reports whether the record with the given ID is selected.
func (s *Selection) Contains(id int64) bool {
	_, ok := s.records[id]
	return ok
}

// Len returns the number of selected records.
func (s *Selection) Len() int {
	return len(s.records)
}

// Records returns the selected records in selection order.
func (s *Selection) Records() []Music {
	out := make([]Music, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.records = map[int64]Music{}
	s.order = nil
}
