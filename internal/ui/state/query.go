package state

// QueryState is the editable search box. The cursor counts runes and always
// satisfies 0 <= cursor <= len(text).
type QueryState struct {
	text   []rune
	cursor int
	active bool
}

// NewQueryState creates an empty, active query
func NewQueryState() *QueryState {
	return &QueryState{active: true}
}

func (q *QueryState) Text() string { return string(q.text) }
func (q *QueryState) Cursor() int  { return q.cursor }
func (q *QueryState) Active() bool { return q.active }

// Activate puts the query back into editing mode, keeping the text
func (q *QueryState) Activate() { q.active = true }

// Deactivate leaves editing mode
func (q *QueryState) Deactivate() { q.active = false }

// SetText replaces the text and moves the cursor to its end
func (q *QueryState) SetText(s string) {
	q.text = []rune(s)
	q.cursor = len(q.text)
}

// Insert adds r at the cursor and moves the cursor past it
func (q *QueryState) Insert(r rune) {
	q.text = append(q.text, 0)
	copy(q.text[q.cursor+1:], q.text[q.cursor:])
	q.text[q.cursor] = r
	q.cursor++
}

// Backspace deletes the rune left of the cursor; no-op at 0
func (q *QueryState) Backspace() {
	if q.cursor == 0 {
		return
	}
	q.text = append(q.text[:q.cursor-1], q.text[q.cursor:]...)
	q.cursor--
}

// Delete removes the rune under the cursor; no-op at the end
func (q *QueryState) Delete() {
	if q.cursor >= len(q.text) {
		return
	}
	q.text = append(q.text[:q.cursor], q.text[q.cursor+1:]...)
}

func (q *QueryState) Left() {
	if q.cursor > 0 {
		q.cursor--
	}
}

func (q *QueryState) Right() {
	if q.cursor < len(q.text) {
		q.cursor++
	}
}
