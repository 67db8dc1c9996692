package driver

const historyLimit = 1000

// History keeps the most recent event descriptions, oldest first.
type History struct {
	history []string
}

func (h *History) Add(text string) {
	h.history = append(h.history, text)
	if len(h.history) > historyLimit {
		h.history = h.history[1:]
	}
}

func (h *History) Len() int {
	return len(h.history)
}

// Last returns up to n of the newest entries, oldest first.
func (h *History) Last(n int) []string {
	if n <= 0 {
		return nil
	}
	if n > len(h.history) {
		n = len(h.history)
	}
	return h.history[len(h.history)-n:]
}
