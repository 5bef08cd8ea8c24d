package tui

// Feedback collects toasts, alerts and busy state for the status area
type Feedback struct {
	toast    string
	toastSeq int
	pending  bool
	alert    string
	busy     bool
}

// Success shows toast, it is hidden after a while
func (f *Feedback) Success(msg string) {
	f.toast = msg
	f.toastSeq++
	f.pending = true
}

// Alert shows blocking message until dismissed
func (f *Feedback) Alert(msg string) {
	f.alert = msg
}

// Busy shows or hides the loading overlay
func (f *Feedback) Busy(on bool) {
	f.busy = on
}

// takeToast returns sequence of a toast that needs an expiry timer
func (f *Feedback) takeToast() (int, bool) {
	if !f.pending {
		return 0, false
	}
	f.pending = false
	return f.toastSeq, true
}

func (f *Feedback) expire(seq int) {
	if seq == f.toastSeq {
		f.toast = ""
	}
}
