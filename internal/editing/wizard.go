package editing

// Tab is a step of the creation wizard.
type Tab string

// Wizard tabs in order.
const (
	TabBasic    Tab = "basic"
	TabSocial   Tab = "social"
	TabProjects Tab = "projects"
)

var tabOrder = []Tab{TabBasic, TabSocial, TabProjects}

// Wizard is the linear creation flow. Moving between tabs is never gated on
// validation or on extraction results; failures only set a warning.
type Wizard struct {
	Tab     Tab
	Warning string
}

// NewWizard starts on the basic tab.
func NewWizard() *Wizard {
	return &Wizard{Tab: TabBasic}
}

// Next advances one tab and reports whether it moved.
func (w *Wizard) Next() bool {
	i := w.index()
	if i >= len(tabOrder)-1 {
		return false
	}
	w.Tab = tabOrder[i+1]
	return true
}

// Back returns to the previous tab and reports whether it moved.
func (w *Wizard) Back() bool {
	i := w.index()
	if i <= 0 {
		return false
	}
	w.Tab = tabOrder[i-1]
	return true
}

// Degrade records a non-fatal problem (a timed-out or failed extraction) and
// moves on to the projects tab with whatever data is available.
func (w *Wizard) Degrade(warning string) {
	w.Warning = warning
	w.Tab = TabProjects
}

// Done reports whether the wizard is on its final tab.
func (w *Wizard) Done() bool {
	return w.Tab == tabOrder[len(tabOrder)-1]
}

func (w *Wizard) index() int {
	for i, t := range tabOrder {
		if t == w.Tab {
			return i
		}
	}
	return 0
}
