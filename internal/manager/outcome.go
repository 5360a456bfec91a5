package manager

import "fmt"

// Outcome is what an update did for one script
type Outcome int

const (
	// Latest means the artifact was already current
	Latest Outcome = iota + 1
	// Compiled means the script was rebuilt
	Compiled
	// NotFound means the requested name is not registered
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Latest:
		return "[LATEST]"
	case Compiled:
		return "[COMPILED]"
	case NotFound:
		return "[NOT FOUND]"
	}

	return fmt.Sprintf("[UNKNOWN %d]", int(o))
}

// Result pairs a script name with its outcome
type Result struct {
	Name    string
	Outcome Outcome
}

// String renders the result as an update report line
func (r Result) String() string {
	return fmt.Sprintf("%-12s %s", r.Outcome, r.Name)
}
