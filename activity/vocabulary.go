// SPDX-License-Identifier: MIT

package activity

// Vocabulary maps states to human-language labels. It is used only at the
// I/O boundary (CSV "durum" column, console reports); analysis code works on
// State values.
type Vocabulary struct {
	Name   string            // short identifier, e.g. "tr"
	labels [NumStates]string // indexed by State
}

// Built-in vocabularies. Turkish is the language of the original data files.
var (
	Turkish = Vocabulary{Name: "tr", labels: [NumStates]string{"Düşük Aktivite", "Orta Aktivite", "Yüksek Aktivite"}}
	English = Vocabulary{Name: "en", labels: [NumStates]string{"Low Activity", "Medium Activity", "High Activity"}}
)

var vocabularies = []Vocabulary{Turkish, English}

// Label returns the display label for s, or s.String() for invalid states.
func (v Vocabulary) Label(s State) string {
	if !s.Valid() || v.labels[s] == "" {
		return s.String()
	}
	return v.labels[s]
}

// Labels returns the labels of the whole alphabet in ordinal order.
func (v Vocabulary) Labels() []string {
	out := make([]string, 0, NumStates)
	for _, s := range States() {
		out = append(out, v.Label(s))
	}
	return out
}

func (v Vocabulary) lookup(label string) (State, bool) {
	for i, l := range v.labels {
		if l != "" && l == label {
			return State(i), true
		}
	}
	return 0, false
}
