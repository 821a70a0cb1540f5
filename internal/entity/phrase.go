package entity

// Phrase is a practice target with a pronunciation hint and the keywords
// that must be heard for the attempt to count as complete.
type Phrase struct {
	Text     string   `json:"text"`
	Hint     string   `json:"hint"`
	Keywords []string `json:"keywords"`
}

// Clone returns a copy that shares no slices with p.
func (p Phrase) Clone() Phrase {
	p.Keywords = append([]string{}, p.Keywords...)
	return p
}
