package scoring

import (
	"github.com/eslsoft/aussieprogress/internal/entity"
	"github.com/eslsoft/aussieprogress/pkg/selector"
)

var practicePhrases = map[entity.PracticeMode][]entity.Phrase{
	entity.PracticeModeEveryday: {
		{Text: "G'day, how ya going?", Hint: "guh-DAY, how ya GO-in", Keywords: []string{"gday", "going"}},
		{Text: "No worries, mate!", Hint: "no WUH-rees, mayt", Keywords: []string{"worries", "mate"}},
		{Text: "See you this arvo", Hint: "see ya this AH-vo", Keywords: []string{"arvo"}},
		{Text: "Chuck it in the boot", Hint: "chuck it in the BOOT", Keywords: []string{"chuck", "boot"}},
		{Text: "Let's grab a cuppa", Hint: "lets grab a CUP-pa", Keywords: []string{"cuppa"}},
		{Text: "That's heaps good", Hint: "thats HEEPS good", Keywords: []string{"heaps", "good"}},
		{Text: "I reckon it'll be fine", Hint: "I RECK-en itll be fine", Keywords: []string{"reckon", "fine"}},
		{Text: "Fair go, mate", Hint: "FAIR go, mayt", Keywords: []string{"fair", "go", "mate"}},
	},
	entity.PracticeModeSlang: {
		{Text: "She'll be right, mate", Hint: "shell be RIGHT, mayt", Keywords: []string{"shell", "right", "mate"}},
		{Text: "Too easy, no dramas", Hint: "too EE-zee, no DRAH-mas", Keywords: []string{"easy", "dramas"}},
		{Text: "Flat out like a lizard drinking", Hint: "flat OUT like a LIZ-ard", Keywords: []string{"flat", "lizard", "drinking"}},
		{Text: "Having a yarn with me mates", Hint: "havin a YARN with me mayts", Keywords: []string{"yarn", "mates"}},
		{Text: "It's chockers in here", Hint: "its CHOCK-ers in here", Keywords: []string{"chockers"}},
		{Text: "Don't be a sook", Hint: "dont be a SOOK", Keywords: []string{"sook"}},
		{Text: "That's bloody ripper", Hint: "thats BLUD-ee RIP-pa", Keywords: []string{"bloody", "ripper"}},
		{Text: "Strewth, that's bonzer!", Hint: "STROOTH, thats BON-za", Keywords: []string{"strewth", "bonzer"}},
	},
	entity.PracticeModeWorkplace: {
		{Text: "I'll action that today", Hint: "ill ACK-shun that today", Keywords: []string{"action", "today"}},
		{Text: "Let's touch base later", Hint: "lets TOUCH BASE layter", Keywords: []string{"touch", "base", "later"}},
		{Text: "Happy to have a yarn about it", Hint: "happy to have a YARN about it", Keywords: []string{"happy", "yarn"}},
		{Text: "I'll shoot you an email", Hint: "ill SHOOT you an ee-mayl", Keywords: []string{"shoot", "email"}},
		{Text: "Sounds good, cheers", Hint: "sounds GOOD, cheers", Keywords: []string{"sounds", "good", "cheers"}},
		{Text: "I'll follow up on Monday", Hint: "ill FOLLOW up on Monday", Keywords: []string{"follow", "monday"}},
		{Text: "No worries at all", Hint: "no WUH-rees at all", Keywords: []string{"worries"}},
		{Text: "Let me circle back on that", Hint: "let me CIRCLE back on that", Keywords: []string{"circle", "back"}},
	},
}

// Phrases returns a copy of the practice phrases for mode.
func Phrases(mode entity.PracticeMode) ([]entity.Phrase, error) {
	list, ok := practicePhrases[mode]
	if !ok {
		return nil, entity.ErrInvalidPracticeMode
	}
	out := make([]entity.Phrase, len(list))
	for i, p := range list {
		out[i] = p.Clone()
	}
	return out, nil
}

// NextPhrase picks one practice phrase for mode.
func NextPhrase(mode entity.PracticeMode, pick selector.Func) (entity.Phrase, error) {
	list, err := Phrases(mode)
	if err != nil {
		return entity.Phrase{}, err
	}
	return selector.Pick(pick, list), nil
}

// FindPhrase looks a phrase up by its exact text across all modes.
func FindPhrase(text string) (entity.Phrase, bool) {
	for _, mode := range entity.PracticeModes() {
		for _, p := range practicePhrases[mode] {
			if p.Text == text {
				return p.Clone(), true
			}
		}
	}
	return entity.Phrase{}, false
}
