package tokenizer

// hyphenLookahead is a partial construct that matches exactly "-@". A bare
// hyphen is either an author-suppression marker (when the next character is
// '@') or ordinary prefix text, and one character of lookahead cannot tell
// the two apart.
//
// The lookahead never emits effects. The machine holds on to the hyphen while
// the lookahead is undecided and replays it once the verdict is known, so at
// most two characters are ever pending.
type hyphenLookahead struct {
	seen int
}

// step feeds one character and reports whether the lookahead has reached a
// verdict and, if so, whether the two characters were "-@".
func (l *hyphenLookahead) step(code Code) (done, matched bool) {
	switch l.seen {
	case 0:
		if code != '-' {
			return true, false
		}
		l.seen++
		return false, false
	case 1:
		l.seen++
		return true, code == '@'
	}
	return true, false
}
