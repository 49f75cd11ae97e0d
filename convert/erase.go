package convert

import "github.com/wippyai/hostbridge/native"

// EraseList collects transient references acquired during one call so they
// can be released together. The zero value is ready to use.
type EraseList struct {
	refs []native.Ref
}

// Add records ref. Null references are ignored.
func (l *EraseList) Add(ref native.Ref) {
	if ref != 0 {
		l.refs = append(l.refs, ref)
	}
}

// Remove drops ref from the list without deleting it and reports whether it
// was present.
func (l *EraseList) Remove(ref native.Ref) bool {
	for i, r := range l.refs {
		if r == ref {
			l.refs = append(l.refs[:i], l.refs[i+1:]...)
			return true
		}
	}
	return false
}

func (l *EraseList) Len() int {
	return len(l.refs)
}

// Release deletes every recorded reference once and empties the list.
func (l *EraseList) Release(env native.Env) {
	for _, ref := range l.refs {
		env.DeleteLocalRef(ref)
	}
	l.refs = l.refs[:0]
}
