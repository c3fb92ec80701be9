package bytecode

// LineTable is a compact run-length mapping from instruction index to
// source line: consecutive instructions emitted from the same source line
// share one (line, runLength) entry instead of one entry per instruction.
type LineTable struct {
	entries []lineRun
}

type lineRun struct {
	line  int
	count int
}

// Push records that the next instruction came from line. Consecutive pushes
// of the same line coalesce into the current run.
func (lt *LineTable) Push(line int) {
	if n := len(lt.entries); n > 0 && lt.entries[n-1].line == line {
		lt.entries[n-1].count++
		return
	}
	lt.entries = append(lt.entries, lineRun{line: line, count: 1})
}

// Get returns the source line for the instruction at index. It panics if
// index is out of range, which would indicate a compiler bug: every emitted
// instruction must have a corresponding line pushed alongside it.
func (lt *LineTable) Get(index int) int {
	remaining := index
	for _, run := range lt.entries {
		if remaining < run.count {
			return run.line
		}
		remaining -= run.count
	}
	panic("bytecode: line table has no entry for instruction index")
}
