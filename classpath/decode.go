package classpath

import (
	"runtime"
	"sync"

	"github.com/dhamidi/cafebabe/classfile"
)

type Result struct {
	Entry Entry
	Class *classfile.ClassFile
	Err   error
}

// DecodeAll decodes entries on up to jobs goroutines. Results are in the
// same order as entries. jobs <= 0 means one worker per CPU.
func DecodeAll(entries []Entry, jobs int, opts ...classfile.Option) []Result {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(entries))

	results := make([]Result, len(entries))
	indices := make(chan int)
	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				cf, err := classfile.Parse(entries[i].Data, opts...)
				results[i] = Result{Entry: entries[i], Class: cf, Err: err}
			}
		}()
	}
	for i := range entries {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return results
}
