package sample

import "fmt"

// ProcessData processes data and returns results. The input is left
// untouched; the returned slice is always non-nil.
func ProcessData[T Number](data []T) []T {
	out := make([]T, len(data))
	for i, item := range data {
		out[i] = item * 2
	}
	return out
}

// DataProcessor tags values with a fixed name.
type DataProcessor struct {
	name string
}

func NewDataProcessor(name string) *DataProcessor {
	return &DataProcessor{name: name}
}

func (p *DataProcessor) Name() string {
	return p.name
}

// Process returns the processor name followed by the default string form
// of data.
func (p *DataProcessor) Process(data any) string {
	return p.name + fmt.Sprint(data)
}
