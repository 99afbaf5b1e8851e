package main

import (
	"fmt"
	"io"
)

type SimpleProgress struct {
	writer  io.Writer
	enabled bool
}

func NewSimpleProgress(writer io.Writer, enabled bool) *SimpleProgress {
	return &SimpleProgress{
		writer:  writer,
		enabled: enabled,
	}
}

func (sp *SimpleProgress) Update(message string) {
	if !sp.enabled {
		return
	}
	fmt.Fprintf(sp.writer, "  %s\n", message)
}
