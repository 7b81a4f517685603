package channel

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Tape moves values between text files and streams. Values in the
// input are separated by commas or whitespace; output is one value per line.
type Tape struct {
	Input  io.Reader
	Output io.Writer
}

// separator reports whether r splits two values on a tape.
func separator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// Fetch appends every value on the input tape to stream.
func (tape *Tape) Fetch(stream *Stream) (count int, err error) {
	if tape.Input == nil {
		return
	}

	scanner := bufio.NewScanner(tape.Input)
	for scanner.Scan() {
		for _, word := range strings.FieldsFunc(scanner.Text(), separator) {
			var value int64
			value, err = strconv.ParseInt(word, 10, 64)
			if err != nil {
				err = &ErrValue{Index: count, Text: word}
				return
			}
			stream.Write(value)
			count++
		}
	}

	err = scanner.Err()
	return
}

// Store drains stream onto the output tape.
func (tape *Tape) Store(stream *Stream) (count int, err error) {
	if tape.Output == nil {
		return
	}

	for value := range stream.Receive() {
		_, err = fmt.Fprintln(tape.Output, value)
		if err != nil {
			return
		}
		count++
	}

	return
}
