package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is checks against the typed load errors below.
var (
	ErrNotFound    = errors.New("source not found")
	ErrSchema      = errors.New("required column missing")
	ErrEmptyResult = errors.New("empty result")
)

// NotFoundError is returned when the dataset source does not exist.
type NotFoundError struct {
	Source string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not locate data file at %s", e.Source)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// SchemaError is returned when none of the candidate names for a required
// column exist in the table.
type SchemaError struct {
	Field      string
	Candidates []string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("none of the candidate columns [%s] exist in the dataset", strings.Join(e.Candidates, ", "))
	}
	return fmt.Sprintf("%s: none of the candidate columns [%s] exist in the dataset",
		e.Field, strings.Join(e.Candidates, ", "))
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// EmptyResultError is returned when a partition ends up with zero rows.
type EmptyResultError struct {
	Partition string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no %s-level rows were found in the dataset", e.Partition)
}

func (e *EmptyResultError) Is(target error) bool { return target == ErrEmptyResult }
