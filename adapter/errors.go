package adapter

import "fmt"

// MatchError is a non-success response from the DMS request-service
// endpoint. Body carries the response text verbatim.
type MatchError struct {
	Status int
	Body   string
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("request-service returned status %d: %s", e.Status, e.Body)
}

// ParseError reports a response or stream message that could not be decoded.
type ParseError struct {
	What string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed parse %s: %v", e.What, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ChannelError reports a status channel transport failure.
type ChannelError struct {
	Op  string
	Err error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("status channel %s failed: %v", e.Op, e.Err)
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}
