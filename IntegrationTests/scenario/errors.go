package scenario

import "fmt"

// UnknownScenarioError is returned when the requested scenario name is not registered.
type UnknownScenarioError struct {
	Name string
}

func (e *UnknownScenarioError) Error() string {
	return fmt.Sprintf("unknown scenario: %s", e.Name)
}

// UnexpectedStatusError is returned when the service answers with a status the scenario did not expect.
type UnexpectedStatusError struct {
	Path string
	Got  int
	Want int
	Body string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("GET %s: status=%d, want %d, body=%s", e.Path, e.Got, e.Want, e.Body)
}
